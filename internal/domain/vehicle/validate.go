package vehicle

import "fmt"

// FieldErrors maps a field name to a human-readable message. Handlers return
// it verbatim so the admin form can render errors inline; a non-empty map
// blocks the save entirely.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(fe))
}

// Fields exposes the map for transport-layer rendering.
func (fe FieldErrors) Fields() map[string]string {
	return fe
}

const minYear = 1900
const minChassisLen = 5

// Validate applies the shared create/update ruleset to a fully merged record.
// It never partially accepts: any error blocks the save.
func (v *Vehicle) Validate() FieldErrors {
	fe := FieldErrors{}

	if v.Make == "" {
		fe["make"] = "Make is required"
	}
	if v.Model == "" {
		fe["model"] = "Model is required"
	}
	if v.Color == "" {
		fe["color"] = "Color is required"
	}
	if v.Year < minYear {
		fe["year"] = fmt.Sprintf("Year must be %d or later", minYear)
	}
	if v.Mileage < 0 {
		fe["mileage"] = "Mileage must be a non-negative number"
	}
	if v.Price <= 0 {
		fe["price"] = "Price must be a positive number"
	}
	if len(v.ChassisNumber) < minChassisLen {
		fe["chassis_number"] = fmt.Sprintf("Chassis number must be at least %d characters", minChassisLen)
	}
	if v.EngineSizeCC != nil && *v.EngineSizeCC <= 0 {
		fe["engine_size_cc"] = "Engine size must be a positive number of CC"
	}

	if !ValidDrivetrain(v.Drivetrain) {
		fe["drivetrain"] = "Drivetrain must be one of 4x4, 2WD, AWD, FWD, RWD"
	}
	if !ValidTransmission(v.Transmission) {
		fe["transmission"] = "Transmission must be Automatic or Manual"
	}
	if !ValidFuel(v.Fuel) {
		fe["fuel"] = "Fuel must be one of Petrol, Diesel, Hybrid, Electric, LPG"
	}
	if !ValidBodyType(v.BodyType) {
		fe["body_type"] = "Unknown body type"
	}
	if !ValidCondition(v.Condition) {
		fe["condition"] = "Condition must be New, Used or Damaged"
	}
	if !ValidCurrency(v.Currency) {
		fe["currency"] = "Currency must be USD or KSh"
	}
	if !ValidStatus(v.Status) {
		fe["status"] = "Status must be Incoming, Available or Sold"
	}
	if !ValidInspection(v.Inspection) {
		fe["inspection_status"] = "Inspection status must be Pending, Passed or Failed"
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}
