package vehicle

// internal/domain/vehicle/entity.go
import (
	"time"

	"github.com/lib/pq"
)

type Drivetrain string
type Transmission string
type FuelType string
type BodyType string
type Condition string
type Currency string
type Status string
type InspectionStatus string

const (
	Drivetrain4x4 Drivetrain = "4x4"
	Drivetrain2WD Drivetrain = "2WD"
	DrivetrainAWD Drivetrain = "AWD"
	DrivetrainFWD Drivetrain = "FWD"
	DrivetrainRWD Drivetrain = "RWD"

	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"

	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
	FuelLPG      FuelType = "LPG"

	BodySedan       BodyType = "Sedan"
	BodyHatchback   BodyType = "Hatchback"
	BodySUV         BodyType = "SUV"
	BodyCoupe       BodyType = "Coupe"
	BodyConvertible BodyType = "Convertible"
	BodyWagon       BodyType = "Wagon"
	BodyPickup      BodyType = "Pickup"
	BodyVan         BodyType = "Van"
	BodyBus         BodyType = "Bus"
	BodyTruck       BodyType = "Truck"

	ConditionNew     Condition = "New"
	ConditionUsed    Condition = "Used"
	ConditionDamaged Condition = "Damaged"

	CurrencyUSD Currency = "USD"
	CurrencyKSh Currency = "KSh"

	StatusIncoming  Status = "Incoming"
	StatusAvailable Status = "Available"
	StatusSold      Status = "Sold"

	InspectionPending InspectionStatus = "Pending"
	InspectionPassed  InspectionStatus = "Passed"
	InspectionFailed  InspectionStatus = "Failed"
)

// Image is one attachment on a vehicle. At most one image per vehicle carries
// IsFeature = true; if none does, the first image is treated as featured.
type Image struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	IsFeature bool   `json:"is_feature"`
}

// Vehicle is the canonical inventory record. Dates that came from the admin
// form (arrival_date, sale_date) are stored as YYYY-MM-DD strings; reporting
// tolerates and skips unparseable values.
type Vehicle struct {
	ID              string           `json:"id" db:"id"`
	ReferenceNumber string           `json:"reference_number" db:"reference_number"`
	ChassisNumber   string           `json:"chassis_number" db:"chassis_number"`
	Make            string           `json:"make" db:"make"`
	Model           string           `json:"model" db:"model"`
	Year            int              `json:"year" db:"year"`
	Color           string           `json:"color" db:"color"`
	Drivetrain      Drivetrain       `json:"drivetrain" db:"drivetrain"`
	Transmission    Transmission     `json:"transmission" db:"transmission"`
	Fuel            FuelType         `json:"fuel" db:"fuel"`
	BodyType        BodyType         `json:"body_type" db:"body_type"`
	Mileage         int              `json:"mileage" db:"mileage"`
	EngineSizeCC    *int             `json:"engine_size_cc,omitempty" db:"engine_size_cc"`
	Features        pq.StringArray   `json:"features" db:"features"`
	Price           float64          `json:"price" db:"price"`
	Currency        Currency         `json:"currency" db:"currency"`
	Condition       Condition        `json:"condition" db:"condition"`
	Status          Status           `json:"status" db:"status"`
	Inspection      InspectionStatus `json:"inspection_status" db:"inspection_status"`
	ArrivalDate     *string          `json:"arrival_date,omitempty" db:"arrival_date"`
	SaleDate        *string          `json:"sale_date,omitempty" db:"sale_date"`
	BuyerDetails    *string          `json:"buyer_details,omitempty" db:"buyer_details"`
	FinalPrice      *float64         `json:"final_price,omitempty" db:"final_price"`
	Images          []Image          `json:"images" db:"images"`
	SalespersonID   *string          `json:"salesperson_id,omitempty" db:"salesperson_id"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// DisplayPrice is what the storefront shows: the negotiated final price once
// a vehicle is sold, the asking price otherwise.
func (v *Vehicle) DisplayPrice() float64 {
	if v.Status == StatusSold && v.FinalPrice != nil {
		return *v.FinalPrice
	}
	return v.Price
}

// FeaturedImage returns the image designated for list views. When no image is
// explicitly flagged the first one stands in by convention.
func (v *Vehicle) FeaturedImage() *Image {
	for i := range v.Images {
		if v.Images[i].IsFeature {
			return &v.Images[i]
		}
	}
	if len(v.Images) > 0 {
		return &v.Images[0]
	}
	return nil
}

func ValidDrivetrain(d Drivetrain) bool {
	switch d {
	case Drivetrain4x4, Drivetrain2WD, DrivetrainAWD, DrivetrainFWD, DrivetrainRWD:
		return true
	}
	return false
}

func ValidTransmission(t Transmission) bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

func ValidFuel(f FuelType) bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG:
		return true
	}
	return false
}

func ValidBodyType(b BodyType) bool {
	switch b {
	case BodySedan, BodyHatchback, BodySUV, BodyCoupe, BodyConvertible,
		BodyWagon, BodyPickup, BodyVan, BodyBus, BodyTruck:
		return true
	}
	return false
}

func ValidCondition(c Condition) bool {
	return c == ConditionNew || c == ConditionUsed || c == ConditionDamaged
}

func ValidCurrency(c Currency) bool {
	return c == CurrencyUSD || c == CurrencyKSh
}

func ValidStatus(s Status) bool {
	return s == StatusIncoming || s == StatusAvailable || s == StatusSold
}

func ValidInspection(s InspectionStatus) bool {
	return s == InspectionPending || s == InspectionPassed || s == InspectionFailed
}
