package vehicle

// CreateVehicleRequest for creating a new vehicle. Transport-level shape only;
// the Validate ruleset is the authority on field constraints.
type CreateVehicleRequest struct {
	ReferenceNumber string           `json:"reference_number"`
	ChassisNumber   string           `json:"chassis_number"`
	Make            string           `json:"make"`
	Model           string           `json:"model"`
	Year            int              `json:"year"`
	Color           string           `json:"color"`
	Drivetrain      Drivetrain       `json:"drivetrain"`
	Transmission    Transmission     `json:"transmission"`
	Fuel            FuelType         `json:"fuel"`
	BodyType        BodyType         `json:"body_type"`
	Mileage         int              `json:"mileage"`
	EngineSizeCC    *int             `json:"engine_size_cc"`
	Features        []string         `json:"features"`
	Price           float64          `json:"price"`
	Currency        Currency         `json:"currency"`
	Condition       Condition        `json:"condition"`
	Status          Status           `json:"status"`
	Inspection      InspectionStatus `json:"inspection_status"`
	ArrivalDate     *string          `json:"arrival_date"`
	SalespersonID   *string          `json:"salesperson_id"`
	Images          []Image          `json:"images"`
}

// UpdateVehicleRequest merges the supplied fields into the existing record.
// Nil means "leave unchanged"; the merged record is re-validated with the
// same ruleset as create.
type UpdateVehicleRequest struct {
	ReferenceNumber *string           `json:"reference_number"`
	ChassisNumber   *string           `json:"chassis_number"`
	Make            *string           `json:"make"`
	Model           *string           `json:"model"`
	Year            *int              `json:"year"`
	Color           *string           `json:"color"`
	Drivetrain      *Drivetrain       `json:"drivetrain"`
	Transmission    *Transmission     `json:"transmission"`
	Fuel            *FuelType         `json:"fuel"`
	BodyType        *BodyType         `json:"body_type"`
	Mileage         *int              `json:"mileage"`
	EngineSizeCC    *int              `json:"engine_size_cc"`
	Features        []string          `json:"features"`
	Price           *float64          `json:"price"`
	Currency        *Currency         `json:"currency"`
	Condition       *Condition        `json:"condition"`
	Status          *Status           `json:"status"`
	Inspection      *InspectionStatus `json:"inspection_status"`
	ArrivalDate     *string           `json:"arrival_date"`
	SaleDate        *string           `json:"sale_date"`
	BuyerDetails    *string           `json:"buyer_details"`
	FinalPrice      *float64          `json:"final_price"`
	SalespersonID   *string           `json:"salesperson_id"`
	Images          []Image           `json:"images"`
}

// MarkSoldRequest records a completed sale.
type MarkSoldRequest struct {
	SaleDate      string   `json:"sale_date" binding:"required"`
	BuyerDetails  string   `json:"buyer_details" binding:"required"`
	FinalPrice    float64  `json:"final_price" binding:"required,gt=0"`
	SalespersonID *string  `json:"salesperson_id"`
}

// ListFilters narrows a vehicle listing. All predicates are ANDed; order of
// application is irrelevant.
type ListFilters struct {
	Search   string   `form:"search"`
	Make     string   `form:"make"`
	Fuel     FuelType `form:"fuel"`
	BodyType BodyType `form:"body_type"`
	Status   Status   `form:"status"`
}

// SaleRecord is one row of the sales-history view.
type SaleRecord struct {
	Vehicle         *Vehicle `json:"vehicle"`
	SalespersonName string   `json:"salesperson_name,omitempty"`
}
