// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"garimoto-service/internal/domain/vehicle"
	xerrors "garimoto-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `
	id, reference_number, chassis_number, make, model, year, color,
	drivetrain, transmission, fuel, body_type, mileage, engine_size_cc,
	features, price, currency, condition, status, inspection_status,
	arrival_date, sale_date, buyer_details, final_price, images,
	salesperson_id, created_at, updated_at`

// Create inserts a new vehicle and assigns its identity. Timestamps are
// server-generated.
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	if v.ID == "" {
		v.ID = ulid.Make().String()
	}

	imagesJSON, err := json.Marshal(v.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		INSERT INTO vehicles (
			id, reference_number, chassis_number, make, model, year, color,
			drivetrain, transmission, fuel, body_type, mileage, engine_size_cc,
			features, price, currency, condition, status, inspection_status,
			arrival_date, sale_date, buyer_details, final_price, images,
			salesperson_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
			NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRow(
		ctx, query,
		v.ID, v.ReferenceNumber, v.ChassisNumber, v.Make, v.Model, v.Year, v.Color,
		v.Drivetrain, v.Transmission, v.Fuel, v.BodyType, v.Mileage, v.EngineSizeCC,
		v.Features, v.Price, v.Currency, v.Condition, v.Status, v.Inspection,
		v.ArrivalDate, v.SaleDate, v.BuyerDetails, v.FinalPrice, imagesJSON,
		v.SalespersonID,
	).Scan(&v.CreatedAt, &v.UpdatedAt)

	return mapError("create vehicle", err)
}

// FindByID retrieves a vehicle by ID.
func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)

	v, err := r.scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("find vehicle", err)
	}
	return v, nil
}

// FindAll retrieves every vehicle, newest first.
func (r *VehicleRepository) FindAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles ORDER BY created_at DESC`, vehicleColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list vehicles", err)
	}
	defer rows.Close()

	vehicles := []*vehicle.Vehicle{}
	for rows.Next() {
		v, err := r.scanVehicle(rows)
		if err != nil {
			return nil, mapError("scan vehicle", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// FindByStatus retrieves vehicles narrowed server-side by lifecycle status.
// The public storefront uses this with StatusAvailable.
func (r *VehicleRepository) FindByStatus(ctx context.Context, status vehicle.Status) ([]*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE status = $1 ORDER BY created_at DESC`, vehicleColumns)

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, mapError("list vehicles by status", err)
	}
	defer rows.Close()

	vehicles := []*vehicle.Vehicle{}
	for rows.Next() {
		v, err := r.scanVehicle(rows)
		if err != nil {
			return nil, mapError("scan vehicle", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Update persists a fully merged record. The merge of supplied fields into
// the stored record happens in the service; the row is replaced wholesale and
// last-modified is stamped here.
func (r *VehicleRepository) Update(ctx context.Context, id string, v *vehicle.Vehicle) error {
	imagesJSON, err := json.Marshal(v.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		UPDATE vehicles SET
			reference_number = $1, chassis_number = $2, make = $3, model = $4,
			year = $5, color = $6, drivetrain = $7, transmission = $8, fuel = $9,
			body_type = $10, mileage = $11, engine_size_cc = $12, features = $13,
			price = $14, currency = $15, condition = $16, status = $17,
			inspection_status = $18, arrival_date = $19, sale_date = $20,
			buyer_details = $21, final_price = $22, images = $23,
			salesperson_id = $24, updated_at = $25
		WHERE id = $26
	`

	result, err := r.db.Exec(
		ctx, query,
		v.ReferenceNumber, v.ChassisNumber, v.Make, v.Model,
		v.Year, v.Color, v.Drivetrain, v.Transmission, v.Fuel,
		v.BodyType, v.Mileage, v.EngineSizeCC, v.Features,
		v.Price, v.Currency, v.Condition, v.Status,
		v.Inspection, v.ArrivalDate, v.SaleDate,
		v.BuyerDetails, v.FinalPrice, imagesJSON,
		v.SalespersonID, time.Now(), id,
	)
	if err != nil {
		return mapError("update vehicle", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a vehicle unconditionally. Deleting an id that no longer
// exists reports ErrNotFound, never a crash; there is no soft delete.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return mapError("delete vehicle", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *VehicleRepository) scanVehicle(row rowScanner) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	var imagesJSON []byte

	err := row.Scan(
		&v.ID, &v.ReferenceNumber, &v.ChassisNumber, &v.Make, &v.Model, &v.Year, &v.Color,
		&v.Drivetrain, &v.Transmission, &v.Fuel, &v.BodyType, &v.Mileage, &v.EngineSizeCC,
		&v.Features, &v.Price, &v.Currency, &v.Condition, &v.Status, &v.Inspection,
		&v.ArrivalDate, &v.SaleDate, &v.BuyerDetails, &v.FinalPrice, &imagesJSON,
		&v.SalespersonID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &v.Images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images: %w", err)
		}
	}
	if v.Images == nil {
		v.Images = []vehicle.Image{}
	}
	return &v, nil
}
