// internal/service/inventory/inventory.go
package inventory

import (
	"context"
	"fmt"
	"time"

	"garimoto-service/internal/cache"
	"garimoto-service/internal/domain/vehicle"
	wstypes "garimoto-service/internal/domain/ws"
	xerrors "garimoto-service/internal/pkg/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Broadcaster pushes inventory changes to live subscribers. The websocket hub
// satisfies it; tests pass nil or a recorder.
type Broadcaster interface {
	BroadcastVehicleChange(event wstypes.EventType, vehicleID string, v interface{})
}

type InventoryService struct {
	vehicleRepo vehicle.Repository
	listing     *cache.ListingCache
	hub         Broadcaster
	logger      *zap.Logger
}

func NewInventoryService(vehicleRepo vehicle.Repository, listing *cache.ListingCache, hub Broadcaster, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		vehicleRepo: vehicleRepo,
		listing:     listing,
		hub:         hub,
		logger:      logger,
	}
}

// CreateVehicle validates and persists a new vehicle record.
func (s *InventoryService) CreateVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	v := &vehicle.Vehicle{
		ReferenceNumber: req.ReferenceNumber,
		ChassisNumber:   req.ChassisNumber,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Color:           req.Color,
		Drivetrain:      req.Drivetrain,
		Transmission:    req.Transmission,
		Fuel:            req.Fuel,
		BodyType:        req.BodyType,
		Mileage:         req.Mileage,
		EngineSizeCC:    req.EngineSizeCC,
		Features:        pq.StringArray(req.Features),
		Price:           req.Price,
		Currency:        req.Currency,
		Condition:       req.Condition,
		Status:          req.Status,
		Inspection:      req.Inspection,
		ArrivalDate:     req.ArrivalDate,
		SalespersonID:   req.SalespersonID,
		Images:          vehicle.NormalizeFeatured(req.Images),
	}
	if v.Status == "" {
		v.Status = vehicle.StatusIncoming
	}
	if v.Inspection == "" {
		v.Inspection = vehicle.InspectionPending
	}
	if v.Status == vehicle.StatusIncoming && v.ArrivalDate == nil {
		today := time.Now().Format("2006-01-02")
		v.ArrivalDate = &today
	}
	if v.Features == nil {
		v.Features = pq.StringArray{}
	}
	if v.Images == nil {
		v.Images = []vehicle.Image{}
	}

	if fe := v.Validate(); fe != nil {
		return nil, fe
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		s.logger.Error("failed to create vehicle", zap.Error(err))
		return nil, err
	}

	s.logger.Info("vehicle created",
		zap.String("vehicle_id", v.ID),
		zap.String("make", v.Make),
		zap.String("model", v.Model),
	)

	s.invalidateListing(ctx)
	s.broadcast(wstypes.EventTypeVehicleCreated, v.ID, v)

	return v, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *InventoryService) GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, id)
}

// ListVehicles returns the admin inventory view, newest first, narrowed by
// the supplied filters. Filtering runs in memory over the materialized set so
// the admin table and the storefront share one predicate implementation.
func (s *InventoryService) ListVehicles(ctx context.Context, filters vehicle.ListFilters) ([]*vehicle.Vehicle, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	out := make([]*vehicle.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if filters.MatchesAdmin(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// UpdateVehicle merges the supplied fields into the stored record and
// re-validates the result with the create ruleset before saving.
func (s *InventoryService) UpdateVehicle(ctx context.Context, id string, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(v, req)

	if v.Status == vehicle.StatusIncoming && v.ArrivalDate == nil {
		today := time.Now().Format("2006-01-02")
		v.ArrivalDate = &today
	}

	if fe := v.Validate(); fe != nil {
		return nil, fe
	}

	if err := s.vehicleRepo.Update(ctx, id, v); err != nil {
		s.logger.Error("failed to update vehicle", zap.String("vehicle_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("vehicle updated", zap.String("vehicle_id", id))

	s.invalidateListing(ctx)
	s.broadcast(wstypes.EventTypeVehicleUpdated, id, v)

	return v, nil
}

// DeleteVehicle hard-deletes a record. A second delete of the same id reports
// not found; nothing else references the row, so there is no cascade.
func (s *InventoryService) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("vehicle deleted", zap.String("vehicle_id", id))

	s.invalidateListing(ctx)
	s.broadcast(wstypes.EventTypeVehicleDeleted, id, nil)

	return nil
}

// AttachImages appends uploaded images to a vehicle, keeping the featured
// designation consistent.
func (s *InventoryService) AttachImages(ctx context.Context, id string, images []vehicle.Image) (*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Images = vehicle.NormalizeFeatured(append(v.Images, images...))

	if err := s.vehicleRepo.Update(ctx, id, v); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.broadcast(wstypes.EventTypeVehicleUpdated, id, v)

	return v, nil
}

// RemoveImage detaches one image and returns the detached copy so the caller
// can clean up the stored object.
func (s *InventoryService) RemoveImage(ctx context.Context, id, imageID string) (*vehicle.Vehicle, *vehicle.Image, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var removed *vehicle.Image
	for i := range v.Images {
		if v.Images[i].ID == imageID {
			img := v.Images[i]
			removed = &img
			break
		}
	}
	if removed == nil {
		return nil, nil, xerrors.ErrNotFound
	}

	v.Images = vehicle.RemoveImage(v.Images, imageID)

	if err := s.vehicleRepo.Update(ctx, id, v); err != nil {
		return nil, nil, err
	}

	s.invalidateListing(ctx)
	s.broadcast(wstypes.EventTypeVehicleUpdated, id, v)

	return v, removed, nil
}

// SetFeaturedImage designates one image as featured, clearing all others.
func (s *InventoryService) SetFeaturedImage(ctx context.Context, id, imageID string) (*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !vehicle.SetFeatured(v.Images, imageID) {
		return nil, xerrors.ErrNotFound
	}

	if err := s.vehicleRepo.Update(ctx, id, v); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.broadcast(wstypes.EventTypeVehicleUpdated, id, v)

	return v, nil
}

// StorefrontList returns the public Available listing. The full Available set
// is cached; filters are applied in memory after the cache read so every
// filter combination shares one cache entry.
func (s *InventoryService) StorefrontList(ctx context.Context, filters vehicle.ListFilters) ([]*vehicle.Vehicle, error) {
	vehicles, err := s.availableVehicles(ctx)
	if err != nil {
		return nil, err
	}

	filters.Status = "" // the set is already narrowed to Available
	return filters.Apply(vehicles), nil
}

// StorefrontDetail returns one vehicle for the public detail page. Sold
// vehicles remain reachable by direct link; the listing simply stops showing
// them.
func (s *InventoryService) StorefrontDetail(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, id)
}

// SimilarVehicles returns up to limit Available vehicles of the same make,
// excluding the vehicle itself.
func (s *InventoryService) SimilarVehicles(ctx context.Context, id string, limit int) ([]*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	available, err := s.availableVehicles(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 3
	}

	similar := make([]*vehicle.Vehicle, 0, limit)
	filters := vehicle.ListFilters{Make: v.Make}
	for _, cand := range available {
		if cand.ID == id || !filters.Matches(cand) {
			continue
		}
		similar = append(similar, cand)
		if len(similar) == limit {
			break
		}
	}
	return similar, nil
}

// FeaturedVehicles returns the newest Available vehicles for the landing page.
func (s *InventoryService) FeaturedVehicles(ctx context.Context, limit int) ([]*vehicle.Vehicle, error) {
	available, err := s.availableVehicles(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 6
	}
	if len(available) > limit {
		available = available[:limit]
	}
	return available, nil
}

// Inquire checks that a vehicle can still be inquired about. Only Available
// vehicles accept inquiries.
func (s *InventoryService) Inquire(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status != vehicle.StatusAvailable {
		return nil, fmt.Errorf("vehicle is no longer available: %w", xerrors.ErrConflict)
	}
	return v, nil
}

// Snapshot materializes the storefront listing for a new live subscriber.
func (s *InventoryService) Snapshot(ctx context.Context) (interface{}, error) {
	vehicles, err := s.availableVehicles(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"vehicles": vehicles,
		"count":    len(vehicles),
	}, nil
}

func (s *InventoryService) availableVehicles(ctx context.Context) ([]*vehicle.Vehicle, error) {
	if s.listing != nil {
		if cached, ok := s.listing.GetAvailable(ctx); ok {
			return cached, nil
		}
	}

	vehicles, err := s.vehicleRepo.FindByStatus(ctx, vehicle.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to load storefront listing: %w", err)
	}

	if s.listing != nil {
		s.listing.SetAvailable(ctx, vehicles)
	}
	return vehicles, nil
}

func (s *InventoryService) invalidateListing(ctx context.Context) {
	if s.listing != nil {
		s.listing.Invalidate(ctx)
	}
}

func (s *InventoryService) broadcast(event wstypes.EventType, id string, v *vehicle.Vehicle) {
	if s.hub != nil {
		s.hub.BroadcastVehicleChange(event, id, v)
	}
}

// applyUpdate copies non-nil request fields onto the stored record. A nil
// field means "leave unchanged"; Images and Features replace wholesale when
// provided.
func applyUpdate(v *vehicle.Vehicle, req *vehicle.UpdateVehicleRequest) {
	if req.ReferenceNumber != nil {
		v.ReferenceNumber = *req.ReferenceNumber
	}
	if req.ChassisNumber != nil {
		v.ChassisNumber = *req.ChassisNumber
	}
	if req.Make != nil {
		v.Make = *req.Make
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.Drivetrain != nil {
		v.Drivetrain = *req.Drivetrain
	}
	if req.Transmission != nil {
		v.Transmission = *req.Transmission
	}
	if req.Fuel != nil {
		v.Fuel = *req.Fuel
	}
	if req.BodyType != nil {
		v.BodyType = *req.BodyType
	}
	if req.Mileage != nil {
		v.Mileage = *req.Mileage
	}
	if req.EngineSizeCC != nil {
		v.EngineSizeCC = req.EngineSizeCC
	}
	if req.Features != nil {
		v.Features = pq.StringArray(req.Features)
	}
	if req.Price != nil {
		v.Price = *req.Price
	}
	if req.Currency != nil {
		v.Currency = *req.Currency
	}
	if req.Condition != nil {
		v.Condition = *req.Condition
	}
	if req.Status != nil {
		v.Status = *req.Status
	}
	if req.Inspection != nil {
		v.Inspection = *req.Inspection
	}
	if req.ArrivalDate != nil {
		v.ArrivalDate = req.ArrivalDate
	}
	if req.SaleDate != nil {
		v.SaleDate = req.SaleDate
	}
	if req.BuyerDetails != nil {
		v.BuyerDetails = req.BuyerDetails
	}
	if req.FinalPrice != nil {
		v.FinalPrice = req.FinalPrice
	}
	if req.SalespersonID != nil {
		v.SalespersonID = req.SalespersonID
	}
	if req.Images != nil {
		v.Images = vehicle.NormalizeFeatured(req.Images)
	}
}
