// internal/service/sales/sales.go
package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"garimoto-service/internal/cache"
	"garimoto-service/internal/domain/salesperson"
	"garimoto-service/internal/domain/vehicle"
	wstypes "garimoto-service/internal/domain/ws"
	xerrors "garimoto-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Broadcaster pushes sale and inventory events to live subscribers.
type Broadcaster interface {
	BroadcastVehicleChange(event wstypes.EventType, vehicleID string, v interface{})
	BroadcastSale(vehicleID string, v interface{})
}

// MonthlyBucket is one month of the sales report, keyed YYYY-MM.
type MonthlyBucket struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats feeds the admin dashboard cards.
type DashboardStats struct {
	TotalVehicles int                   `json:"total_vehicles"`
	Available     int                   `json:"available"`
	Incoming      int                   `json:"incoming"`
	Sold          int                   `json:"sold"`
	TotalRevenue  float64               `json:"total_revenue"`
	RecentSales   []*vehicle.SaleRecord `json:"recent_sales"`
}

type SalesService struct {
	vehicleRepo vehicle.Repository
	peopleRepo  salesperson.Repository
	listing     *cache.ListingCache
	hub         Broadcaster
	logger      *zap.Logger
}

func NewSalesService(vehicleRepo vehicle.Repository, peopleRepo salesperson.Repository, listing *cache.ListingCache, hub Broadcaster, logger *zap.Logger) *SalesService {
	return &SalesService{
		vehicleRepo: vehicleRepo,
		peopleRepo:  peopleRepo,
		listing:     listing,
		hub:         hub,
		logger:      logger,
	}
}

// allowedTransitions is deliberately total: the original console lets an
// admin move a vehicle between any two lifecycle states, including rolling a
// sale back. Kept as an explicit table so a future restriction is data, not
// new control flow.
var allowedTransitions = map[vehicle.Status][]vehicle.Status{
	vehicle.StatusIncoming:  {vehicle.StatusAvailable, vehicle.StatusSold},
	vehicle.StatusAvailable: {vehicle.StatusIncoming, vehicle.StatusSold},
	vehicle.StatusSold:      {vehicle.StatusIncoming, vehicle.StatusAvailable},
}

// CanTransition reports whether a status change is permitted. Same-status is
// a no-op and always allowed.
func CanTransition(from, to vehicle.Status) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// MarkSold records a completed sale: the status flips to Sold and the sale
// facts (date, buyer, negotiated price, optional salesperson) are stamped on
// the record in the same write.
func (s *SalesService) MarkSold(ctx context.Context, id string, req *vehicle.MarkSoldRequest) (*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(dateLayout, req.SaleDate); err != nil {
		return nil, vehicle.FieldErrors{"sale_date": "Sale date must be a YYYY-MM-DD date"}
	}
	if req.FinalPrice <= 0 {
		return nil, vehicle.FieldErrors{"final_price": "Final price must be a positive number"}
	}
	if !CanTransition(v.Status, vehicle.StatusSold) {
		return nil, fmt.Errorf("cannot sell a vehicle in status %s: %w", v.Status, xerrors.ErrConflict)
	}
	if req.SalespersonID != nil && *req.SalespersonID != "" {
		if _, err := s.peopleRepo.FindByID(ctx, *req.SalespersonID); err != nil {
			if xerrors.Is(err, xerrors.ErrNotFound) {
				return nil, vehicle.FieldErrors{"salesperson_id": "Unknown salesperson"}
			}
			return nil, err
		}
		v.SalespersonID = req.SalespersonID
	}

	v.Status = vehicle.StatusSold
	v.SaleDate = &req.SaleDate
	v.BuyerDetails = &req.BuyerDetails
	v.FinalPrice = &req.FinalPrice

	if fe := v.Validate(); fe != nil {
		return nil, fe
	}

	if err := s.vehicleRepo.Update(ctx, id, v); err != nil {
		s.logger.Error("failed to mark vehicle sold", zap.String("vehicle_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("vehicle sold",
		zap.String("vehicle_id", id),
		zap.String("sale_date", req.SaleDate),
		zap.Float64("final_price", req.FinalPrice),
	)

	s.invalidateListing(ctx)
	if s.hub != nil {
		s.hub.BroadcastVehicleChange(wstypes.EventTypeVehicleUpdated, id, v)
		s.hub.BroadcastSale(id, v)
	}

	return v, nil
}

// SetStatus moves a vehicle to any lifecycle status. Every transition is
// permitted; moving a Sold vehicle back keeps its sale facts so the history
// view still reflects the original sale.
func (s *SalesService) SetStatus(ctx context.Context, id string, status vehicle.Status) (*vehicle.Vehicle, error) {
	if !vehicle.ValidStatus(status) {
		return nil, vehicle.FieldErrors{"status": "Status must be Incoming, Available or Sold"}
	}

	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(v.Status, status) {
		return nil, fmt.Errorf("transition %s -> %s not permitted: %w", v.Status, status, xerrors.ErrConflict)
	}

	v.Status = status
	if status == vehicle.StatusIncoming && v.ArrivalDate == nil {
		today := time.Now().Format(dateLayout)
		v.ArrivalDate = &today
	}

	if err := s.vehicleRepo.Update(ctx, id, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle status changed",
		zap.String("vehicle_id", id),
		zap.String("status", string(status)),
	)

	s.invalidateListing(ctx)
	if s.hub != nil {
		s.hub.BroadcastVehicleChange(wstypes.EventTypeVehicleUpdated, id, v)
	}

	return v, nil
}

// History returns sold vehicles with their salesperson names resolved,
// newest sale first. A dangling salesperson reference renders as an empty
// name rather than failing the view.
func (s *SalesService) History(ctx context.Context) ([]*vehicle.SaleRecord, error) {
	sold, err := s.vehicleRepo.FindByStatus(ctx, vehicle.StatusSold)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}

	names, err := s.salespersonNames(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*vehicle.SaleRecord, 0, len(sold))
	for _, v := range sold {
		rec := &vehicle.SaleRecord{Vehicle: v}
		if v.SalespersonID != nil {
			rec.SalespersonName = names[*v.SalespersonID]
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		ti, iok := s.parseSaleDate(records[i].Vehicle)
		tj, jok := s.parseSaleDate(records[j].Vehicle)
		if iok != jok {
			return iok // records without a usable date sink to the bottom
		}
		return ti.After(tj)
	})

	return records, nil
}

// TotalRevenue sums the final prices of every sold vehicle. Sold records
// without a final price are skipped and logged rather than counted as zero
// silently.
func (s *SalesService) TotalRevenue(ctx context.Context) (float64, error) {
	sold, err := s.vehicleRepo.FindByStatus(ctx, vehicle.StatusSold)
	if err != nil {
		return 0, fmt.Errorf("failed to load sold vehicles: %w", err)
	}
	return s.sumRevenue(sold), nil
}

// MonthlySales buckets sales into the trailing months window, newest month
// last. Vehicles whose sale date does not parse are skipped and logged.
func (s *SalesService) MonthlySales(ctx context.Context, months int) ([]MonthlyBucket, error) {
	if months <= 0 {
		months = 6
	}

	sold, err := s.vehicleRepo.FindByStatus(ctx, vehicle.StatusSold)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold vehicles: %w", err)
	}

	now := time.Now()
	buckets := make([]MonthlyBucket, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		m := now.AddDate(0, -(months - 1 - i), 0).Format("2006-01")
		buckets[i] = MonthlyBucket{Month: m}
		index[m] = i
	}

	for _, v := range sold {
		t, ok := s.parseSaleDate(v)
		if !ok {
			continue
		}
		i, in := index[t.Format("2006-01")]
		if !in {
			continue
		}
		buckets[i].Count++
		if v.FinalPrice != nil {
			buckets[i].Revenue += *v.FinalPrice
		}
	}

	return buckets, nil
}

// Dashboard aggregates the counters, revenue and recent sales shown on the
// admin landing page.
func (s *SalesService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	vehicles, err := s.vehicleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	stats := &DashboardStats{TotalVehicles: len(vehicles)}
	sold := make([]*vehicle.Vehicle, 0)
	for _, v := range vehicles {
		switch v.Status {
		case vehicle.StatusAvailable:
			stats.Available++
		case vehicle.StatusIncoming:
			stats.Incoming++
		case vehicle.StatusSold:
			stats.Sold++
			sold = append(sold, v)
		}
	}
	stats.TotalRevenue = s.sumRevenue(sold)

	recent, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentSales = recent

	return stats, nil
}

func (s *SalesService) sumRevenue(sold []*vehicle.Vehicle) float64 {
	var total float64
	for _, v := range sold {
		if v.FinalPrice == nil {
			s.logger.Warn("sold vehicle has no final price, excluded from revenue",
				zap.String("vehicle_id", v.ID))
			continue
		}
		total += *v.FinalPrice
	}
	return total
}

func (s *SalesService) parseSaleDate(v *vehicle.Vehicle) (time.Time, bool) {
	if v.SaleDate == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, *v.SaleDate)
	if err != nil {
		s.logger.Warn("unparseable sale date, skipped in reporting",
			zap.String("vehicle_id", v.ID),
			zap.String("sale_date", *v.SaleDate),
		)
		return time.Time{}, false
	}
	return t, true
}

func (s *SalesService) salespersonNames(ctx context.Context) (map[string]string, error) {
	people, err := s.peopleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load salespeople: %w", err)
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (s *SalesService) invalidateListing(ctx context.Context) {
	if s.listing != nil {
		s.listing.Invalidate(ctx)
	}
}
