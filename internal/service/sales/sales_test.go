package sales

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"garimoto-service/internal/domain/salesperson"
	"garimoto-service/internal/domain/vehicle"
	xerrors "garimoto-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*vehicle.Vehicle
	seq      int
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[string]*vehicle.Vehicle{}}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == "" {
		r.seq++
		v.ID = fmt.Sprintf("veh-%d", r.seq)
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) FindByID(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) FindAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*vehicle.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeVehicleRepo) FindByStatus(ctx context.Context, status vehicle.Status) ([]*vehicle.Vehicle, error) {
	all, _ := r.FindAll(ctx)
	out := make([]*vehicle.Vehicle, 0, len(all))
	for _, v := range all {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id string, v *vehicle.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *v
	cp.ID = id
	r.vehicles[id] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

type fakePeopleRepo struct {
	people map[string]*salesperson.Salesperson
}

func newFakePeopleRepo() *fakePeopleRepo {
	return &fakePeopleRepo{people: map[string]*salesperson.Salesperson{}}
}

func (r *fakePeopleRepo) Create(ctx context.Context, s *salesperson.Salesperson) error {
	if s.ID == "" {
		s.ID = fmt.Sprintf("sp-%d", len(r.people)+1)
	}
	r.people[s.ID] = s
	return nil
}

func (r *fakePeopleRepo) FindByID(ctx context.Context, id string) (*salesperson.Salesperson, error) {
	s, ok := r.people[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return s, nil
}

func (r *fakePeopleRepo) FindAll(ctx context.Context) ([]*salesperson.Salesperson, error) {
	out := make([]*salesperson.Salesperson, 0, len(r.people))
	for _, s := range r.people {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakePeopleRepo) Update(ctx context.Context, id string, s *salesperson.Salesperson) error {
	if _, ok := r.people[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.people[id] = s
	return nil
}

func (r *fakePeopleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.people[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.people, id)
	return nil
}

func (r *fakePeopleRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, s := range r.people {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func seedVehicle(t *testing.T, repo *fakeVehicleRepo, status vehicle.Status) *vehicle.Vehicle {
	t.Helper()
	v := &vehicle.Vehicle{
		ReferenceNumber: "GT-0001",
		ChassisNumber:   "JTMBK33V",
		Make:            "Toyota",
		Model:           "Prado",
		Year:            2019,
		Color:           "White",
		Drivetrain:      vehicle.Drivetrain4x4,
		Transmission:    vehicle.TransmissionAutomatic,
		Fuel:            vehicle.FuelDiesel,
		BodyType:        vehicle.BodySUV,
		Mileage:         45000,
		Price:           4500000,
		Currency:        vehicle.CurrencyKSh,
		Condition:       vehicle.ConditionUsed,
		Status:          status,
		Inspection:      vehicle.InspectionPassed,
	}
	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return v
}

func soldVehicle(t *testing.T, repo *fakeVehicleRepo, saleDate string, finalPrice float64, spID *string) *vehicle.Vehicle {
	t.Helper()
	v := seedVehicle(t, repo, vehicle.StatusSold)
	v.SaleDate = &saleDate
	v.FinalPrice = &finalPrice
	v.SalespersonID = spID
	if err := repo.Update(context.Background(), v.ID, v); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}
	return v
}

func newTestService(vr *fakeVehicleRepo, pr *fakePeopleRepo) *SalesService {
	return NewSalesService(vr, pr, nil, nil, zap.NewNop())
}

func TestMarkSoldStampsSaleFacts(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()
	pr := newFakePeopleRepo()
	sp := &salesperson.Salesperson{Name: "Jane", Email: "jane@garimoto.co.ke"}
	pr.Create(ctx, sp)

	v := seedVehicle(t, vr, vehicle.StatusAvailable)
	svc := newTestService(vr, pr)

	sold, err := svc.MarkSold(ctx, v.ID, &vehicle.MarkSoldRequest{
		SaleDate:      "2026-08-15",
		BuyerDetails:  "John Mwangi, 0722000000",
		FinalPrice:    4200000,
		SalespersonID: &sp.ID,
	})
	if err != nil {
		t.Fatalf("mark sold failed: %v", err)
	}

	if sold.Status != vehicle.StatusSold {
		t.Fatalf("expected Sold status, got %s", sold.Status)
	}
	if sold.SaleDate == nil || *sold.SaleDate != "2026-08-15" {
		t.Fatalf("sale date not stamped: %+v", sold.SaleDate)
	}
	if sold.FinalPrice == nil || *sold.FinalPrice != 4200000 {
		t.Fatalf("final price not stamped: %+v", sold.FinalPrice)
	}
	if sold.DisplayPrice() != 4200000 {
		t.Fatalf("expected display price to switch to final price, got %v", sold.DisplayPrice())
	}
}

func TestMarkSoldRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()
	v := seedVehicle(t, vr, vehicle.StatusAvailable)
	svc := newTestService(vr, newFakePeopleRepo())

	_, err := svc.MarkSold(ctx, v.ID, &vehicle.MarkSoldRequest{
		SaleDate:     "15/08/2026",
		BuyerDetails: "John",
		FinalPrice:   100,
	})
	if err == nil {
		t.Fatal("expected error for malformed sale date")
	}
	if _, ok := err.(vehicle.FieldErrors); !ok {
		t.Fatalf("expected FieldErrors, got %T", err)
	}

	unknown := "sp-unknown"
	_, err = svc.MarkSold(ctx, v.ID, &vehicle.MarkSoldRequest{
		SaleDate:      "2026-08-15",
		BuyerDetails:  "John",
		FinalPrice:    100,
		SalespersonID: &unknown,
	})
	if err == nil {
		t.Fatal("expected error for unknown salesperson")
	}
}

func TestCanTransitionIsTotal(t *testing.T) {
	statuses := []vehicle.Status{vehicle.StatusIncoming, vehicle.StatusAvailable, vehicle.StatusSold}
	for _, from := range statuses {
		for _, to := range statuses {
			if !CanTransition(from, to) {
				t.Errorf("expected %s -> %s to be permitted", from, to)
			}
		}
	}
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()
	sold := soldVehicle(t, vr, "2026-07-01", 4000000, nil)
	svc := newTestService(vr, newFakePeopleRepo())

	// Un-selling a vehicle is permitted and keeps the sale facts.
	v, err := svc.SetStatus(ctx, sold.ID, vehicle.StatusAvailable)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if v.Status != vehicle.StatusAvailable {
		t.Fatalf("expected Available, got %s", v.Status)
	}
	if v.SaleDate == nil || v.FinalPrice == nil {
		t.Fatal("sale facts should survive a status rollback")
	}

	if _, err := svc.SetStatus(ctx, sold.ID, "Scrapped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestTotalRevenueSkipsMissingPrices(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()
	soldVehicle(t, vr, "2026-06-01", 1000, nil)
	soldVehicle(t, vr, "2026-06-02", 2500, nil)

	// A sold record with no final price contributes nothing.
	broken := soldVehicle(t, vr, "2026-06-03", 99, nil)
	broken.FinalPrice = nil
	vr.Update(ctx, broken.ID, broken)

	svc := newTestService(vr, newFakePeopleRepo())
	total, err := svc.TotalRevenue(ctx)
	if err != nil {
		t.Fatalf("revenue failed: %v", err)
	}
	if total != 3500 {
		t.Fatalf("expected 3500, got %v", total)
	}
}

func TestMonthlySalesBucketsAndSkipsBadDates(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()

	thisMonth := time.Now().Format("2006-01") + "-10"
	lastMonth := time.Now().AddDate(0, -1, 0).Format("2006-01") + "-05"
	soldVehicle(t, vr, thisMonth, 100, nil)
	soldVehicle(t, vr, thisMonth, 200, nil)
	soldVehicle(t, vr, lastMonth, 50, nil)
	soldVehicle(t, vr, "not-a-date", 999, nil)

	svc := newTestService(vr, newFakePeopleRepo())
	buckets, err := svc.MonthlySales(ctx, 3)
	if err != nil {
		t.Fatalf("monthly sales failed: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	last := buckets[len(buckets)-1]
	if last.Count != 2 || last.Revenue != 300 {
		t.Fatalf("unexpected current month bucket: %+v", last)
	}
	prev := buckets[len(buckets)-2]
	if prev.Count != 1 || prev.Revenue != 50 {
		t.Fatalf("unexpected previous month bucket: %+v", prev)
	}
}

func TestHistoryResolvesSalespersonNames(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()
	pr := newFakePeopleRepo()

	sp := &salesperson.Salesperson{Name: "Jane", Email: "jane@garimoto.co.ke"}
	pr.Create(ctx, sp)

	soldVehicle(t, vr, "2026-08-01", 100, &sp.ID)
	dangling := "sp-gone"
	soldVehicle(t, vr, "2026-08-02", 200, &dangling)

	svc := newTestService(vr, pr)
	records, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Newest sale first.
	if records[0].Vehicle.SaleDate == nil || *records[0].Vehicle.SaleDate != "2026-08-02" {
		t.Fatalf("expected newest sale first, got %+v", records[0].Vehicle.SaleDate)
	}
	if records[0].SalespersonName != "" {
		t.Fatalf("dangling reference should render as empty name, got %q", records[0].SalespersonName)
	}
	if records[1].SalespersonName != "Jane" {
		t.Fatalf("expected resolved name Jane, got %q", records[1].SalespersonName)
	}
}

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	vr := newFakeVehicleRepo()
	seedVehicle(t, vr, vehicle.StatusAvailable)
	seedVehicle(t, vr, vehicle.StatusAvailable)
	seedVehicle(t, vr, vehicle.StatusIncoming)
	soldVehicle(t, vr, "2026-08-01", 500, nil)

	svc := newTestService(vr, newFakePeopleRepo())
	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if stats.TotalVehicles != 4 || stats.Available != 2 || stats.Incoming != 1 || stats.Sold != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.TotalRevenue != 500 {
		t.Fatalf("expected revenue 500, got %v", stats.TotalRevenue)
	}
	if len(stats.RecentSales) != 1 {
		t.Fatalf("expected 1 recent sale, got %d", len(stats.RecentSales))
	}
}
