package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"backend/internal/cache"
	"backend/internal/model"
	"backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fakeKPIRepo serves canned aggregates. The current window is identified
// by its end time matching the fixed clock; everything else is the
// previous window.
type fakeKPIRepo struct {
	vehiclesNow, vehiclesPrev  int64
	driversNow, driversPrev    int64
	loads                      []model.Load
	revenueNow, revenuePrev    decimal.Decimal
	milesNow, milesPrev        float64
	inspections                int64
	overdue, dueWeek, dueMonth int64
	err                        error
}

func (f *fakeKPIRepo) CountActiveVehicles(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error) {
	if asOf.Equal(testNow) {
		return f.vehiclesNow, f.err
	}
	return f.vehiclesPrev, f.err
}

func (f *fakeKPIRepo) CountActiveDrivers(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error) {
	if asOf.Equal(testNow) {
		return f.driversNow, f.err
	}
	return f.driversPrev, f.err
}

func (f *fakeKPIRepo) FindLoadsCreatedBetween(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.Load, error) {
	return f.loads, f.err
}

func (f *fakeKPIRepo) SumDeliveredRevenue(ctx context.Context, orgID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	if end.Equal(testNow) {
		return f.revenueNow, f.err
	}
	return f.revenuePrev, f.err
}

func (f *fakeKPIRepo) SumDeliveredMiles(ctx context.Context, orgID uuid.UUID, start, end time.Time) (float64, error) {
	if end.Equal(testNow) {
		return f.milesNow, f.err
	}
	return f.milesPrev, f.err
}

func (f *fakeKPIRepo) CountInspectionsSince(ctx context.Context, orgID uuid.UUID, since time.Time) (int64, error) {
	return f.inspections, f.err
}

func (f *fakeKPIRepo) CountInspectionDueBetween(ctx context.Context, orgID uuid.UUID, from, to time.Time) (int64, error) {
	if to.Sub(from) <= 7*24*time.Hour {
		return f.dueWeek, f.err
	}
	return f.dueMonth, f.err
}

func (f *fakeKPIRepo) CountInspectionOverdue(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error) {
	return f.overdue, f.err
}

type fakeSnapshotCache struct {
	snapshot *model.OrganizationKPISnapshot
	sets     int
}

func (f *fakeSnapshotCache) Get(ctx context.Context, orgID string) (*model.OrganizationKPISnapshot, bool, error) {
	if f.snapshot != nil {
		return f.snapshot, true, nil
	}
	return nil, false, nil
}

func (f *fakeSnapshotCache) Set(ctx context.Context, orgID string, snapshot *model.OrganizationKPISnapshot) error {
	f.snapshot = snapshot
	f.sets++
	return nil
}

func newTestKPIService(repo *fakeKPIRepo, c cache.KPISnapshotCache) *kpiService {
	return &kpiService{repo: repo, cache: c, now: func() time.Time { return testNow }}
}

func TestComputeOrganizationKPIs_BroadcastsRefresh(t *testing.T) {
	hub := websocket.NewHub()
	s := newTestKPIService(&fakeKPIRepo{vehiclesNow: 4}, cache.NewNoopKPICache())
	s.hub = hub
	orgID := uuid.NewString()

	done := make(chan error, 1)
	go func() {
		_, err := s.ComputeOrganizationKPIs(context.Background(), orgID)
		done <- err
	}()

	select {
	case event := <-hub.Broadcast:
		if event.Type != websocket.EventKPIRefreshed {
			t.Fatalf("event type = %q", event.Type)
		}
		if event.OrganizationID != orgID {
			t.Fatalf("event org = %q, want %q", event.OrganizationID, orgID)
		}
		snapshot, ok := event.Payload.(model.OrganizationKPISnapshot)
		if !ok || snapshot.ActiveVehicles != 4 {
			t.Fatalf("event payload = %+v", event.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no kpi refresh event broadcast")
	}

	if err := <-done; err != nil {
		t.Fatalf("ComputeOrganizationKPIs: %v", err)
	}
}

func TestComputeOrganizationKPIs(t *testing.T) {
	repo := &fakeKPIRepo{
		vehiclesNow:  10,
		vehiclesPrev: 8,
		driversNow:   5,
		driversPrev:  5,
		revenueNow:   decimal.RequireFromString("50000"),
		revenuePrev:  decimal.RequireFromString("40000"),
		milesNow:     20000,
		milesPrev:    16000,
		inspections:  4,
		overdue:      1,
		dueWeek:      2,
		dueMonth:     6,
		loads: []model.Load{
			{Status: model.LoadStatusAssigned, CreatedAt: testNow.Add(-2 * time.Hour)},
			{Status: model.LoadStatusAssigned, CreatedAt: testNow.Add(-3 * time.Hour)},
			{Status: model.LoadStatusInTransit, CreatedAt: testNow.Add(-5 * time.Hour)},
			{Status: model.LoadStatusDelivered, CreatedAt: testNow.Add(-72 * time.Hour)},
			{Status: model.LoadStatusDelivered, CreatedAt: testNow.Add(-48 * time.Hour)},
			{Status: model.LoadStatusDelivered, CreatedAt: testNow.Add(-24 * time.Hour)},
			{Status: model.LoadStatusCancelled, CreatedAt: testNow.Add(-1 * time.Hour)},
			{Status: model.LoadStatusPending, CreatedAt: testNow.Add(-2 * time.Hour)},
			{Status: model.LoadStatusPending, CreatedAt: testNow.Add(-10 * time.Hour)},
			{Status: model.LoadStatusPending, CreatedAt: testNow.Add(-20 * time.Hour)},
			{Status: model.LoadStatusPending, CreatedAt: testNow.Add(-30 * time.Hour)},
			{Status: model.LoadStatusPending, CreatedAt: testNow.Add(-40 * time.Hour)},
		},
	}
	s := newTestKPIService(repo, cache.NewNoopKPICache())

	snap, err := s.ComputeOrganizationKPIs(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("ComputeOrganizationKPIs: %v", err)
	}

	if snap.ActiveVehicles != 10 || snap.ActiveVehiclesChange != "+25.0%" {
		t.Fatalf("vehicles = %d %q", snap.ActiveVehicles, snap.ActiveVehiclesChange)
	}
	if snap.ActiveDrivers != 5 || snap.ActiveDriversChange != "+0.0%" {
		t.Fatalf("drivers = %d %q", snap.ActiveDrivers, snap.ActiveDriversChange)
	}
	if snap.TotalRevenue != "50000.00" || snap.RevenueChange != "+25.0%" {
		t.Fatalf("revenue = %q change %q", snap.TotalRevenue, snap.RevenueChange)
	}
	if snap.RevenuePerMile != "2.50" {
		t.Fatalf("revenue per mile = %q, want 2.50", snap.RevenuePerMile)
	}
	if snap.TotalMiles != 20000 || snap.MilesChange != "+25.0%" {
		t.Fatalf("miles = %v change %q", snap.TotalMiles, snap.MilesChange)
	}
	if snap.MilesPerVehicleAvg != 2000 {
		t.Fatalf("miles per vehicle = %v, want 2000", snap.MilesPerVehicleAvg)
	}

	if snap.ActiveLoads != 3 || snap.InTransitLoads != 1 || snap.CompletedLoads != 3 {
		t.Fatalf("load buckets = active %d in-transit %d completed %d",
			snap.ActiveLoads, snap.InTransitLoads, snap.CompletedLoads)
	}
	if snap.PendingLoads != 5 || snap.UrgentPendingLoads != 2 {
		t.Fatalf("pending = %d urgent %d", snap.PendingLoads, snap.UrgentPendingLoads)
	}
	if snap.AwaitingPickup != 2 || snap.AwaitingAssignment != 3 {
		t.Fatalf("awaiting pickup %d assignment %d", snap.AwaitingPickup, snap.AwaitingAssignment)
	}

	if snap.RecentInspections != 4 || snap.InspectionSuccessRate != 87.5 {
		t.Fatalf("inspections = %d rate %v", snap.RecentInspections, snap.InspectionSuccessRate)
	}
	if snap.MaintenanceOverdue != 1 || snap.MaintenanceDueWeek != 2 || snap.MaintenanceDueMonth != 6 {
		t.Fatalf("maintenance = %d/%d/%d", snap.MaintenanceOverdue, snap.MaintenanceDueWeek, snap.MaintenanceDueMonth)
	}

	if !snap.PeriodEnd.Equal(testNow) || !snap.PeriodStart.Equal(testNow.AddDate(0, 0, -30)) {
		t.Fatalf("period = %v .. %v", snap.PeriodStart, snap.PeriodEnd)
	}
}

func TestComputeOrganizationKPIs_EmptyOrganization(t *testing.T) {
	s := newTestKPIService(&fakeKPIRepo{}, cache.NewNoopKPICache())

	snap, err := s.ComputeOrganizationKPIs(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("ComputeOrganizationKPIs: %v", err)
	}

	for name, change := range map[string]string{
		"vehicles": snap.ActiveVehiclesChange,
		"drivers":  snap.ActiveDriversChange,
		"revenue":  snap.RevenueChange,
		"miles":    snap.MilesChange,
	} {
		if change != "0%" {
			t.Fatalf("%s change = %q, want 0%% with no prior activity", name, change)
		}
	}
	if snap.RevenuePerMile != "0.00" {
		t.Fatalf("revenue per mile = %q, want 0.00", snap.RevenuePerMile)
	}
	if snap.MilesPerVehicleAvg != 0 {
		t.Fatalf("miles per vehicle = %v, want 0", snap.MilesPerVehicleAvg)
	}
	if snap.InspectionSuccessRate != 100 {
		t.Fatalf("inspection rate = %v, want 100 with no inspections", snap.InspectionSuccessRate)
	}
}

func TestComputeOrganizationKPIs_GrowthFromZero(t *testing.T) {
	s := newTestKPIService(&fakeKPIRepo{vehiclesNow: 3, milesNow: 100}, cache.NewNoopKPICache())

	snap, err := s.ComputeOrganizationKPIs(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("ComputeOrganizationKPIs: %v", err)
	}
	if snap.ActiveVehiclesChange != "+100%" {
		t.Fatalf("vehicles change = %q, want +100%% from zero base", snap.ActiveVehiclesChange)
	}
	if snap.MilesChange != "+100%" {
		t.Fatalf("miles change = %q, want +100%% from zero base", snap.MilesChange)
	}
}

func TestComputeOrganizationKPIs_RepoError(t *testing.T) {
	s := newTestKPIService(&fakeKPIRepo{err: context.DeadlineExceeded}, cache.NewNoopKPICache())

	_, err := s.ComputeOrganizationKPIs(context.Background(), uuid.NewString())
	if err == nil || !strings.Contains(err.Error(), "failed to fetch KPIs") {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestComputeOrganizationKPIs_InvalidID(t *testing.T) {
	s := newTestKPIService(&fakeKPIRepo{}, cache.NewNoopKPICache())

	_, err := s.ComputeOrganizationKPIs(context.Background(), "not-a-uuid")
	if err == nil || !strings.Contains(err.Error(), "invalid organization id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestComputeOrganizationKPIs_CacheHit(t *testing.T) {
	c := &fakeSnapshotCache{}
	repo := &fakeKPIRepo{vehiclesNow: 7}
	s := newTestKPIService(repo, c)
	orgID := uuid.NewString()

	first, err := s.ComputeOrganizationKPIs(context.Background(), orgID)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	if c.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", c.sets)
	}

	repo.err = context.DeadlineExceeded
	second, err := s.ComputeOrganizationKPIs(context.Background(), orgID)
	if err != nil {
		t.Fatalf("second compute should hit the cache: %v", err)
	}
	if second.ActiveVehicles != first.ActiveVehicles {
		t.Fatalf("cached snapshot mismatch: %d vs %d", second.ActiveVehicles, first.ActiveVehicles)
	}
}

func TestChangePercent(t *testing.T) {
	cases := []struct {
		current, previous float64
		want              string
	}{
		{0, 0, "0%"},
		{5, 0, "+100%"},
		{150, 100, "+50.0%"},
		{75, 100, "-25.0%"},
		{100, 100, "+0.0%"},
	}
	for _, c := range cases {
		if got := changePercent(c.current, c.previous); got != c.want {
			t.Fatalf("changePercent(%v, %v) = %q, want %q", c.current, c.previous, got, c.want)
		}
	}
}

func TestRevenuePerMile_ZeroMiles(t *testing.T) {
	if got := revenuePerMile(decimal.RequireFromString("5000"), 0); got != "0.00" {
		t.Fatalf("revenuePerMile with zero miles = %q, want 0.00", got)
	}
}

func TestMilesPerVehicle_ZeroVehicles(t *testing.T) {
	if got := milesPerVehicle(12000, 0); got != 0 {
		t.Fatalf("milesPerVehicle with zero vehicles = %v, want 0", got)
	}
}
