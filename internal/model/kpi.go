package model

import (
	"time"
)

// OrganizationKPISnapshot aggregates fleet KPIs over a rolling 30-day window,
// each counter paired with a percent-change string against the preceding
// 30-day window. Computed on demand, never persisted.
type OrganizationKPISnapshot struct {
	ActiveVehicles       int64  `json:"active_vehicles"`
	ActiveVehiclesChange string `json:"active_vehicles_change"`
	ActiveDrivers        int64  `json:"active_drivers"`
	ActiveDriversChange  string `json:"active_drivers_change"`

	ActiveLoads    int64 `json:"active_loads"`
	CompletedLoads int64 `json:"completed_loads"`
	InTransitLoads int64 `json:"in_transit_loads"`
	PendingLoads   int64 `json:"pending_loads"`

	// Pending-load breakdown. Urgent = pending for more than 24 hours.
	UrgentPendingLoads int64 `json:"urgent_pending_loads"`
	AwaitingPickup     int64 `json:"awaiting_pickup"`
	AwaitingAssignment int64 `json:"awaiting_assignment"`

	TotalRevenue   string `json:"total_revenue"`    // fixed 2 decimals
	RevenueChange  string `json:"revenue_change"`
	RevenuePerMile string `json:"revenue_per_mile"` // "0.00" when no miles

	TotalMiles         float64 `json:"total_miles"`
	MilesChange        string  `json:"miles_change"`
	MilesPerVehicleAvg float64 `json:"miles_per_vehicle_avg"`

	RecentInspections     int64   `json:"recent_inspections"`
	InspectionSuccessRate float64 `json:"inspection_success_rate"` // percent

	MaintenanceOverdue  int64 `json:"maintenance_overdue"`
	MaintenanceDueWeek  int64 `json:"maintenance_due_week"`  // due within 7 days
	MaintenanceDueMonth int64 `json:"maintenance_due_month"` // due within 30 days

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	GeneratedAt time.Time `json:"generated_at"`
}
