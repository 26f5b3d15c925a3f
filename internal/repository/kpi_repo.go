package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// KPIRepository exposes the independent aggregate reads the KPI engine
// fans out over. Every query is scoped to one organization; none depends
// on another's result, so callers may run them concurrently.
type KPIRepository interface {
	CountActiveVehicles(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error)
	CountActiveDrivers(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error)
	FindLoadsCreatedBetween(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.Load, error)
	SumDeliveredRevenue(ctx context.Context, orgID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	SumDeliveredMiles(ctx context.Context, orgID uuid.UUID, start, end time.Time) (float64, error)
	CountInspectionsSince(ctx context.Context, orgID uuid.UUID, since time.Time) (int64, error)
	CountInspectionDueBetween(ctx context.Context, orgID uuid.UUID, from, to time.Time) (int64, error)
	CountInspectionOverdue(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error)
}

type kpiRepository struct {
	db *gorm.DB
}

func NewKPIRepository(db *gorm.DB) KPIRepository {
	return &kpiRepository{db: db}
}

// CountActiveVehicles counts vehicles active as of a point in time. The
// created_at bound makes the same query usable for the previous-period
// comparison without a status-history table.
func (r *kpiRepository) CountActiveVehicles(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Vehicle{}).
		Where("organization_id = ? AND status = ? AND created_at <= ?", orgID, model.VehicleStatusActive, asOf).
		Count(&count).Error
	return count, err
}

func (r *kpiRepository) CountActiveDrivers(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Driver{}).
		Where("organization_id = ? AND status = ? AND created_at <= ?", orgID, model.DriverStatusActive, asOf).
		Count(&count).Error
	return count, err
}

// FindLoadsCreatedBetween returns the status/rate/distance projection of
// loads created inside a window. Segmentation happens in the service.
func (r *kpiRepository) FindLoadsCreatedBetween(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.Load, error) {
	var loads []model.Load
	err := GetDB(ctx, r.db).Model(&model.Load{}).
		Select("id, status, rate, distance_miles, created_at").
		Where("organization_id = ? AND created_at >= ? AND created_at < ?", orgID, start, end).
		Find(&loads).Error
	return loads, err
}

func (r *kpiRepository) SumDeliveredRevenue(ctx context.Context, orgID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Value decimal.Decimal
	}
	err := GetDB(ctx, r.db).Model(&model.Load{}).
		Select("COALESCE(SUM(rate), 0) as value").
		Where("organization_id = ? AND status = ? AND delivered_at >= ? AND delivered_at < ?",
			orgID, model.LoadStatusDelivered, start, end).
		Scan(&result).Error
	return result.Value, err
}

func (r *kpiRepository) SumDeliveredMiles(ctx context.Context, orgID uuid.UUID, start, end time.Time) (float64, error) {
	var result struct {
		Value float64
	}
	err := GetDB(ctx, r.db).Model(&model.Load{}).
		Select("COALESCE(SUM(distance_miles), 0) as value").
		Where("organization_id = ? AND status = ? AND delivered_at >= ? AND delivered_at < ?",
			orgID, model.LoadStatusDelivered, start, end).
		Scan(&result).Error
	return result.Value, err
}

func (r *kpiRepository) CountInspectionsSince(ctx context.Context, orgID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Inspection{}).
		Where("organization_id = ? AND inspected_at >= ?", orgID, since).
		Count(&count).Error
	return count, err
}

func (r *kpiRepository) CountInspectionDueBetween(ctx context.Context, orgID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Vehicle{}).
		Where("organization_id = ? AND status != ? AND next_inspection_due >= ? AND next_inspection_due <= ?",
			orgID, model.VehicleStatusRetired, from, to).
		Count(&count).Error
	return count, err
}

func (r *kpiRepository) CountInspectionOverdue(ctx context.Context, orgID uuid.UUID, asOf time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Vehicle{}).
		Where("organization_id = ? AND status != ? AND next_inspection_due < ?",
			orgID, model.VehicleStatusRetired, asOf).
		Count(&count).Error
	return count, err
}
