package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	FindByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.Trip, error)
	List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.Trip, int64, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *model.Trip) error {
	return GetDB(ctx, r.db).Create(trip).Error
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := GetDB(ctx, r.db).Preload("Jurisdictions").First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindByDateRange returns trips starting inside [start, end], with their
// jurisdiction mileage splits preloaded. Used by the IFTA assembler and
// the trip-log report.
func (r *tripRepository) FindByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.Trip, error) {
	var trips []model.Trip
	err := GetDB(ctx, r.db).Preload("Jurisdictions").
		Where("organization_id = ? AND start_date >= ? AND start_date <= ?", orgID, start, end).
		Order("start_date asc").
		Find(&trips).Error
	return trips, err
}

func (r *tripRepository) List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.Trip, int64, error) {
	var trips []model.Trip
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Trip{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Jurisdictions").
		Where("organization_id = ?", orgID).
		Order("start_date desc").
		Offset(offset).Limit(limit).
		Find(&trips).Error; err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}
