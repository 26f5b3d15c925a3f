package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuelRepository interface {
	Create(ctx context.Context, purchase *model.FuelPurchase) error
	FindByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.FuelPurchase, error)
	List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.FuelPurchase, int64, error)
}

type fuelRepository struct {
	db *gorm.DB
}

func NewFuelRepository(db *gorm.DB) FuelRepository {
	return &fuelRepository{db: db}
}

func (r *fuelRepository) Create(ctx context.Context, purchase *model.FuelPurchase) error {
	return GetDB(ctx, r.db).Create(purchase).Error
}

func (r *fuelRepository) FindByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.FuelPurchase, error) {
	var purchases []model.FuelPurchase
	err := GetDB(ctx, r.db).
		Where("organization_id = ? AND purchase_date >= ? AND purchase_date <= ?", orgID, start, end).
		Order("purchase_date asc").
		Find(&purchases).Error
	return purchases, err
}

func (r *fuelRepository) List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.FuelPurchase, int64, error) {
	var purchases []model.FuelPurchase
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.FuelPurchase{}).Where("organization_id = ?", orgID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("organization_id = ?", orgID).
		Order("purchase_date desc").
		Offset(offset).Limit(limit).
		Find(&purchases).Error; err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}
