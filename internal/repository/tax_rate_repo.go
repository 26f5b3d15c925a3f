package repository

import (
	"context"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaxRateRepository interface {
	Upsert(ctx context.Context, rate *model.JurisdictionTaxRate) error
	RatesForQuarter(ctx context.Context, quarter, year int) (map[string]decimal.Decimal, error)
}

type taxRateRepository struct {
	db *gorm.DB
}

func NewTaxRateRepository(db *gorm.DB) TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) Upsert(ctx context.Context, rate *model.JurisdictionTaxRate) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

// RatesForQuarter returns jurisdiction code -> per-gallon rate for one
// IFTA quarter. Jurisdictions without a published rate are simply absent;
// the assembler treats them as zero-rated.
func (r *taxRateRepository) RatesForQuarter(ctx context.Context, quarter, year int) (map[string]decimal.Decimal, error) {
	var rates []model.JurisdictionTaxRate
	if err := GetDB(ctx, r.db).
		Where("quarter = ? AND year = ?", quarter, year).
		Find(&rates).Error; err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(rates))
	for _, rate := range rates {
		out[rate.Jurisdiction] = rate.Rate
	}
	return out, nil
}
