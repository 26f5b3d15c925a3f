package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JurisdictionTaxRate stores the per-gallon fuel tax rate a jurisdiction
// publishes for one IFTA quarter. Rates change quarterly, so validity is
// keyed by (jurisdiction, quarter, year) rather than date ranges.
type JurisdictionTaxRate struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Jurisdiction string          `gorm:"type:varchar(2);not null;uniqueIndex:idx_rate_period" json:"jurisdiction"`
	Quarter      int             `gorm:"not null;uniqueIndex:idx_rate_period" json:"quarter"` // 1-4
	Year         int             `gorm:"not null;uniqueIndex:idx_rate_period" json:"year"`
	Rate         decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"` // USD per gallon, e.g. 0.3500
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
