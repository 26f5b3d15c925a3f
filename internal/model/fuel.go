package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FuelPurchase is one fuel-stop receipt. Gallons feed the IFTA
// fuel-purchased totals for the jurisdiction the stop happened in.
type FuelPurchase struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	VehicleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	VehicleUnit    string          `gorm:"type:varchar(30)" json:"vehicle_unit"`
	PurchaseDate   time.Time       `gorm:"type:date;not null;index" json:"purchase_date"`
	Jurisdiction   string          `gorm:"type:varchar(2);not null" json:"jurisdiction"`
	Vendor         string          `gorm:"type:varchar(100)" json:"vendor"`
	Location       string          `gorm:"type:varchar(255)" json:"location"`
	Gallons        float64         `json:"gallons"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
