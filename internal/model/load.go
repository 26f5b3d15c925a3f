package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoadStatus enum constants
const (
	LoadStatusPending   = "pending"
	LoadStatusAssigned  = "assigned"
	LoadStatusInTransit = "in_transit"
	LoadStatusDelivered = "delivered"
	LoadStatusCancelled = "cancelled"
)

// Load is a dispatched freight job. Rate is the agreed linehaul amount;
// only delivered loads count toward revenue KPIs.
type Load struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	LoadNumber     string          `gorm:"type:varchar(30);not null" json:"load_number"`
	VehicleID      *uuid.UUID      `gorm:"type:uuid;index" json:"vehicle_id"`
	DriverID       *uuid.UUID      `gorm:"type:uuid;index" json:"driver_id"`
	Origin         string          `gorm:"type:varchar(255)" json:"origin"`
	Destination    string          `gorm:"type:varchar(255)" json:"destination"`
	Status         string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // pending, assigned, in_transit, delivered, cancelled
	Rate           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"rate"`
	DistanceMiles  float64         `json:"distance_miles"`
	PickupDate     *time.Time      `json:"pickup_date"`
	DeliveredAt    *time.Time      `gorm:"index" json:"delivered_at"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
