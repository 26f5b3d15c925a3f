package model

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus enum constants
const (
	VehicleStatusActive      = "active"
	VehicleStatusMaintenance = "maintenance"
	VehicleStatusRetired     = "retired"
)

// Vehicle is a power unit in an organization's fleet.
// NextInspectionDue drives the maintenance-due KPI buckets.
type Vehicle struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitNumber        string     `gorm:"type:varchar(30);not null" json:"unit_number"`
	VIN               string     `gorm:"type:varchar(17)" json:"vin"`
	Make              string     `gorm:"type:varchar(50)" json:"make"`
	Model             string     `gorm:"type:varchar(50)" json:"model"`
	Year              int        `json:"year"`
	Status            string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // active, maintenance, retired
	OdometerMiles     float64    `json:"odometer_miles"`
	NextInspectionDue *time.Time `gorm:"type:date;index" json:"next_inspection_due"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
