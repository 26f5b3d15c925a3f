package model

import (
	"time"

	"github.com/google/uuid"
)

// DriverStatus enum constants
const (
	DriverStatusActive   = "active"
	DriverStatusInactive = "inactive"
	DriverStatusOnLeave  = "on_leave"
)

// Driver is a CDL holder employed by an organization
type Driver struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"last_name"`
	LicenseNumber  string     `gorm:"type:varchar(30)" json:"license_number"`
	LicenseState   string     `gorm:"type:varchar(2)" json:"license_state"`
	LicenseExpiry  *time.Time `gorm:"type:date" json:"license_expiry"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // active, inactive, on_leave
	HiredAt        *time.Time `gorm:"type:date" json:"hired_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
