package model

import (
	"time"

	"github.com/google/uuid"
)

// InspectionResult enum constants
const (
	InspectionPassed = "passed"
	InspectionFailed = "failed"
)

// Inspection records a DOT/periodic vehicle inspection
type Inspection struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	VehicleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	InspectedAt    time.Time `gorm:"not null;index" json:"inspected_at"`
	Result         string    `gorm:"type:varchar(20);not null;default:'passed'" json:"result"` // passed, failed
	Inspector      string    `gorm:"type:varchar(100)" json:"inspector"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}
