package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionGenerateQuarterly   = "GENERATE_IFTA_QUARTERLY"
	ActionGenerateTripLog     = "GENERATE_TRIP_LOG"
	ActionGenerateFuelSummary = "GENERATE_FUEL_SUMMARY"
	ActionGenerateCustom      = "GENERATE_CUSTOM_REPORT"
)

// AuditLog tracks Who, What, and When for report generation and other
// organization-level changes
type AuditLog struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	Action         string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID       string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/file name)
	EntityName     string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details        string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}
