package model

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a tenant. Every fleet entity hangs off one organization,
// and every query in the repository layer is scoped by organization_id.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	DOTNumber string    `gorm:"type:varchar(20)" json:"dot_number"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
