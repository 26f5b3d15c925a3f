package model

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a completed journey used for IFTA mileage reporting.
// Jurisdictions carries the per-state/province mileage split that the
// quarterly report aggregates.
type Trip struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	VehicleID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	DriverID       *uuid.UUID         `gorm:"type:uuid;index" json:"driver_id"`
	VehicleUnit    string             `gorm:"type:varchar(30)" json:"vehicle_unit"`
	DriverName     string             `gorm:"type:varchar(200)" json:"driver_name"`
	StartDate      time.Time          `gorm:"type:date;not null;index" json:"start_date"`
	EndDate        time.Time          `gorm:"type:date;not null" json:"end_date"`
	StartLocation  string             `gorm:"type:varchar(255)" json:"start_location"`
	EndLocation    string             `gorm:"type:varchar(255)" json:"end_location"`
	TotalMiles     float64            `json:"total_miles"`
	FuelGallons    float64            `json:"fuel_gallons"`
	Jurisdictions  []TripJurisdiction `gorm:"foreignKey:TripID" json:"jurisdictions"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// TripJurisdiction is the miles a trip ran inside one jurisdiction
type TripJurisdiction struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TripID       uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	Jurisdiction string    `gorm:"type:varchar(2);not null" json:"jurisdiction"` // e.g. TX, NM, ON
	Miles        float64   `json:"miles"`
}
