package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type TripJurisdictionInput struct {
	Jurisdiction string  `json:"jurisdiction" binding:"required,len=2"`
	Miles        float64 `json:"miles" binding:"min=0"`
}

type CreateTripRequest struct {
	VehicleID     string                  `json:"vehicle_id" binding:"required,uuid"`
	DriverID      string                  `json:"driver_id" binding:"omitempty,uuid"`
	VehicleUnit   string                  `json:"vehicle_unit"`
	DriverName    string                  `json:"driver_name"`
	StartDate     string                  `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate       string                  `json:"end_date" binding:"required"`   // YYYY-MM-DD
	StartLocation string                  `json:"start_location"`
	EndLocation   string                  `json:"end_location"`
	TotalMiles    float64                 `json:"total_miles" binding:"min=0"`
	FuelGallons   float64                 `json:"fuel_gallons" binding:"min=0"`
	Jurisdictions []TripJurisdictionInput `json:"jurisdictions" binding:"required,min=1,dive"`
}

// --- Interface ---

type TripService interface {
	Create(ctx context.Context, orgID string, req CreateTripRequest) (*model.Trip, error)
	Get(ctx context.Context, orgID, tripID string) (*model.Trip, error)
	List(ctx context.Context, orgID string, page, limit int) ([]model.Trip, int64, error)
}

type tripService struct {
	tripRepo repository.TripRepository
}

func NewTripService(tripRepo repository.TripRepository) TripService {
	return &tripService{tripRepo: tripRepo}
}

// --- Implementation ---

func (s *tripService) Create(ctx context.Context, orgID string, req CreateTripRequest) (*model.Trip, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}

	dateRange, err := ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	trip := model.Trip{
		OrganizationID: id,
		VehicleID:      vehicleID,
		VehicleUnit:    req.VehicleUnit,
		DriverName:     req.DriverName,
		StartDate:      dateRange.Start,
		EndDate:        dateRange.End,
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		TotalMiles:     req.TotalMiles,
		FuelGallons:    req.FuelGallons,
	}
	if req.DriverID != "" {
		driverID, err := uuid.Parse(req.DriverID)
		if err != nil {
			return nil, fmt.Errorf("invalid driver id: %w", err)
		}
		trip.DriverID = &driverID
	}
	for _, j := range req.Jurisdictions {
		trip.Jurisdictions = append(trip.Jurisdictions, model.TripJurisdiction{
			Jurisdiction: j.Jurisdiction,
			Miles:        j.Miles,
		})
	}

	if err := s.tripRepo.Create(ctx, &trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return &trip, nil
}

// Get looks a trip up by id. Trips belonging to another organization are
// reported as not found rather than forbidden.
func (s *tripService) Get(ctx context.Context, orgID, tripID string) (*model.Trip, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}
	tid, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip id: %w", err)
	}

	trip, err := s.tripRepo.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trip: %w", err)
	}
	if trip.OrganizationID != id {
		return nil, fmt.Errorf("trip not found")
	}
	return trip, nil
}

func (s *tripService) List(ctx context.Context, orgID string, page, limit int) ([]model.Trip, int64, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid organization id: %w", err)
	}

	trips, total, err := s.tripRepo.List(ctx, id, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	return trips, total, nil
}
