package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateFuelPurchaseRequest struct {
	VehicleID    string  `json:"vehicle_id" binding:"required,uuid"`
	VehicleUnit  string  `json:"vehicle_unit"`
	PurchaseDate string  `json:"purchase_date" binding:"required"` // YYYY-MM-DD
	Jurisdiction string  `json:"jurisdiction" binding:"required,len=2"`
	Vendor       string  `json:"vendor"`
	Location     string  `json:"location"`
	Gallons      float64 `json:"gallons" binding:"required,gt=0"`
	Amount       string  `json:"amount" binding:"required"` // decimal string, e.g. "142.50"
}

// --- Interface ---

type FuelService interface {
	Create(ctx context.Context, orgID string, req CreateFuelPurchaseRequest) (*model.FuelPurchase, error)
	List(ctx context.Context, orgID string, page, limit int) ([]model.FuelPurchase, int64, error)
}

type fuelService struct {
	fuelRepo repository.FuelRepository
}

func NewFuelService(fuelRepo repository.FuelRepository) FuelService {
	return &fuelService{fuelRepo: fuelRepo}
}

// --- Implementation ---

func (s *fuelService) Create(ctx context.Context, orgID string, req CreateFuelPurchaseRequest) (*model.FuelPurchase, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}
	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase date (expected YYYY-MM-DD): %w", err)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("invalid amount: must not be negative")
	}

	purchase := model.FuelPurchase{
		OrganizationID: id,
		VehicleID:      vehicleID,
		VehicleUnit:    req.VehicleUnit,
		PurchaseDate:   purchaseDate,
		Jurisdiction:   req.Jurisdiction,
		Vendor:         req.Vendor,
		Location:       req.Location,
		Gallons:        req.Gallons,
		Amount:         amount,
	}

	if err := s.fuelRepo.Create(ctx, &purchase); err != nil {
		return nil, fmt.Errorf("failed to create fuel purchase: %w", err)
	}
	return &purchase, nil
}

func (s *fuelService) List(ctx context.Context, orgID string, page, limit int) ([]model.FuelPurchase, int64, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid organization id: %w", err)
	}

	purchases, total, err := s.fuelRepo.List(ctx, id, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fuel purchases: %w", err)
	}
	return purchases, total, nil
}
