package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type QuarterRateInput struct {
	Jurisdiction string `json:"jurisdiction" binding:"required,len=2"`
	Rate         string `json:"rate" binding:"required"` // USD per gallon, decimal string
}

type UpsertQuarterRatesRequest struct {
	Quarter int                `json:"quarter" binding:"required,min=1,max=4"`
	Year    int                `json:"year" binding:"required,min=2000"`
	Rates   []QuarterRateInput `json:"rates" binding:"required,min=1,dive"`
}

// --- Interface ---

type IFTAService interface {
	BuildQuarterlyReport(ctx context.Context, orgID string, quarter, year int) (model.IFTAReportData, error)
	UpsertQuarterRates(ctx context.Context, req UpsertQuarterRatesRequest) error
}

type iftaService struct {
	tripRepo repository.TripRepository
	fuelRepo repository.FuelRepository
	rateRepo repository.TaxRateRepository
}

func NewIFTAService(tripRepo repository.TripRepository, fuelRepo repository.FuelRepository, rateRepo repository.TaxRateRepository) IFTAService {
	return &iftaService{
		tripRepo: tripRepo,
		fuelRepo: fuelRepo,
		rateRepo: rateRepo,
	}
}

// BuildQuarterlyReport consolidates one quarter's trips and fuel purchases
// into the per-jurisdiction breakdown the PDF generator renders. Tax due
// per jurisdiction is miles-consumed fuel share times the published rate;
// the summary total is the exact sum of the rows, so the two always
// reconcile.
func (s *iftaService) BuildQuarterlyReport(ctx context.Context, orgID string, quarter, year int) (model.IFTAReportData, error) {
	if quarter < 1 || quarter > 4 {
		return model.IFTAReportData{}, fmt.Errorf("invalid quarter %d: must be 1-4", quarter)
	}

	id, err := uuid.Parse(orgID)
	if err != nil {
		return model.IFTAReportData{}, fmt.Errorf("invalid organization id: %w", err)
	}

	start, end := quarterBounds(quarter, year)

	trips, err := s.tripRepo.FindByDateRange(ctx, id, start, end)
	if err != nil {
		return model.IFTAReportData{}, fmt.Errorf("failed to fetch trips for quarter: %w", err)
	}

	purchases, err := s.fuelRepo.FindByDateRange(ctx, id, start, end)
	if err != nil {
		return model.IFTAReportData{}, fmt.Errorf("failed to fetch fuel purchases for quarter: %w", err)
	}

	rates, err := s.rateRepo.RatesForQuarter(ctx, quarter, year)
	if err != nil {
		return model.IFTAReportData{}, fmt.Errorf("failed to fetch tax rates for quarter: %w", err)
	}

	milesByJurisdiction := make(map[string]float64)
	var totalMiles, totalFuelConsumed float64
	for _, trip := range trips {
		totalMiles += trip.TotalMiles
		totalFuelConsumed += trip.FuelGallons
		for _, j := range trip.Jurisdictions {
			milesByJurisdiction[j.Jurisdiction] += j.Miles
		}
	}

	fuelByJurisdiction := make(map[string]float64)
	var totalFuelPurchased float64
	for _, p := range purchases {
		fuelByJurisdiction[p.Jurisdiction] += p.Gallons
		totalFuelPurchased += p.Gallons
	}

	codes := make(map[string]struct{}, len(milesByJurisdiction))
	for code := range milesByJurisdiction {
		codes[code] = struct{}{}
	}
	for code := range fuelByJurisdiction {
		codes[code] = struct{}{}
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	breakdown := make([]model.JurisdictionSummary, 0, len(sorted))
	totalTaxDue := decimal.Zero
	for _, code := range sorted {
		rate := rates[code] // zero-rated when no rate is published
		taxDue := taxForJurisdiction(milesByJurisdiction[code], totalMiles, totalFuelConsumed, rate)
		breakdown = append(breakdown, model.JurisdictionSummary{
			Jurisdiction:  code,
			Miles:         milesByJurisdiction[code],
			FuelPurchased: fuelByJurisdiction[code],
			TaxRate:       rate,
			TaxDue:        taxDue,
		})
		totalTaxDue = totalTaxDue.Add(taxDue)
	}

	return model.IFTAReportData{
		OrganizationID: orgID,
		Quarter:        quarter,
		Year:           year,
		ReportSummary: model.ReportSummary{
			TotalMiles:            totalMiles,
			TotalFuelPurchased:    totalFuelPurchased,
			TotalFuelConsumed:     totalFuelConsumed,
			TotalTaxDue:           totalTaxDue,
			JurisdictionBreakdown: breakdown,
		},
	}, nil
}

// UpsertQuarterRates loads a quarter's published per-gallon rates. Rates
// are keyed by (jurisdiction, quarter, year), so re-posting a jurisdiction
// overwrites its previous value for that quarter.
func (s *iftaService) UpsertQuarterRates(ctx context.Context, req UpsertQuarterRatesRequest) error {
	if req.Quarter < 1 || req.Quarter > 4 {
		return fmt.Errorf("invalid quarter %d: must be 1-4", req.Quarter)
	}

	for _, in := range req.Rates {
		rate, err := decimal.NewFromString(in.Rate)
		if err != nil {
			return fmt.Errorf("invalid rate for %s: %w", in.Jurisdiction, err)
		}
		if rate.IsNegative() {
			return fmt.Errorf("invalid rate for %s: must not be negative", in.Jurisdiction)
		}

		record := model.JurisdictionTaxRate{
			Jurisdiction: in.Jurisdiction,
			Quarter:      req.Quarter,
			Year:         req.Year,
			Rate:         rate,
		}
		if err := s.rateRepo.Upsert(ctx, &record); err != nil {
			return fmt.Errorf("failed to upsert rate for %s: %w", in.Jurisdiction, err)
		}
	}
	return nil
}

// taxForJurisdiction apportions consumed fuel to a jurisdiction by its
// mileage share, then applies the per-gallon rate. Rounded to cents per
// IFTA filing convention.
func taxForJurisdiction(jurisdictionMiles, totalMiles, totalFuelConsumed float64, rate decimal.Decimal) decimal.Decimal {
	if totalMiles == 0 || jurisdictionMiles == 0 {
		return decimal.Zero
	}
	consumed := decimal.NewFromFloat(totalFuelConsumed * jurisdictionMiles / totalMiles)
	return consumed.Mul(rate).Round(2)
}

func quarterBounds(quarter, year int) (time.Time, time.Time) {
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return start, end
}
