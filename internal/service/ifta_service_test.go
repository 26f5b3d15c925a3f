package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeTripRepo struct {
	trips     []model.Trip
	created   []model.Trip
	lastStart time.Time
	lastEnd   time.Time
	err       error
}

func (f *fakeTripRepo) Create(ctx context.Context, trip *model.Trip) error {
	if f.err != nil {
		return f.err
	}
	trip.ID = uuid.New()
	f.created = append(f.created, *trip)
	return nil
}

func (f *fakeTripRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.trips {
		if f.trips[i].ID == id {
			return &f.trips[i], nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (f *fakeTripRepo) FindByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.Trip, error) {
	f.lastStart, f.lastEnd = start, end
	return f.trips, f.err
}

func (f *fakeTripRepo) List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.Trip, int64, error) {
	return f.trips, int64(len(f.trips)), f.err
}

type fakeFuelRepo struct {
	purchases []model.FuelPurchase
	created   []model.FuelPurchase
	err       error
}

func (f *fakeFuelRepo) Create(ctx context.Context, purchase *model.FuelPurchase) error {
	if f.err != nil {
		return f.err
	}
	purchase.ID = uuid.New()
	f.created = append(f.created, *purchase)
	return nil
}

func (f *fakeFuelRepo) FindByDateRange(ctx context.Context, orgID uuid.UUID, start, end time.Time) ([]model.FuelPurchase, error) {
	return f.purchases, f.err
}

func (f *fakeFuelRepo) List(ctx context.Context, orgID uuid.UUID, page, limit int) ([]model.FuelPurchase, int64, error) {
	return f.purchases, int64(len(f.purchases)), f.err
}

type fakeRateRepo struct {
	rates    map[string]decimal.Decimal
	upserted []model.JurisdictionTaxRate
	err      error
}

func (f *fakeRateRepo) Upsert(ctx context.Context, rate *model.JurisdictionTaxRate) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, *rate)
	return nil
}

func (f *fakeRateRepo) RatesForQuarter(ctx context.Context, quarter, year int) (map[string]decimal.Decimal, error) {
	return f.rates, f.err
}

func quarterlyTripFixture() []model.Trip {
	return []model.Trip{
		{
			TotalMiles:  600,
			FuelGallons: 90,
			Jurisdictions: []model.TripJurisdiction{
				{Jurisdiction: "TX", Miles: 600},
			},
		},
		{
			TotalMiles:  400,
			FuelGallons: 60,
			Jurisdictions: []model.TripJurisdiction{
				{Jurisdiction: "TX", Miles: 0},
				{Jurisdiction: "NM", Miles: 400},
			},
		},
	}
}

func TestBuildQuarterlyReport(t *testing.T) {
	tripRepo := &fakeTripRepo{trips: quarterlyTripFixture()}
	fuelRepo := &fakeFuelRepo{purchases: []model.FuelPurchase{
		{Jurisdiction: "TX", Gallons: 100},
		{Jurisdiction: "NM", Gallons: 60},
	}}
	rateRepo := &fakeRateRepo{rates: map[string]decimal.Decimal{
		"TX": decimal.RequireFromString("0.20"),
		"NM": decimal.RequireFromString("0.17"),
	}}
	s := NewIFTAService(tripRepo, fuelRepo, rateRepo)

	data, err := s.BuildQuarterlyReport(context.Background(), uuid.NewString(), 2, 2024)
	if err != nil {
		t.Fatalf("BuildQuarterlyReport: %v", err)
	}

	summary := data.ReportSummary
	if summary.TotalMiles != 1000 {
		t.Fatalf("total miles = %v, want 1000", summary.TotalMiles)
	}
	if summary.TotalFuelConsumed != 150 {
		t.Fatalf("fuel consumed = %v, want 150", summary.TotalFuelConsumed)
	}
	if summary.TotalFuelPurchased != 160 {
		t.Fatalf("fuel purchased = %v, want 160", summary.TotalFuelPurchased)
	}

	if len(summary.JurisdictionBreakdown) != 2 {
		t.Fatalf("breakdown rows = %d, want 2", len(summary.JurisdictionBreakdown))
	}
	nm, tx := summary.JurisdictionBreakdown[0], summary.JurisdictionBreakdown[1]
	if nm.Jurisdiction != "NM" || tx.Jurisdiction != "TX" {
		t.Fatalf("breakdown not sorted by code: %s, %s", nm.Jurisdiction, tx.Jurisdiction)
	}

	// TX burned 60% of the 150 consumed gallons: 90 gal at $0.20.
	if !tx.TaxDue.Equal(decimal.RequireFromString("18.00")) {
		t.Fatalf("TX tax due = %s, want 18.00", tx.TaxDue)
	}
	// NM burned the other 40%: 60 gal at $0.17.
	if !nm.TaxDue.Equal(decimal.RequireFromString("10.20")) {
		t.Fatalf("NM tax due = %s, want 10.20", nm.TaxDue)
	}

	rowSum := decimal.Zero
	for _, row := range summary.JurisdictionBreakdown {
		rowSum = rowSum.Add(row.TaxDue)
	}
	if !summary.TotalTaxDue.Equal(rowSum) {
		t.Fatalf("total tax %s does not reconcile with row sum %s", summary.TotalTaxDue, rowSum)
	}

	if !tripRepo.lastStart.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Q2 start = %v, want April 1", tripRepo.lastStart)
	}
	if tripRepo.lastEnd.Month() != time.June || tripRepo.lastEnd.Day() != 30 {
		t.Fatalf("Q2 end = %v, want June 30", tripRepo.lastEnd)
	}
}

func TestBuildQuarterlyReport_UnpublishedRate(t *testing.T) {
	tripRepo := &fakeTripRepo{trips: quarterlyTripFixture()}
	fuelRepo := &fakeFuelRepo{}
	rateRepo := &fakeRateRepo{rates: map[string]decimal.Decimal{}}
	s := NewIFTAService(tripRepo, fuelRepo, rateRepo)

	data, err := s.BuildQuarterlyReport(context.Background(), uuid.NewString(), 1, 2024)
	if err != nil {
		t.Fatalf("BuildQuarterlyReport: %v", err)
	}
	for _, row := range data.ReportSummary.JurisdictionBreakdown {
		if !row.TaxDue.IsZero() {
			t.Fatalf("%s tax due = %s, want 0 without a published rate", row.Jurisdiction, row.TaxDue)
		}
	}
	if !data.ReportSummary.TotalTaxDue.IsZero() {
		t.Fatalf("total tax due = %s, want 0", data.ReportSummary.TotalTaxDue)
	}
}

func TestBuildQuarterlyReport_FuelOnlyJurisdiction(t *testing.T) {
	tripRepo := &fakeTripRepo{}
	fuelRepo := &fakeFuelRepo{purchases: []model.FuelPurchase{
		{Jurisdiction: "AZ", Gallons: 50},
	}}
	rateRepo := &fakeRateRepo{rates: map[string]decimal.Decimal{
		"AZ": decimal.RequireFromString("0.26"),
	}}
	s := NewIFTAService(tripRepo, fuelRepo, rateRepo)

	data, err := s.BuildQuarterlyReport(context.Background(), uuid.NewString(), 3, 2024)
	if err != nil {
		t.Fatalf("BuildQuarterlyReport: %v", err)
	}

	rows := data.ReportSummary.JurisdictionBreakdown
	if len(rows) != 1 || rows[0].Jurisdiction != "AZ" {
		t.Fatalf("breakdown = %+v, want a single AZ row", rows)
	}
	if rows[0].FuelPurchased != 50 {
		t.Fatalf("AZ fuel purchased = %v, want 50", rows[0].FuelPurchased)
	}
	// No miles means no apportioned consumption, so no tax.
	if !rows[0].TaxDue.IsZero() {
		t.Fatalf("AZ tax due = %s, want 0", rows[0].TaxDue)
	}
}

func TestBuildQuarterlyReport_InvalidInput(t *testing.T) {
	s := NewIFTAService(&fakeTripRepo{}, &fakeFuelRepo{}, &fakeRateRepo{})

	if _, err := s.BuildQuarterlyReport(context.Background(), uuid.NewString(), 0, 2024); err == nil || !strings.Contains(err.Error(), "invalid quarter") {
		t.Fatalf("expected invalid quarter error, got %v", err)
	}
	if _, err := s.BuildQuarterlyReport(context.Background(), "nope", 2, 2024); err == nil || !strings.Contains(err.Error(), "invalid organization id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestBuildQuarterlyReport_RepoError(t *testing.T) {
	s := NewIFTAService(&fakeTripRepo{err: context.DeadlineExceeded}, &fakeFuelRepo{}, &fakeRateRepo{})

	_, err := s.BuildQuarterlyReport(context.Background(), uuid.NewString(), 2, 2024)
	if err == nil || !strings.Contains(err.Error(), "failed to fetch trips") {
		t.Fatalf("expected wrapped trip fetch error, got %v", err)
	}
}

func TestQuarterBounds(t *testing.T) {
	start, end := quarterBounds(1, 2024)
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Q1 start = %v", start)
	}
	if end.Month() != time.March || end.Day() != 31 {
		t.Fatalf("Q1 end = %v, want March 31", end)
	}

	start, end = quarterBounds(4, 2023)
	if start.Month() != time.October || end.Month() != time.December || end.Day() != 31 {
		t.Fatalf("Q4 bounds = %v .. %v", start, end)
	}
	if !end.Before(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Q4 end %v leaks into the next year", end)
	}
}

func TestUpsertQuarterRates(t *testing.T) {
	rateRepo := &fakeRateRepo{}
	s := NewIFTAService(&fakeTripRepo{}, &fakeFuelRepo{}, rateRepo)

	err := s.UpsertQuarterRates(context.Background(), UpsertQuarterRatesRequest{
		Quarter: 3,
		Year:    2024,
		Rates: []QuarterRateInput{
			{Jurisdiction: "TX", Rate: "0.2000"},
			{Jurisdiction: "NM", Rate: "0.1700"},
		},
	})
	if err != nil {
		t.Fatalf("UpsertQuarterRates: %v", err)
	}

	if len(rateRepo.upserted) != 2 {
		t.Fatalf("upserted rates = %d, want 2", len(rateRepo.upserted))
	}
	first := rateRepo.upserted[0]
	if first.Jurisdiction != "TX" || first.Quarter != 3 || first.Year != 2024 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.Rate.Equal(decimal.RequireFromString("0.20")) {
		t.Fatalf("TX rate = %s, want 0.20", first.Rate)
	}
}

func TestUpsertQuarterRates_InvalidInput(t *testing.T) {
	rateRepo := &fakeRateRepo{}
	s := NewIFTAService(&fakeTripRepo{}, &fakeFuelRepo{}, rateRepo)

	err := s.UpsertQuarterRates(context.Background(), UpsertQuarterRatesRequest{
		Quarter: 5,
		Year:    2024,
		Rates:   []QuarterRateInput{{Jurisdiction: "TX", Rate: "0.20"}},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid quarter") {
		t.Fatalf("expected invalid quarter error, got %v", err)
	}

	err = s.UpsertQuarterRates(context.Background(), UpsertQuarterRatesRequest{
		Quarter: 2,
		Year:    2024,
		Rates:   []QuarterRateInput{{Jurisdiction: "TX", Rate: "not-a-rate"}},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid rate for TX") {
		t.Fatalf("expected invalid rate error, got %v", err)
	}

	err = s.UpsertQuarterRates(context.Background(), UpsertQuarterRatesRequest{
		Quarter: 2,
		Year:    2024,
		Rates:   []QuarterRateInput{{Jurisdiction: "TX", Rate: "-0.01"}},
	})
	if err == nil || !strings.Contains(err.Error(), "must not be negative") {
		t.Fatalf("expected negative rate error, got %v", err)
	}

	if len(rateRepo.upserted) != 0 {
		t.Fatalf("invalid requests must not persist rates, got %d", len(rateRepo.upserted))
	}
}
