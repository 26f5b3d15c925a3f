package pdf

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"backend/internal/config"
	"backend/internal/model"

	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	return NewService(config.ReportsConfig{
		OutputDir: filepath.Join(dir, "out"),
		TmpDir:    filepath.Join(dir, "tmp"),
	})
}

func quarterlyFixture() model.IFTAReportData {
	rateTX, _ := decimal.NewFromString("0.20")
	rateNM, _ := decimal.NewFromString("0.17")
	return model.IFTAReportData{
		OrganizationID: "org1",
		CompanyName:    "Acme Carriers LLC",
		Quarter:        2,
		Year:           2024,
		ReportSummary: model.ReportSummary{
			TotalMiles:         1000,
			TotalFuelPurchased: 160,
			TotalFuelConsumed:  150,
			TotalTaxDue:        decimal.RequireFromString("28.20"),
			JurisdictionBreakdown: []model.JurisdictionSummary{
				{Jurisdiction: "NM", Miles: 400, FuelPurchased: 60, TaxRate: rateNM, TaxDue: decimal.RequireFromString("10.20")},
				{Jurisdiction: "TX", Miles: 600, FuelPurchased: 100, TaxRate: rateTX, TaxDue: decimal.RequireFromString("18.00")},
			},
		},
	}
}

func TestGenerateQuarterlyReport(t *testing.T) {
	s := newTestService(t)
	result := s.GenerateQuarterlyReport(quarterlyFixture(), model.PDFOptions{IncludeSignature: true})

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if ok, _ := regexp.MatchString(`^ifta-quarterly-2-2024-\d+\.pdf$`, result.FileName); !ok {
		t.Fatalf("unexpected file name %q", result.FileName)
	}
	info, err := os.Stat(result.FilePath)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if info.Size() != result.FileSize {
		t.Fatalf("FileSize %d does not match bytes on disk %d", result.FileSize, info.Size())
	}
	if result.FileSize == 0 {
		t.Fatal("empty report file")
	}
}

func TestGenerateQuarterlyReport_Validation(t *testing.T) {
	s := newTestService(t)

	data := quarterlyFixture()
	data.OrganizationID = ""
	if result := s.GenerateQuarterlyReport(data, model.PDFOptions{}); result.Success || result.Error == "" {
		t.Fatalf("expected failure for missing organization, got %+v", result)
	}

	data = quarterlyFixture()
	data.Quarter = 5
	result := s.GenerateQuarterlyReport(data, model.PDFOptions{})
	if result.Success || !strings.Contains(result.Error, "invalid quarter") {
		t.Fatalf("expected invalid quarter failure, got %+v", result)
	}
}

func TestGenerateQuarterlyReport_Watermark(t *testing.T) {
	s := newTestService(t)
	result := s.GenerateQuarterlyReport(quarterlyFixture(), model.PDFOptions{
		Format:    model.PageFormatA4,
		Watermark: "DRAFT",
	})
	if !result.Success {
		t.Fatalf("expected success with watermark, got %q", result.Error)
	}
}

func TestGenerateTripLogReport(t *testing.T) {
	s := newTestService(t)

	trips := make([]model.Trip, 40)
	for i := range trips {
		trips[i] = model.Trip{
			VehicleUnit:   "TRK-101",
			StartDate:     time.Date(2024, 4, 1+i%28, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2024, 4, 2+i%28, 0, 0, 0, 0, time.UTC),
			StartLocation: "Dallas, TX",
			EndLocation:   "Santa Fe, NM",
			TotalMiles:    500,
			FuelGallons:   75,
			Jurisdictions: []model.TripJurisdiction{
				{Jurisdiction: "TX", Miles: 300},
				{Jurisdiction: "NM", Miles: 200},
			},
		}
	}

	result := s.GenerateTripLogReport(trips, "org1", model.PDFOptions{})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if ok, _ := regexp.MatchString(`^trip-log-org1-\d+\.pdf$`, result.FileName); !ok {
		t.Fatalf("unexpected file name %q", result.FileName)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func TestGenerateTripLogReport_Empty(t *testing.T) {
	s := newTestService(t)
	result := s.GenerateTripLogReport(nil, "org1", model.PDFOptions{})
	if !result.Success {
		t.Fatalf("empty trip log should still render, got %q", result.Error)
	}
}

func TestGenerateFuelSummaryReport(t *testing.T) {
	s := newTestService(t)

	dateRange := model.DateRange{
		Start: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	purchases := []model.FuelPurchase{
		{
			VehicleUnit:  "TRK-101",
			PurchaseDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
			Jurisdiction: "TX",
			Vendor:       "Flying J Travel Center",
			Location:     "Amarillo Truck Stop Plaza #42",
			Gallons:      120.5,
			Amount:       decimal.RequireFromString("430.25"),
		},
		{
			VehicleUnit:  "TRK-102",
			PurchaseDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Jurisdiction: "NM",
			Vendor:       "Pilot",
			Location:     "Tucumcari",
			Gallons:      80,
			Amount:       decimal.RequireFromString("292.00"),
		},
	}

	result := s.GenerateFuelSummaryReport(purchases, "org1", dateRange, model.PDFOptions{})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if ok, _ := regexp.MatchString(`^fuel-summary-org1-\d+\.pdf$`, result.FileName); !ok {
		t.Fatalf("unexpected file name %q", result.FileName)
	}
}

func TestGenerateFuelSummaryReport_InvertedRange(t *testing.T) {
	s := newTestService(t)
	dateRange := model.DateRange{
		Start: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	result := s.GenerateFuelSummaryReport(nil, "org1", dateRange, model.PDFOptions{})
	if result.Success || !strings.Contains(result.Error, "date range") {
		t.Fatalf("expected date range failure, got %+v", result)
	}
}

func TestGenerateCustomReport(t *testing.T) {
	s := newTestService(t)
	report := quarterlyFixture()
	data := CustomReportData{TaxReport: &report}

	opts := model.CustomReportOptions{IncludeTaxCalculations: true}
	result := s.GenerateCustomReport(data, "org1", opts)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
}

func TestGenerateCustomReport_NoSections(t *testing.T) {
	s := newTestService(t)
	result := s.GenerateCustomReport(CustomReportData{}, "org1", model.CustomReportOptions{})
	if result.Success || !strings.Contains(result.Error, "at least one section") {
		t.Fatalf("expected no-section failure, got %+v", result)
	}
}

func TestEnsureDirectories_Idempotent(t *testing.T) {
	s := newTestService(t)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.EnsureDirectories()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("EnsureDirectories call %d: %v", i, err)
		}
	}
	for _, dir := range []string{s.outputDir, s.tmpDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %s not created: %v", dir, err)
		}
	}
}
