package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportType enum constants
const (
	ReportTypeQuarterly   = "IFTA_QUARTERLY"
	ReportTypeTripLog     = "TRIP_LOG"
	ReportTypeFuelSummary = "FUEL_SUMMARY"
	ReportTypeCustom      = "CUSTOM"
)

// Page format constants recognized by PDFOptions.Format
const (
	PageFormatA4     = "A4"
	PageFormatLetter = "Letter"
)

// IFTAReportData is one quarter's consolidated fuel-tax filing, assembled
// from trip and fuel-purchase records and handed to the PDF generator.
type IFTAReportData struct {
	OrganizationID string        `json:"organization_id"`
	CompanyName    string        `json:"company_name"`
	Quarter        int           `json:"quarter"` // 1-4
	Year           int           `json:"year"`
	ReportSummary  ReportSummary `json:"report_summary"`
}

// ReportSummary holds quarter totals plus the jurisdiction breakdown
type ReportSummary struct {
	TotalMiles            float64               `json:"total_miles"`
	TotalFuelPurchased    float64               `json:"total_fuel_purchased"`
	TotalFuelConsumed     float64               `json:"total_fuel_consumed"`
	TotalTaxDue           decimal.Decimal       `json:"total_tax_due"`
	JurisdictionBreakdown []JurisdictionSummary `json:"jurisdiction_breakdown"`
}

// JurisdictionSummary is one row of the quarterly breakdown. The sum of
// TaxDue across rows is expected to reconcile with ReportSummary.TotalTaxDue;
// the generator does not enforce that, the assembler does.
type JurisdictionSummary struct {
	Jurisdiction  string          `json:"jurisdiction"`
	Miles         float64         `json:"miles"`
	FuelPurchased float64         `json:"fuel_purchased"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxDue        decimal.Decimal `json:"tax_due"`
}

// GenerationResult is the outcome of one PDF generation call. Failures are
// carried in the result rather than a separate error value so that callers
// always get the same shape back.
type GenerationResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	FileName string `json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PDFOptions tunes page geometry and decoration for any report
type PDFOptions struct {
	Format           string `json:"format"`      // A4 or Letter, defaults to Letter
	Orientation      string `json:"orientation"` // portrait or landscape, defaults to portrait
	IncludeSignature bool   `json:"include_signature"`
	Watermark        string `json:"watermark,omitempty"`
}

// CustomReportOptions gates which sections a custom report includes
type CustomReportOptions struct {
	PDFOptions
	IncludeTrips           bool `json:"include_trips"`
	IncludeFuel            bool `json:"include_fuel"`
	IncludeTaxCalculations bool `json:"include_tax_calculations"`
}

// DateRange bounds a fuel-summary report
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GeneratedReport is the persisted audit row for every PDF the generator
// produced, so the dashboard can list and re-download past filings.
type GeneratedReport struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	ReportType     string    `gorm:"type:varchar(30);not null;index" json:"report_type"` // IFTA_QUARTERLY, TRIP_LOG, FUEL_SUMMARY, CUSTOM
	Quarter        int       `json:"quarter"`
	Year           int       `json:"year"`
	FileName       string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath       string    `gorm:"type:varchar(500);not null" json:"file_path"`
	FileSize       int64     `json:"file_size"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}
