package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"backend/internal/config"
	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// Service renders fleet reports to PDF files under the configured output
// directory. It holds no mutable state; every call builds a document in
// memory and performs a single write at the end, so a failed call never
// leaves a partial file behind.
type Service struct {
	outputDir string
	tmpDir    string
	now       func() time.Time
}

func NewService(cfg config.ReportsConfig) *Service {
	return &Service{
		outputDir: cfg.OutputDir,
		tmpDir:    cfg.TmpDir,
		now:       time.Now,
	}
}

// EnsureDirectories creates the output and tmp directories if missing.
// MkdirAll treats an existing directory as success, so concurrent callers
// racing on first use are fine.
func (s *Service) EnsureDirectories() error {
	for _, dir := range []string{s.outputDir, s.tmpDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}
	return nil
}

// CustomReportData carries the section inputs for GenerateCustomReport;
// sections whose flag is off may be left empty.
type CustomReportData struct {
	Trips         []model.Trip
	FuelPurchases []model.FuelPurchase
	TaxReport     *model.IFTAReportData
}

// GenerateQuarterlyReport renders one quarter's consolidated IFTA filing:
// header, company/period info, the jurisdiction breakdown table, the tax
// summary block and an optional signature line.
func (s *Service) GenerateQuarterlyReport(data model.IFTAReportData, opts model.PDFOptions) (result model.GenerationResult) {
	defer capturePanic(&result)

	if data.OrganizationID == "" {
		return failResult("organization id is required")
	}
	if data.Quarter < 1 || data.Quarter > 4 {
		return failResult(fmt.Sprintf("invalid quarter %d: must be 1-4", data.Quarter))
	}
	if data.Year < 2000 {
		return failResult(fmt.Sprintf("invalid year %d", data.Year))
	}

	l := newLayout(opts.Format, opts.Orientation)
	drawHeader(l, "IFTA Quarterly Fuel Tax Report", fmt.Sprintf("Quarter %d, %d", data.Quarter, data.Year))

	company := data.CompanyName
	if company == "" {
		company = data.OrganizationID
	}
	drawKeyValueBlock(l, [][2]string{
		{"Company", company},
		{"Report Period", quarterLabel(data.Quarter, data.Year)},
		{"Filing Quarter", fmt.Sprintf("Q%d %d", data.Quarter, data.Year)},
	})

	headers := []string{"Jurisdiction", "Miles", "Fuel Purchased", "Tax Rate", "Tax Due"}
	widths := []float64{95, 105, 110, 90, 100}
	rows := make([][]string, 0, len(data.ReportSummary.JurisdictionBreakdown))
	for _, j := range data.ReportSummary.JurisdictionBreakdown {
		rows = append(rows, []string{
			j.Jurisdiction,
			formatQuantity(j.Miles),
			formatQuantity(j.FuelPurchased),
			formatRate(j.TaxRate),
			formatCurrency(j.TaxDue),
		})
	}
	drawTable(l, headers, widths, rows)

	summary := data.ReportSummary
	l.ensureSpace(blockReserve)
	l.write(marginLeft, 12, "B", "Tax Summary")
	l.advance(18)
	drawKeyValueBlock(l, [][2]string{
		{"Total Miles", formatQuantity(summary.TotalMiles)},
		{"Fuel Purchased (gal)", formatQuantity(summary.TotalFuelPurchased)},
		{"Fuel Consumed (gal)", formatQuantity(summary.TotalFuelConsumed)},
		{"Total Tax Due", formatCurrency(summary.TotalTaxDue)},
	})

	if opts.IncludeSignature {
		drawSignatureBlock(l)
	}

	fileName := fmt.Sprintf("ifta-quarterly-%d-%d-%d.pdf", data.Quarter, data.Year, s.now().UnixMilli())
	return s.writeDocument(l, opts, fileName)
}

// GenerateTripLogReport renders one fixed-height block per trip with its
// per-jurisdiction mileage sub-list. Blocks never split across pages when
// avoidable: the full block height is reserved before starting it, with a
// minimum headroom check for degenerate blocks taller than a page.
func (s *Service) GenerateTripLogReport(trips []model.Trip, orgID string, opts model.PDFOptions) (result model.GenerationResult) {
	defer capturePanic(&result)

	if orgID == "" {
		return failResult("organization id is required")
	}

	l := newLayout(opts.Format, opts.Orientation)
	drawHeader(l, "Trip Log Report", fmt.Sprintf("%d trips", len(trips)))

	for _, trip := range trips {
		height := tripBlockHeight(trip)
		needed := height
		if needed < blockReserve {
			needed = blockReserve
		}
		if needed > l.usable() {
			// Block taller than a page; reserve the headroom and let
			// the block continue across pages line by line.
			needed = blockReserve
		}
		l.ensureSpace(needed)
		drawTripBlock(l, trip)
	}

	if opts.IncludeSignature {
		drawSignatureBlock(l)
	}

	fileName := fmt.Sprintf("trip-log-%s-%d.pdf", orgID, s.now().UnixMilli())
	return s.writeDocument(l, opts, fileName)
}

// GenerateFuelSummaryReport renders a fixed-column table of fuel stops
// with running totals printed after the table. Long location strings are
// truncated with an ellipsis. The table paginates like the trip log.
func (s *Service) GenerateFuelSummaryReport(purchases []model.FuelPurchase, orgID string, dateRange model.DateRange, opts model.PDFOptions) (result model.GenerationResult) {
	defer capturePanic(&result)

	if orgID == "" {
		return failResult("organization id is required")
	}
	if dateRange.End.Before(dateRange.Start) {
		return failResult("invalid date range: end before start")
	}

	l := newLayout(opts.Format, opts.Orientation)
	drawHeader(l, "Fuel Purchase Summary",
		dateRange.Start.Format("Jan 2, 2006")+" - "+dateRange.End.Format("Jan 2, 2006"))

	headers := []string{"Date", "Unit", "Jur.", "Vendor", "Location", "Gallons", "Amount"}
	widths := []float64{70, 50, 40, 90, 110, 70, 70}

	var totalGallons float64
	totalAmount := decimal.Zero
	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, []string{
			p.PurchaseDate.Format("01/02/2006"),
			truncate(p.VehicleUnit, 8),
			p.Jurisdiction,
			truncate(p.Vendor, maxLocationLen),
			truncate(p.Location, maxLocationLen),
			formatQuantity(p.Gallons),
			formatCurrency(p.Amount),
		})
		totalGallons += p.Gallons
		totalAmount = totalAmount.Add(p.Amount)
	}
	drawTable(l, headers, widths, rows)
	drawTotalsRow(l, widths, []string{"Totals", "", "", "", "", formatQuantity(totalGallons), formatCurrency(totalAmount)})

	if opts.IncludeSignature {
		drawSignatureBlock(l)
	}

	fileName := fmt.Sprintf("fuel-summary-%s-%d.pdf", orgID, s.now().UnixMilli())
	return s.writeDocument(l, opts, fileName)
}

// GenerateCustomReport includes trip, fuel and tax sections according to
// the option flags; each section is a compact aggregate block.
func (s *Service) GenerateCustomReport(data CustomReportData, orgID string, opts model.CustomReportOptions) (result model.GenerationResult) {
	defer capturePanic(&result)

	if orgID == "" {
		return failResult("organization id is required")
	}
	if !opts.IncludeTrips && !opts.IncludeFuel && !opts.IncludeTaxCalculations {
		return failResult("custom report requires at least one section")
	}

	l := newLayout(opts.Format, opts.Orientation)
	drawHeader(l, "Custom Fleet Report", "")

	if opts.IncludeTrips {
		var miles, gallons float64
		for _, t := range data.Trips {
			miles += t.TotalMiles
			gallons += t.FuelGallons
		}
		l.ensureSpace(blockReserve)
		l.write(marginLeft, 12, "B", "Trips")
		l.advance(18)
		drawKeyValueBlock(l, [][2]string{
			{"Trip Count", fmt.Sprintf("%d", len(data.Trips))},
			{"Total Miles", formatQuantity(miles)},
			{"Fuel Consumed (gal)", formatQuantity(gallons)},
		})
	}

	if opts.IncludeFuel {
		var gallons float64
		amount := decimal.Zero
		for _, p := range data.FuelPurchases {
			gallons += p.Gallons
			amount = amount.Add(p.Amount)
		}
		l.ensureSpace(blockReserve)
		l.write(marginLeft, 12, "B", "Fuel Purchases")
		l.advance(18)
		drawKeyValueBlock(l, [][2]string{
			{"Purchase Count", fmt.Sprintf("%d", len(data.FuelPurchases))},
			{"Total Gallons", formatQuantity(gallons)},
			{"Total Amount", formatCurrency(amount)},
		})
	}

	if opts.IncludeTaxCalculations && data.TaxReport != nil {
		summary := data.TaxReport.ReportSummary
		l.ensureSpace(blockReserve)
		l.write(marginLeft, 12, "B", fmt.Sprintf("Tax Calculations (Q%d %d)", data.TaxReport.Quarter, data.TaxReport.Year))
		l.advance(18)
		drawKeyValueBlock(l, [][2]string{
			{"Jurisdictions", fmt.Sprintf("%d", len(summary.JurisdictionBreakdown))},
			{"Total Miles", formatQuantity(summary.TotalMiles)},
			{"Total Tax Due", formatCurrency(summary.TotalTaxDue)},
		})
	}

	if opts.IncludeSignature {
		drawSignatureBlock(l)
	}

	fileName := fmt.Sprintf("custom-report-%s-%d.pdf", orgID, s.now().UnixMilli())
	return s.writeDocument(l, opts.PDFOptions, fileName)
}

// --- Helpers ---

func tripBlockHeight(trip model.Trip) float64 {
	return 4*lineHeight + float64(len(trip.Jurisdictions))*smallLineHeight + 14
}

// drawTripBlock renders one trip record. The caller reserves the full
// block height up front when it fits on a page; the per-line checks only
// fire for blocks taller than a page, which continue on the next page
// instead of running past the bottom margin.
func drawTripBlock(l *layout, trip model.Trip) {
	l.ensureSpace(lineHeight)
	l.write(marginLeft, 10, "B",
		trip.StartDate.Format("01/02/2006")+" - "+trip.EndDate.Format("01/02/2006"))
	l.write(marginLeft+180, 10, "", "Unit "+trip.VehicleUnit)
	if trip.DriverName != "" {
		l.write(marginLeft+300, 10, "", trip.DriverName)
	}
	l.advance(lineHeight)

	l.ensureSpace(lineHeight)
	l.writeGray(marginLeft, 9, truncate(trip.StartLocation, 40)+" -> "+truncate(trip.EndLocation, 40))
	l.advance(lineHeight)

	l.ensureSpace(lineHeight)
	l.write(marginLeft, 9, "",
		fmt.Sprintf("Miles: %s    Fuel: %s gal", formatQuantity(trip.TotalMiles), formatQuantity(trip.FuelGallons)))
	l.advance(lineHeight)

	for _, j := range trip.Jurisdictions {
		l.ensureSpace(smallLineHeight)
		l.writeGray(marginLeft+20, 8, fmt.Sprintf("%s: %s mi", j.Jurisdiction, formatQuantity(j.Miles)))
		l.advance(smallLineHeight)
	}

	l.ensureSpace(lineHeight)
	l.advance(6)
	l.rule(marginLeft, l.pageW-marginRight)
	l.advance(lineHeight)
}

// writeDocument renders the layout and performs the single final write.
// Any failure maps to a result with Success=false and the original error
// message preserved.
func (s *Service) writeDocument(l *layout, opts model.PDFOptions, fileName string) model.GenerationResult {
	data, err := render(l, opts, s.now())
	if err != nil {
		return failResult(err.Error())
	}

	if err := s.EnsureDirectories(); err != nil {
		return failResult(err.Error())
	}

	filePath := filepath.Join(s.outputDir, fileName)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return failResult(fmt.Sprintf("failed to write report file: %v", err))
	}

	return model.GenerationResult{
		Success:  true,
		FilePath: filePath,
		FileName: fileName,
		FileSize: int64(len(data)),
	}
}

func failResult(msg string) model.GenerationResult {
	return model.GenerationResult{Success: false, Error: msg}
}

func capturePanic(result *model.GenerationResult) {
	if r := recover(); r != nil {
		*result = failResult(fmt.Sprintf("report generation failed: %v", r))
	}
}

func quarterLabel(quarter, year int) string {
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}
