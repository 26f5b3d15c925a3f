package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend/internal/model"
	"backend/internal/pdf"
	"backend/internal/repository"
	"backend/internal/websocket"
	"backend/pkg/logger"

	"github.com/google/uuid"
)

// --- DTOs ---

type QuarterlyReportRequest struct {
	Quarter int              `json:"quarter" binding:"required,min=1,max=4"`
	Year    int              `json:"year" binding:"required,min=2000"`
	Options model.PDFOptions `json:"options"`
}

type RangeReportRequest struct {
	Start   string           `json:"start" binding:"required"` // YYYY-MM-DD
	End     string           `json:"end" binding:"required"`   // YYYY-MM-DD
	Options model.PDFOptions `json:"options"`
}

type CustomReportRequest struct {
	Quarter int                       `json:"quarter"`
	Year    int                       `json:"year"`
	Start   string                    `json:"start"`
	End     string                    `json:"end"`
	Options model.CustomReportOptions `json:"options" binding:"required"`
}

type GeneratedReportResponse struct {
	ID         string `json:"id"`
	ReportType string `json:"report_type"`
	Quarter    int    `json:"quarter,omitempty"`
	Year       int    `json:"year,omitempty"`
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	CreatedAt  string `json:"created_at"`
}

// --- Interface ---

// ReportService orchestrates assemble -> generate -> persist for every
// report type. Generator failures come back inside the GenerationResult;
// an error return means the data could not even be assembled or stored.
type ReportService interface {
	GenerateQuarterly(ctx context.Context, orgID string, req QuarterlyReportRequest) (model.GenerationResult, error)
	GenerateTripLog(ctx context.Context, orgID string, dateRange model.DateRange, opts model.PDFOptions) (model.GenerationResult, error)
	GenerateFuelSummary(ctx context.Context, orgID string, dateRange model.DateRange, opts model.PDFOptions) (model.GenerationResult, error)
	GenerateCustom(ctx context.Context, orgID string, req CustomReportRequest) (model.GenerationResult, error)
	ListReports(ctx context.Context, orgID, reportType string, page, limit int) ([]GeneratedReportResponse, int64, error)
	GetReport(ctx context.Context, orgID, reportID string) (*model.GeneratedReport, error)
	ListActivity(ctx context.Context, orgID string, page, limit int) ([]model.AuditLog, int64, error)
}

type reportService struct {
	generator  *pdf.Service
	ifta       IFTAService
	tripRepo   repository.TripRepository
	fuelRepo   repository.FuelRepository
	reportRepo repository.ReportRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	hub        *websocket.Hub
}

func NewReportService(
	generator *pdf.Service,
	ifta IFTAService,
	tripRepo repository.TripRepository,
	fuelRepo repository.FuelRepository,
	reportRepo repository.ReportRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) ReportService {
	return &reportService{
		generator:  generator,
		ifta:       ifta,
		tripRepo:   tripRepo,
		fuelRepo:   fuelRepo,
		reportRepo: reportRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		hub:        hub,
	}
}

// --- Implementation ---

func (s *reportService) GenerateQuarterly(ctx context.Context, orgID string, req QuarterlyReportRequest) (model.GenerationResult, error) {
	data, err := s.ifta.BuildQuarterlyReport(ctx, orgID, req.Quarter, req.Year)
	if err != nil {
		return model.GenerationResult{}, err
	}

	result := s.generator.GenerateQuarterlyReport(data, req.Options)
	if !result.Success {
		return result, nil
	}

	if err := s.recordReport(ctx, orgID, model.ReportTypeQuarterly, req.Quarter, req.Year, result, model.ActionGenerateQuarterly); err != nil {
		return model.GenerationResult{}, err
	}
	return result, nil
}

func (s *reportService) GenerateTripLog(ctx context.Context, orgID string, dateRange model.DateRange, opts model.PDFOptions) (model.GenerationResult, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("invalid organization id: %w", err)
	}

	trips, err := s.tripRepo.FindByDateRange(ctx, id, dateRange.Start, dateRange.End)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to fetch trips: %w", err)
	}

	result := s.generator.GenerateTripLogReport(trips, orgID, opts)
	if !result.Success {
		return result, nil
	}

	if err := s.recordReport(ctx, orgID, model.ReportTypeTripLog, 0, 0, result, model.ActionGenerateTripLog); err != nil {
		return model.GenerationResult{}, err
	}
	return result, nil
}

func (s *reportService) GenerateFuelSummary(ctx context.Context, orgID string, dateRange model.DateRange, opts model.PDFOptions) (model.GenerationResult, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("invalid organization id: %w", err)
	}

	purchases, err := s.fuelRepo.FindByDateRange(ctx, id, dateRange.Start, dateRange.End)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("failed to fetch fuel purchases: %w", err)
	}

	result := s.generator.GenerateFuelSummaryReport(purchases, orgID, dateRange, opts)
	if !result.Success {
		return result, nil
	}

	if err := s.recordReport(ctx, orgID, model.ReportTypeFuelSummary, 0, 0, result, model.ActionGenerateFuelSummary); err != nil {
		return model.GenerationResult{}, err
	}
	return result, nil
}

func (s *reportService) GenerateCustom(ctx context.Context, orgID string, req CustomReportRequest) (model.GenerationResult, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return model.GenerationResult{}, fmt.Errorf("invalid organization id: %w", err)
	}

	var data pdf.CustomReportData

	if req.Options.IncludeTrips || req.Options.IncludeFuel {
		dateRange, err := ParseDateRange(req.Start, req.End)
		if err != nil {
			return model.GenerationResult{}, err
		}
		if req.Options.IncludeTrips {
			if data.Trips, err = s.tripRepo.FindByDateRange(ctx, id, dateRange.Start, dateRange.End); err != nil {
				return model.GenerationResult{}, fmt.Errorf("failed to fetch trips: %w", err)
			}
		}
		if req.Options.IncludeFuel {
			if data.FuelPurchases, err = s.fuelRepo.FindByDateRange(ctx, id, dateRange.Start, dateRange.End); err != nil {
				return model.GenerationResult{}, fmt.Errorf("failed to fetch fuel purchases: %w", err)
			}
		}
	}

	if req.Options.IncludeTaxCalculations {
		taxReport, err := s.ifta.BuildQuarterlyReport(ctx, orgID, req.Quarter, req.Year)
		if err != nil {
			return model.GenerationResult{}, err
		}
		data.TaxReport = &taxReport
	}

	result := s.generator.GenerateCustomReport(data, orgID, req.Options)
	if !result.Success {
		return result, nil
	}

	if err := s.recordReport(ctx, orgID, model.ReportTypeCustom, req.Quarter, req.Year, result, model.ActionGenerateCustom); err != nil {
		return model.GenerationResult{}, err
	}
	return result, nil
}

func (s *reportService) ListReports(ctx context.Context, orgID, reportType string, page, limit int) ([]GeneratedReportResponse, int64, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid organization id: %w", err)
	}

	reports, total, err := s.reportRepo.List(ctx, id, reportType, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	res := make([]GeneratedReportResponse, 0, len(reports))
	for _, r := range reports {
		res = append(res, GeneratedReportResponse{
			ID:         r.ID.String(),
			ReportType: r.ReportType,
			Quarter:    r.Quarter,
			Year:       r.Year,
			FileName:   r.FileName,
			FilePath:   r.FilePath,
			FileSize:   r.FileSize,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, total, nil
}

// GetReport looks a generated report up for download. Reports belonging
// to another organization are reported as not found rather than forbidden.
func (s *reportService) GetReport(ctx context.Context, orgID, reportID string) (*model.GeneratedReport, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid organization id: %w", err)
	}
	rid, err := uuid.Parse(reportID)
	if err != nil {
		return nil, fmt.Errorf("invalid report id: %w", err)
	}

	report, err := s.reportRepo.FindByID(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report.OrganizationID != id {
		return nil, fmt.Errorf("report not found")
	}
	return report, nil
}

func (s *reportService) ListActivity(ctx context.Context, orgID string, page, limit int) ([]model.AuditLog, int64, error) {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid organization id: %w", err)
	}

	entries, total, err := s.auditRepo.List(ctx, id, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list report activity: %w", err)
	}
	return entries, total, nil
}

// recordReport persists the generated-report row and its audit entry in
// one transaction, then pushes the dashboard event.
func (s *reportService) recordReport(ctx context.Context, orgID, reportType string, quarter, year int, result model.GenerationResult, action string) error {
	id, err := uuid.Parse(orgID)
	if err != nil {
		return fmt.Errorf("invalid organization id: %w", err)
	}

	report := model.GeneratedReport{
		OrganizationID: id,
		ReportType:     reportType,
		Quarter:        quarter,
		Year:           year,
		FileName:       result.FileName,
		FilePath:       result.FilePath,
		FileSize:       result.FileSize,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.reportRepo.Create(txCtx, &report); err != nil {
			return fmt.Errorf("failed to persist generated report: %w", err)
		}

		details, _ := json.Marshal(result)
		entry := model.AuditLog{
			OrganizationID: id,
			Action:         action,
			EntityID:       report.ID.String(),
			EntityName:     result.FileName,
			Details:        string(details),
		}
		// Best-effort audit log inside the same tx
		if err := s.auditRepo.Create(txCtx, &entry); err != nil {
			logger.Log.Warn().Err(err).Str("report", result.FileName).Msg("failed to write audit log")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventReportGenerated, orgID, GeneratedReportResponse{
			ID:         report.ID.String(),
			ReportType: reportType,
			Quarter:    quarter,
			Year:       year,
			FileName:   result.FileName,
			FilePath:   result.FilePath,
			FileSize:   result.FileSize,
		})
	}

	logger.Log.Info().
		Str("org_id", orgID).
		Str("type", reportType).
		Str("file", result.FileName).
		Int64("bytes", result.FileSize).
		Msg("report generated")

	return nil
}

// ParseDateRange validates a YYYY-MM-DD start/end pair
func ParseDateRange(startStr, endStr string) (model.DateRange, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
	}
	end, err := parseDate(endStr)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("invalid end date (expected YYYY-MM-DD): %w", err)
	}
	if end.Before(start) {
		return model.DateRange{}, fmt.Errorf("invalid date range: end before start")
	}
	return model.DateRange{Start: start, End: end}, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
