package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/reports")
	group.Use(middleware.RequireOrg())
	{
		group.GET("", h.ListReports)
		group.GET("/activity", h.ListActivity)
		group.GET("/:id/download", h.DownloadReport)
		group.POST("/ifta/quarterly", h.GenerateQuarterly)
		group.POST("/ifta/trips", h.GenerateTripLog)
		group.POST("/ifta/fuel", h.GenerateFuelSummary)
		group.POST("/ifta/custom", h.GenerateCustom)
	}
}

// @Summary      Generate IFTA Quarterly Report
// @Description  Assembles the quarter's jurisdiction breakdown and renders the filing PDF
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request body service.QuarterlyReportRequest true "Quarter and options"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      422 {object} response.Response "Generation failed"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/reports/ifta/quarterly [post]
func (h *ReportHandler) GenerateQuarterly(c *gin.Context) {
	var req service.QuarterlyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	result, err := h.reportService.GenerateQuarterly(c.Request.Context(), middleware.OrgFromContext(c), req)
	h.respond(c, result, err)
}

// @Summary      Generate Trip Log Report
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request body service.RangeReportRequest true "Date range and options"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      422 {object} response.Response "Generation failed"
// @Security     BearerAuth
// @Router       /api/reports/ifta/trips [post]
func (h *ReportHandler) GenerateTripLog(c *gin.Context) {
	dateRange, opts, ok := h.bindRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateTripLog(c.Request.Context(), middleware.OrgFromContext(c), dateRange, opts)
	h.respond(c, result, err)
}

// @Summary      Generate Fuel Summary Report
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request body service.RangeReportRequest true "Date range and options"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      422 {object} response.Response "Generation failed"
// @Security     BearerAuth
// @Router       /api/reports/ifta/fuel [post]
func (h *ReportHandler) GenerateFuelSummary(c *gin.Context) {
	dateRange, opts, ok := h.bindRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateFuelSummary(c.Request.Context(), middleware.OrgFromContext(c), dateRange, opts)
	h.respond(c, result, err)
}

// @Summary      Generate Custom Report
// @Description  Includes trip, fuel and tax sections according to option flags
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        request body service.CustomReportRequest true "Sections and options"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      422 {object} response.Response "Generation failed"
// @Security     BearerAuth
// @Router       /api/reports/ifta/custom [post]
func (h *ReportHandler) GenerateCustom(c *gin.Context) {
	var req service.CustomReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	result, err := h.reportService.GenerateCustom(c.Request.Context(), middleware.OrgFromContext(c), req)
	h.respond(c, result, err)
}

// @Summary      List Generated Reports
// @Tags         Reports
// @Produce      json
// @Param        type  query string false "Report type filter"
// @Param        page  query int    false "Page"
// @Param        limit query int    false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	params := pagination.Parse(c)
	reportType := c.Query("type")

	reports, total, err := h.reportService.ListReports(c.Request.Context(), middleware.OrgFromContext(c), reportType, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, reports, pagination.NewMeta(params, total)))
}

// @Summary      Download Generated Report
// @Description  Streams the stored PDF as a file attachment
// @Tags         Reports
// @Produce      application/pdf
// @Param        id path string true "Report ID"
// @Success      200 {file} file
// @Failure      404 {object} response.Response "Report not found"
// @Security     BearerAuth
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	report, err := h.reportService.GetReport(c.Request.Context(), middleware.OrgFromContext(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.FileAttachment(report.FilePath, report.FileName)
}

// @Summary      List Report Activity
// @Description  Audit trail of report generation for the organization
// @Tags         Reports
// @Produce      json
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/reports/activity [get]
func (h *ReportHandler) ListActivity(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.reportService.ListActivity(c.Request.Context(), middleware.OrgFromContext(c), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, entries, pagination.NewMeta(params, total)))
}

// --- Helpers ---

func (h *ReportHandler) bindRange(c *gin.Context) (model.DateRange, model.PDFOptions, bool) {
	var req service.RangeReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return model.DateRange{}, model.PDFOptions{}, false
	}

	dateRange, err := service.ParseDateRange(req.Start, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return model.DateRange{}, model.PDFOptions{}, false
	}

	return dateRange, req.Options, true
}

// respond maps the three outcomes: assembly/storage error, generation
// failure carried in the result, and success.
func (h *ReportHandler) respond(c *gin.Context, result model.GenerationResult, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, result.Error))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
