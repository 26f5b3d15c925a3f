package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// TaxRateHandler exposes the rate-admin entry point that loads each
// quarter's published per-gallon rates before filings are generated.
type TaxRateHandler struct {
	iftaService service.IFTAService
}

func NewTaxRateHandler(iftaService service.IFTAService) *TaxRateHandler {
	return &TaxRateHandler{iftaService: iftaService}
}

func (h *TaxRateHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/tax-rates")
	group.Use(middleware.RequireOrg())
	{
		group.PUT("", h.UpsertQuarterRates)
	}
}

// @Summary      Upsert Quarterly Tax Rates
// @Description  Loads or overwrites a quarter's per-gallon rates, keyed by jurisdiction
// @Tags         TaxRates
// @Accept       json
// @Produce      json
// @Param        request body service.UpsertQuarterRatesRequest true "Quarter, year and rates"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/tax-rates [put]
func (h *TaxRateHandler) UpsertQuarterRates(c *gin.Context) {
	var req service.UpsertQuarterRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	if err := h.iftaService.UpsertQuarterRates(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"quarter": req.Quarter, "year": req.Year, "count": len(req.Rates)}))
}
