package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	kpiService service.KPIService
}

func NewDashboardHandler(kpiService service.KPIService) *DashboardHandler {
	return &DashboardHandler{kpiService: kpiService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/dashboard")
	group.Use(middleware.RequireOrg())
	{
		group.GET("/kpis", h.GetKPIs)
	}
}

// @Summary      Get Dashboard KPIs
// @Description  Fleet KPIs over the trailing 30 days with change vs the previous 30 days
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "Unauthorized"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) GetKPIs(c *gin.Context) {
	orgID := middleware.OrgFromContext(c)

	snapshot, err := h.kpiService.ComputeOrganizationKPIs(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, snapshot))
}
