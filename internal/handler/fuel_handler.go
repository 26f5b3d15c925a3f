package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type FuelHandler struct {
	fuelService service.FuelService
}

func NewFuelHandler(fuelService service.FuelService) *FuelHandler {
	return &FuelHandler{fuelService: fuelService}
}

func (h *FuelHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/fuel-purchases")
	group.Use(middleware.RequireOrg())
	{
		group.GET("", h.ListFuelPurchases)
		group.POST("", h.CreateFuelPurchase)
	}
}

// @Summary      Record Fuel Purchase
// @Description  Stores one fuel-stop receipt for IFTA fuel-purchased totals
// @Tags         Fuel
// @Accept       json
// @Produce      json
// @Param        request body service.CreateFuelPurchaseRequest true "Purchase details"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/fuel-purchases [post]
func (h *FuelHandler) CreateFuelPurchase(c *gin.Context) {
	var req service.CreateFuelPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	purchase, err := h.fuelService.Create(c.Request.Context(), middleware.OrgFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, purchase))
}

// @Summary      List Fuel Purchases
// @Tags         Fuel
// @Produce      json
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/fuel-purchases [get]
func (h *FuelHandler) ListFuelPurchases(c *gin.Context) {
	params := pagination.Parse(c)

	purchases, total, err := h.fuelService.List(c.Request.Context(), middleware.OrgFromContext(c), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, purchases, pagination.NewMeta(params, total)))
}
