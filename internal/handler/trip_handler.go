package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	tripService service.TripService
}

func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

func (h *TripHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/trips")
	group.Use(middleware.RequireOrg())
	{
		group.GET("", h.ListTrips)
		group.GET("/:id", h.GetTrip)
		group.POST("", h.CreateTrip)
	}
}

// @Summary      Record Trip
// @Description  Stores a completed trip with its per-jurisdiction mileage split
// @Tags         Trips
// @Accept       json
// @Produce      json
// @Param        request body service.CreateTripRequest true "Trip details"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response "Invalid request"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/trips [post]
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req service.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), middleware.OrgFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, trip))
}

// @Summary      Get Trip
// @Tags         Trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "Trip not found"
// @Security     BearerAuth
// @Router       /api/trips/{id} [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.Get(c.Request.Context(), middleware.OrgFromContext(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, trip))
}

// @Summary      List Trips
// @Tags         Trips
// @Produce      json
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /api/trips [get]
func (h *TripHandler) ListTrips(c *gin.Context) {
	params := pagination.Parse(c)

	trips, total, err := h.tripService.List(c.Request.Context(), middleware.OrgFromContext(c), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, trips, pagination.NewMeta(params, total)))
}
