package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// TravelHandler handles HTTP requests for travels
type TravelHandler struct {
	service *service.TravelService
}

// NewTravelHandler creates a new travel handler
func NewTravelHandler(service *service.TravelService) *TravelHandler {
	return &TravelHandler{service: service}
}

// Start handles POST /api/v1/travels/start
func (h *TravelHandler) Start(c *gin.Context) {
	var req models.StartTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	travel, err := h.service.Start(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"travel": travel})
}

// End handles POST /api/v1/travels/end
func (h *TravelHandler) End(c *gin.Context) {
	var req models.EndTravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	travel, err := h.service.End(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"travel": travel})
}

// ListByDriver handles GET /api/v1/travels/driver/:driverId
func (h *TravelHandler) ListByDriver(c *gin.Context) {
	driverID, err := strconv.ParseInt(c.Param("driverId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid driver ID")
		return
	}

	start, end, perr := parseDateRangeQuery(c)
	if perr != nil {
		response.BadRequest(c, perr.Error())
		return
	}

	details, err := h.service.ListByDriver(models.TravelFilter{
		DriverID:  driverID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ReportIncident handles POST /api/v1/travels/incidents
func (h *TravelHandler) ReportIncident(c *gin.Context) {
	var req models.ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	incident, err := h.service.ReportIncident(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"incident": incident})
}
