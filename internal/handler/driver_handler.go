package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// DriverHandler handles HTTP requests for drivers
type DriverHandler struct {
	service *service.DriverService
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(service *service.DriverService) *DriverHandler {
	return &DriverHandler{service: service}
}

// Create handles POST /api/v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req models.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	driver, err := h.service.Create(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// List handles GET /api/v1/drivers
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.service.List()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

// Get handles GET /api/v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid driver ID")
		return
	}

	driver, err := h.service.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if driver == nil {
		response.NotFound(c, "driver not found")
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ListByCompany handles GET /api/v1/drivers/bycompany/:id
func (h *DriverHandler) ListByCompany(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid company ID")
		return
	}

	drivers, err := h.service.ListByCompany(companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

// UpdateLocation handles PATCH /api/v1/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid driver ID")
		return
	}

	var req models.DriverLocationUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.UpdateLocation(id, req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lat":     *req.Lat,
		"lng":     *req.Lng,
	})
}

// UpdateStatus handles PATCH /api/v1/drivers/:id/status
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid driver ID")
		return
	}

	var req models.DriverStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.UpdateStatus(id, req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}
