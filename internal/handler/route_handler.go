package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for routes
type RouteHandler struct {
	service *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(service *service.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// Create handles POST /api/v1/routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	route, err := h.service.Create(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// List handles GET /api/v1/routes
func (h *RouteHandler) List(c *gin.Context) {
	routes, err := h.service.List()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if routes == nil {
		routes = []models.Route{}
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// Get handles GET /api/v1/routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	route, err := h.service.Get(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if route == nil {
		response.NotFound(c, "route not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": route})
}

// AddPoint handles POST /api/v1/route-points
func (h *RouteHandler) AddPoint(c *gin.Context) {
	var req models.CreateRoutePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	point, err := h.service.AddPoint(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"point": point})
}
