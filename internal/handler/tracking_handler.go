package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// TrackingHandler handles HTTP requests for location-batch ingestion
type TrackingHandler struct {
	service *service.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(service *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Ingest handles POST /api/v1/tracking.
//
// First-time batches answer 201 with the inserted count; replays of a
// committed batch answer 200 with alreadyProcessed, whether caught by the
// pre-check or by losing the unique-constraint race.
func (h *TrackingHandler) Ingest(c *gin.Context) {
	var req models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Ingest(req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateBatch) {
			c.JSON(http.StatusOK, gin.H{
				"success":          true,
				"alreadyProcessed": true,
				"batchId":          req.BatchID,
			})
			return
		}
		writeServiceError(c, err)
		return
	}

	if result.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{
			"success":          true,
			"alreadyProcessed": true,
			"batchId":          result.BatchID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"insertedCount": result.InsertedCount,
		"batchId":       result.BatchID,
	})
}

// GetPath handles GET /api/v1/tracking/:travelId
func (h *TrackingHandler) GetPath(c *gin.Context) {
	travelID, err := strconv.ParseInt(c.Param("travelId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid travel ID")
		return
	}

	samples, distance, err := h.service.GetTravelPath(travelID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if samples == nil {
		samples = []models.LocationSample{}
	}

	c.JSON(http.StatusOK, gin.H{
		"travelId":       travelID,
		"samples":        samples,
		"distanceMeters": distance,
	})
}
