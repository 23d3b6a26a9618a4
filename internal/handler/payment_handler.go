package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	service *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	payment, err := h.service.Create(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ListToday handles GET /api/v1/payments
func (h *PaymentHandler) ListToday(c *gin.Context) {
	payments, err := h.service.ListToday()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ListByDriver handles GET /api/v1/payments/bydriver/:id
func (h *PaymentHandler) ListByDriver(c *gin.Context) {
	driverID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid driver ID")
		return
	}

	details, err := h.service.ListByDriver(driverID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if details == nil {
		details = []models.PaymentDetail{}
	}
	c.JSON(http.StatusOK, details)
}
