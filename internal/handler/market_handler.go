package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// MarketHandler handles HTTP requests for the product marketplace
type MarketHandler struct {
	service *service.MarketService
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service *service.MarketService) *MarketHandler {
	return &MarketHandler{service: service}
}

// SearchProducts handles GET /api/v1/market/products
func (h *MarketHandler) SearchProducts(c *gin.Context) {
	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	products, err := h.service.SearchProducts(filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/v1/market/products/:id
func (h *MarketHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid product ID")
		return
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if product == nil {
		response.NotFound(c, "product not found")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/market/products
func (h *MarketHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	product, err := h.service.CreateProduct(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ListVendors handles GET /api/v1/market/vendors
func (h *MarketHandler) ListVendors(c *gin.Context) {
	vendors, err := h.service.ListVendors()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if vendors == nil {
		vendors = []models.Vendor{}
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// CreateVendor handles POST /api/v1/market/vendors
func (h *MarketHandler) CreateVendor(c *gin.Context) {
	var v models.Vendor
	if err := c.ShouldBindJSON(&v); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	vendor, err := h.service.CreateVendor(v)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vendor)
}

// ListPriceTypes handles GET /api/v1/market/price-types
func (h *MarketHandler) ListPriceTypes(c *gin.Context) {
	types, err := h.service.ListPriceTypes()
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if types == nil {
		types = []models.PriceType{}
	}
	c.JSON(http.StatusOK, gin.H{"priceTypes": types, "total": len(types)})
}

type createPriceTypeRequest struct {
	Name string `json:"name"`
}

// CreatePriceType handles POST /api/v1/market/price-types
func (h *MarketHandler) CreatePriceType(c *gin.Context) {
	var req createPriceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	pt, err := h.service.CreatePriceType(req.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pt)
}
