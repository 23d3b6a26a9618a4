package service

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

func newMarketService(t *testing.T) (*MarketService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewMarketService(db, repository.NewMarketRepository(db)), db
}

func seedMarket(t *testing.T, svc *MarketService) int64 {
	t.Helper()
	vendor, err := svc.CreateVendor(models.Vendor{Name: "Rosa", Phone: "999888777"})
	if err != nil {
		t.Fatalf("CreateVendor failed: %v", err)
	}
	for _, name := range []string{"unit", "wholesale"} {
		if _, err := svc.CreatePriceType(name); err != nil {
			t.Fatalf("CreatePriceType %s failed: %v", name, err)
		}
	}
	return vendor.ID
}

func TestCreateProductWithPrices(t *testing.T) {
	svc, _ := newMarketService(t)
	vendorID := seedMarket(t, svc)

	product, err := svc.CreateProduct(models.CreateProductRequest{
		VendorID: vendorID,
		Name:     "Papa amarilla",
		Category: "tubers",
		Prices:   map[string]float64{"unit": 3.5, "wholesale": 2.8},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if product.Vendor == nil || product.Vendor.Name != "Rosa" {
		t.Errorf("expected vendor Rosa, got %+v", product.Vendor)
	}
	if len(product.Prices) != 2 {
		t.Fatalf("expected 2 prices, got %d", len(product.Prices))
	}
	prices := map[string]float64{}
	for _, p := range product.Prices {
		prices[p.Type] = p.Value
	}
	if prices["unit"] != 3.5 || prices["wholesale"] != 2.8 {
		t.Errorf("unexpected prices: %v", prices)
	}
	if !product.InStock {
		t.Error("expected product in stock by default")
	}
}

func TestCreateProductUnknownPriceType(t *testing.T) {
	svc, db := newMarketService(t)
	vendorID := seedMarket(t, svc)

	_, err := svc.CreateProduct(models.CreateProductRequest{
		VendorID: vendorID,
		Name:     "Papa amarilla",
		Prices:   map[string]float64{"retail": 3.5},
	})
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}

	// The product insert rolled back with the price failure.
	var products int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&products); err != nil {
		t.Fatalf("failed to count products: %v", err)
	}
	if products != 0 {
		t.Errorf("rejected product left %d rows", products)
	}
}

func TestSearchProducts(t *testing.T) {
	svc, _ := newMarketService(t)
	vendorID := seedMarket(t, svc)

	outOfStock := false
	seed := []models.CreateProductRequest{
		{VendorID: vendorID, Name: "Papa amarilla", Category: "tubers"},
		{VendorID: vendorID, Name: "Papa huayro", Category: "tubers", InStock: &outOfStock},
		{VendorID: vendorID, Name: "Aji limo", Category: "peppers", Featured: true},
	}
	for _, req := range seed {
		if _, err := svc.CreateProduct(req); err != nil {
			t.Fatalf("CreateProduct %s failed: %v", req.Name, err)
		}
	}

	products, err := svc.SearchProducts(models.ProductFilter{Query: "papa"})
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("query papa: expected 2 products, got %d", len(products))
	}

	inStock := true
	products, err = svc.SearchProducts(models.ProductFilter{Category: "tubers", InStock: &inStock})
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Papa amarilla" {
		t.Errorf("in-stock tubers: unexpected result %+v", products)
	}

	featured := true
	products, err = svc.SearchProducts(models.ProductFilter{Featured: &featured})
	if err != nil {
		t.Fatalf("SearchProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Aji limo" {
		t.Errorf("featured: unexpected result %+v", products)
	}
}

func TestCreatePriceTypeConflict(t *testing.T) {
	svc, _ := newMarketService(t)

	if _, err := svc.CreatePriceType("unit"); err != nil {
		t.Fatalf("CreatePriceType failed: %v", err)
	}

	_, err := svc.CreatePriceType("unit")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("expected ConflictError, got %v", err)
	}
}
