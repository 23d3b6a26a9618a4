package service

import (
	"database/sql"

	"github.com/colective/fleet-backend-go/internal/database"
	"github.com/colective/fleet-backend-go/internal/models"
	"github.com/colective/fleet-backend-go/internal/repository"
)

// MarketService handles business logic for the product marketplace
type MarketService struct {
	db   *sql.DB
	repo *repository.MarketRepository
}

// NewMarketService creates a new market service
func NewMarketService(db *sql.DB, repo *repository.MarketRepository) *MarketService {
	return &MarketService{db: db, repo: repo}
}

// SearchProducts retrieves products matching the filter
func (s *MarketService) SearchProducts(filter models.ProductFilter) ([]models.Product, error) {
	return s.repo.SearchProducts(filter)
}

// GetProduct retrieves a product with vendor and prices
func (s *MarketService) GetProduct(id int64) (*models.Product, error) {
	return s.repo.GetProductByID(id)
}

// CreateProduct creates a listing and its prices in one transaction. Price
// keys must name existing price types.
func (s *MarketService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, invalidInput("name", "is required")
	}
	if req.VendorID <= 0 {
		return nil, invalidInput("vendorId", "is required")
	}

	var productID int64
	err := database.Transaction(s.db, func(tx *sql.Tx) error {
		var err error
		productID, err = s.repo.CreateProduct(tx, req)
		if err != nil {
			return err
		}

		for typeName, value := range req.Prices {
			pt, err := s.repo.GetPriceTypeByNameTx(tx, typeName)
			if err != nil {
				return err
			}
			if pt == nil {
				return invalidInput("prices", "unknown price type "+typeName)
			}
			if err := s.repo.SetProductPrice(tx, productID, pt.ID, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetProductByID(productID)
}

// ListVendors retrieves all vendors
func (s *MarketService) ListVendors() ([]models.Vendor, error) {
	return s.repo.ListVendors()
}

// CreateVendor creates a vendor
func (s *MarketService) CreateVendor(v models.Vendor) (*models.Vendor, error) {
	if v.Name == "" {
		return nil, invalidInput("name", "is required")
	}
	return s.repo.CreateVendor(v)
}

// ListPriceTypes retrieves all price types
func (s *MarketService) ListPriceTypes() ([]models.PriceType, error) {
	return s.repo.ListPriceTypes()
}

// CreatePriceType creates a price type
func (s *MarketService) CreatePriceType(name string) (*models.PriceType, error) {
	if name == "" {
		return nil, invalidInput("name", "is required")
	}

	pt, err := s.repo.CreatePriceType(name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &ConflictError{Field: "price type"}
		}
		return nil, err
	}
	return pt, nil
}
