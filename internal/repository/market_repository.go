package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/colective/fleet-backend-go/internal/models"
)

// MarketRepository handles database operations for the product marketplace
type MarketRepository struct {
	db *sql.DB
}

// NewMarketRepository creates a new market repository
func NewMarketRepository(db *sql.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

const productColumns = `SELECT
	p.id, p.vendor_id, p.name, p.description, p.category, p.image,
	p.in_stock, p.featured, p.created_at,
	v.id, v.name, v.last_name, v.phone, v.address, v.email
	FROM products p
	JOIN vendors v ON v.id = p.vendor_id`

// SearchProducts retrieves products matching the filter, with vendor and
// prices attached
func (r *MarketRepository) SearchProducts(filter models.ProductFilter) ([]models.Product, error) {
	query := productColumns

	var conditions []string
	var args []interface{}

	if filter.Query != "" {
		conditions = append(conditions, "(p.name LIKE ? OR p.description LIKE ?)")
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.InStock != nil {
		conditions = append(conditions, "p.in_stock = ?")
		args = append(args, *filter.InStock)
	}
	if filter.Featured != nil {
		conditions = append(conditions, "p.featured = ?")
		args = append(args, *filter.Featured)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	for i := range products {
		prices, err := r.getProductPrices(products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Prices = prices
	}

	return products, nil
}

// GetProductByID retrieves a product with its vendor and prices
func (r *MarketRepository) GetProductByID(id int64) (*models.Product, error) {
	rows, err := r.db.Query(productColumns+" WHERE p.id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	product := products[0]
	prices, err := r.getProductPrices(product.ID)
	if err != nil {
		return nil, err
	}
	product.Prices = prices
	return &product, nil
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		var description, category, image sql.NullString
		var v models.Vendor
		var lastName, phone, address, email sql.NullString

		err := rows.Scan(
			&p.ID, &p.VendorID, &p.Name, &description, &category, &image,
			&p.InStock, &p.Featured, &p.CreatedAt,
			&v.ID, &v.Name, &lastName, &phone, &address, &email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.Description = description.String
		p.Category = category.String
		p.Image = image.String
		v.LastName = lastName.String
		v.Phone = phone.String
		v.Address = address.String
		v.Email = email.String
		p.Vendor = &v
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *MarketRepository) getProductPrices(productID int64) ([]models.ProductPrice, error) {
	rows, err := r.db.Query(`SELECT pt.name, pp.value
		FROM product_prices pp
		JOIN price_types pt ON pt.id = pp.price_type_id
		WHERE pp.product_id = ?
		ORDER BY pt.name ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product prices: %w", err)
	}
	defer rows.Close()

	var prices []models.ProductPrice
	for rows.Next() {
		var p models.ProductPrice
		if err := rows.Scan(&p.Type, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan product price: %w", err)
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// CreateProduct inserts a product inside a transaction and returns its id
func (r *MarketRepository) CreateProduct(tx *sql.Tx, req models.CreateProductRequest) (int64, error) {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	res, err := tx.Exec(`INSERT INTO products (vendor_id, name, description, category, image, in_stock, featured)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.VendorID, req.Name, req.Description, req.Category, req.Image, inStock, req.Featured)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get product id: %w", err)
	}
	return id, nil
}

// SetProductPrice upserts a product's value for one price type inside a
// transaction
func (r *MarketRepository) SetProductPrice(tx *sql.Tx, productID, priceTypeID int64, value float64) error {
	_, err := tx.Exec(`INSERT INTO product_prices (product_id, price_type_id, value)
		VALUES (?, ?, ?)
		ON CONFLICT(product_id, price_type_id) DO UPDATE SET value = excluded.value`,
		productID, priceTypeID, value)
	if err != nil {
		return fmt.Errorf("failed to set product price: %w", err)
	}
	return nil
}

// GetPriceTypeByNameTx looks up a price type by name inside a transaction
func (r *MarketRepository) GetPriceTypeByNameTx(tx *sql.Tx, name string) (*models.PriceType, error) {
	var pt models.PriceType
	err := tx.QueryRow(`SELECT id, name FROM price_types WHERE name = ?`, name).Scan(&pt.ID, &pt.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price type: %w", err)
	}
	return &pt, nil
}

// ListVendors retrieves all vendors
func (r *MarketRepository) ListVendors() ([]models.Vendor, error) {
	rows, err := r.db.Query(`SELECT id, name, last_name, phone, address, email FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		var lastName, phone, address, email sql.NullString
		if err := rows.Scan(&v.ID, &v.Name, &lastName, &phone, &address, &email); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		v.LastName = lastName.String
		v.Phone = phone.String
		v.Address = address.String
		v.Email = email.String
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

// CreateVendor creates a vendor
func (r *MarketRepository) CreateVendor(v models.Vendor) (*models.Vendor, error) {
	res, err := r.db.Exec(`INSERT INTO vendors (name, last_name, phone, address, email)
		VALUES (?, ?, ?, ?, ?)`,
		v.Name, v.LastName, v.Phone, v.Address, v.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor id: %w", err)
	}
	v.ID = id
	return &v, nil
}

// ListPriceTypes retrieves all price types ordered by name
func (r *MarketRepository) ListPriceTypes() ([]models.PriceType, error) {
	rows, err := r.db.Query(`SELECT id, name FROM price_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price types: %w", err)
	}
	defer rows.Close()

	var types []models.PriceType
	for rows.Next() {
		var pt models.PriceType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, fmt.Errorf("failed to scan price type: %w", err)
		}
		types = append(types, pt)
	}

	return types, rows.Err()
}

// CreatePriceType creates a price type
func (r *MarketRepository) CreatePriceType(name string) (*models.PriceType, error) {
	res, err := r.db.Exec(`INSERT INTO price_types (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create price type: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get price type id: %w", err)
	}
	return &models.PriceType{ID: id, Name: name}, nil
}
