package models

import "time"

// Vendor sells products on the marketplace
type Vendor struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	LastName string `json:"lastName,omitempty" db:"last_name"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Address  string `json:"address,omitempty" db:"address"`
	Email    string `json:"email,omitempty" db:"email"`
}

// PriceType is a pricing tier (e.g. unit, wholesale)
type PriceType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ProductPrice is a product's value under one price type
type ProductPrice struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Product is a marketplace listing with its vendor and prices
type Product struct {
	ID          int64          `json:"id" db:"id"`
	VendorID    int64          `json:"vendorId" db:"vendor_id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description,omitempty" db:"description"`
	Category    string         `json:"category,omitempty" db:"category"`
	Image       string         `json:"image,omitempty" db:"image"`
	InStock     bool           `json:"inStock" db:"in_stock"`
	Featured    bool           `json:"featured" db:"featured"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	Vendor      *Vendor        `json:"vendor,omitempty"`
	Prices      []ProductPrice `json:"prices,omitempty"`
}

// ProductFilter selects products in a search
type ProductFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	InStock  *bool  `form:"inStock"`
	Featured *bool  `form:"featured"`
}

// CreateProductRequest creates a listing with optional prices
type CreateProductRequest struct {
	VendorID    int64              `json:"vendorId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Image       string             `json:"image"`
	InStock     *bool              `json:"inStock"`
	Featured    bool               `json:"featured"`
	Prices      map[string]float64 `json:"prices"` // price type name -> value
}
