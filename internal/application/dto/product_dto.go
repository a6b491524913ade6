package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock genera un ajuste en el kardex.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=64"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Brand        string          `json:"brand" validate:"max=100"`
	Category     string          `json:"category" validate:"max=100"`
	Description  string          `json:"description"`
	CostNet      decimal.Decimal `json:"cost_net"`
	PriceGross   decimal.Decimal `json:"price_gross"`
	VATIncluded  *bool           `json:"vat_included"`
	InitialStock int             `json:"initial_stock" validate:"min=0,max=2147483647"`
	MinStock     int             `json:"min_stock" validate:"min=0,max=2147483647"`
	Active       *bool           `json:"active"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock).
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=64"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand       *string          `json:"brand" validate:"omitempty,max=100"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	CostNet     *decimal.Decimal `json:"cost_net"`
	PriceGross  *decimal.Decimal `json:"price_gross"`
	VATIncluded *bool            `json:"vat_included"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0,max=2147483647"`
	Active      *bool            `json:"active"`
}

// ProductFilterRequest filtros de GET /api/products.
type ProductFilterRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Brand    string `query:"brand"`
	Active   *bool  `query:"active"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	CostNet     decimal.Decimal `json:"cost_net"`
	PriceGross  decimal.Decimal `json:"price_gross"`
	VATIncluded bool            `json:"vat_included"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Active      bool            `json:"active"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
