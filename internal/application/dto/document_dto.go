package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentListRequest filtros de listados de compras y ventas (fechas YYYY-MM-DD).
type DocumentListRequest struct {
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}

// CreatePurchaseRequest entrada para crear una compra en borrador.
type CreatePurchaseRequest struct {
	SupplierID string     `json:"supplier_id" validate:"required"`
	Date       *time.Time `json:"date"`
	Notes      string     `json:"notes" validate:"max=1000"`
}

// AddPurchaseItemRequest entrada para agregar una línea a una compra. VATRate nil usa la tasa por defecto.
type AddPurchaseItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	Quantity    int              `json:"qty" validate:"required,gt=0,max=2147483647"`
	UnitCostNet decimal.Decimal  `json:"unit_cost_net"`
	VATRate     *decimal.Decimal `json:"vat_rate"`
}

// PurchaseItemResponse salida de una línea de compra.
type PurchaseItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"qty"`
	UnitCostNet decimal.Decimal `json:"unit_cost_net"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseResponse salida de una compra con sus líneas.
type PurchaseResponse struct {
	ID               string                 `json:"id"`
	SupplierID       string                 `json:"supplier_id"`
	Date             time.Time              `json:"date"`
	Notes            string                 `json:"notes"`
	Status           string                 `json:"status"`
	SubtotalNet      decimal.Decimal        `json:"subtotal_net"`
	VAT              decimal.Decimal        `json:"vat"`
	Total            decimal.Decimal        `json:"total"`
	ConfirmedAt      *time.Time             `json:"confirmed_at,omitempty"`
	Items            []PurchaseItemResponse `json:"items,omitempty"`
	AlreadyConfirmed bool                   `json:"already_confirmed,omitempty"`
}

// PurchaseListResponse lista paginada de compras (sin líneas).
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateSaleRequest entrada para crear una venta en borrador.
type CreateSaleRequest struct {
	CustomerID    *string    `json:"customer_id"`
	PaymentMethod string     `json:"payment_method" validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA TARJETA"`
	Date          *time.Time `json:"date"`
	Notes         string     `json:"notes" validate:"max=1000"`
}

// AddSaleItemRequest entrada para agregar una línea a una venta.
// UnitPriceNet nil toma el precio neto del producto; VATRate nil usa la tasa por defecto.
type AddSaleItemRequest struct {
	ProductID    string           `json:"product_id" validate:"required"`
	Quantity     int              `json:"qty" validate:"required,gt=0,max=2147483647"`
	UnitPriceNet *decimal.Decimal `json:"unit_price_net"`
	Discount     decimal.Decimal  `json:"discount"`
	VATRate      *decimal.Decimal `json:"vat_rate"`
}

// SaleItemResponse salida de una línea de venta.
type SaleItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int             `json:"qty"`
	UnitPriceNet decimal.Decimal `json:"unit_price_net"`
	Discount     decimal.Decimal `json:"discount"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID               string             `json:"id"`
	CustomerID       *string            `json:"customer_id,omitempty"`
	UserID           string             `json:"user_id"`
	Date             time.Time          `json:"date"`
	Status           string             `json:"status"`
	PaymentMethod    string             `json:"payment_method"`
	Notes            string             `json:"notes"`
	SubtotalNet      decimal.Decimal    `json:"subtotal_net"`
	Discount         decimal.Decimal    `json:"discount"`
	VAT              decimal.Decimal    `json:"vat"`
	Total            decimal.Decimal    `json:"total"`
	ConfirmedAt      *time.Time         `json:"confirmed_at,omitempty"`
	Items            []SaleItemResponse `json:"items,omitempty"`
	AlreadyConfirmed bool               `json:"already_confirmed,omitempty"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
