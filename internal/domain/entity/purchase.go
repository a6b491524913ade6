package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una compra.
type PurchaseStatus string

const (
	PurchaseDraft     PurchaseStatus = "DRAFT"
	PurchaseConfirmed PurchaseStatus = "CONFIRMED"
)

// Purchase encabezado de una compra a proveedor (entrada de stock).
type Purchase struct {
	ID          string          `db:"id"`
	SupplierID  string          `db:"supplier_id"`
	Date        time.Time       `db:"date"`
	Notes       string          `db:"notes"`
	Status      PurchaseStatus  `db:"status"`
	SubtotalNet decimal.Decimal `db:"subtotal_net"`
	VAT         decimal.Decimal `db:"vat"`
	Total       decimal.Decimal `db:"total"`
	CreatedBy   string          `db:"created_by"`
	ConfirmedAt *time.Time      `db:"confirmed_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// PurchaseItem línea de una compra.
type PurchaseItem struct {
	ID          string          `db:"id"`
	PurchaseID  string          `db:"purchase_id"`
	ProductID   string          `db:"product_id"`
	Quantity    int             `db:"qty"`
	UnitCostNet decimal.Decimal `db:"unit_cost_net"`
	VATRate     decimal.Decimal `db:"vat_rate"`
	LineTotal   decimal.Decimal `db:"line_total"`
	CreatedAt   time.Time       `db:"created_at"`
}
