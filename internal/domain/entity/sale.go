package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SaleDraft     SaleStatus = "DRAFT"
	SaleConfirmed SaleStatus = "CONFIRMED"
	SaleDelivered SaleStatus = "DELIVERED"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Posted indica si la venta ya descontó stock (cuenta en reportes).
func (s SaleStatus) Posted() bool {
	return s == SaleConfirmed || s == SaleDelivered
}

// PaymentMethod medio de pago de la venta.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "EFECTIVO"
	PaymentTransfer PaymentMethod = "TRANSFERENCIA"
	PaymentCard     PaymentMethod = "TARJETA"
)

// Valid indica si el medio de pago es uno de los aceptados.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCard:
		return true
	}
	return false
}

// Sale encabezado de una venta (salida de stock).
type Sale struct {
	ID            string          `db:"id"`
	CustomerID    *string         `db:"customer_id"`
	UserID        string          `db:"user_id"`
	Date          time.Time       `db:"date"`
	Status        SaleStatus      `db:"status"`
	PaymentMethod PaymentMethod   `db:"payment_method"`
	Notes         string          `db:"notes"`
	SubtotalNet   decimal.Decimal `db:"subtotal_net"`
	Discount      decimal.Decimal `db:"discount"`
	VAT           decimal.Decimal `db:"vat"`
	Total         decimal.Decimal `db:"total"`
	ConfirmedAt   *time.Time      `db:"confirmed_at"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID           string          `db:"id"`
	SaleID       string          `db:"sale_id"`
	ProductID    string          `db:"product_id"`
	Quantity     int             `db:"qty"`
	UnitPriceNet decimal.Decimal `db:"unit_price_net"`
	Discount     decimal.Decimal `db:"discount"`
	VATRate      decimal.Decimal `db:"vat_rate"`
	LineTotal    decimal.Decimal `db:"line_total"`
	CreatedAt    time.Time       `db:"created_at"`
}
