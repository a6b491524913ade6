package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de la tienda.
// Stock solo cambia a través del kardex (movimientos); nunca se edita directamente.
type Product struct {
	ID          string          `db:"id"`
	SKU         string          `db:"sku"` // único
	Name        string          `db:"name"`
	Brand       string          `db:"brand"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	CostNet     decimal.Decimal `db:"cost_net"`     // costo neto unitario
	PriceGross  decimal.Decimal `db:"price_gross"`  // precio de venta publicado
	VATIncluded bool            `db:"vat_included"` // si PriceGross ya incluye IVA
	Stock       int             `db:"stock"`
	MinStock    int             `db:"min_stock"`
	Active      bool            `db:"active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// NetPrice devuelve el precio unitario neto a usar en una venta.
// Si el precio publicado incluye IVA se descuenta con la tasa dada (redondeo a 2 decimales).
func (p *Product) NetPrice(vatRate decimal.Decimal) decimal.Decimal {
	if !p.VATIncluded {
		return p.PriceGross
	}
	return p.PriceGross.Div(decimal.NewFromInt(1).Add(vatRate)).Round(2)
}

// BelowMinStock indica si el producto está en o bajo su stock mínimo.
func (p *Product) BelowMinStock() bool {
	return p.Stock <= p.MinStock
}
