package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity tope de cantidades y de stock (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// MovementType tipo de movimiento del kardex.
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// RefType documento que originó el movimiento.
type RefType string

const (
	RefPurchase   RefType = "PURCHASE"
	RefSale       RefType = "SALE"
	RefOrder      RefType = "ORDER"
	RefAdjustment RefType = "ADJUSTMENT"
)

// Valid indica si la referencia es una de las conocidas.
func (r RefType) Valid() bool {
	switch r {
	case RefPurchase, RefSale, RefOrder, RefAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable del kardex.
// IN y OUT guardan Quantity positiva; ADJUSTMENT guarda Quantity con signo.
type StockMovement struct {
	ID          string              `db:"id"`
	ProductID   string              `db:"product_id"`
	Type        MovementType        `db:"type"`
	RefType     RefType             `db:"ref_type"`
	RefID       string              `db:"ref_id"`
	Quantity    int                 `db:"qty"`
	UnitCostNet decimal.NullDecimal `db:"unit_cost_net"`
	Notes       string              `db:"notes"`
	CreatedBy   string              `db:"created_by"`
	CreatedAt   time.Time           `db:"created_at"`
}

// Delta efecto con signo del movimiento sobre el stock.
func (m *StockMovement) Delta() int {
	return MovementDelta(m.Type, m.Quantity)
}

// MovementDelta efecto con signo de un movimiento del tipo dado.
func MovementDelta(t MovementType, qty int) int {
	switch t {
	case MovementIn:
		return qty
	case MovementOut:
		return -qty
	case MovementAdjustment:
		return qty
	}
	return 0
}
