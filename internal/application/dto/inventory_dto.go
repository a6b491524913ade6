package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRequest ajuste manual de stock. Quantity con signo (positivo suma, negativo resta).
type AdjustmentRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"qty" validate:"required,ne=0,min=-2147483647,max=2147483647"`
	UnitCost  *decimal.Decimal `json:"unit_cost_net"`
	Reason    string           `json:"reason" validate:"required,max=500"`
}

// MovementResponse salida de un movimiento del kardex.
type MovementResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	Type        string           `json:"type"`
	RefType     string           `json:"ref_type"`
	RefID       string           `json:"ref_id"`
	Quantity    int              `json:"qty"`
	UnitCostNet *decimal.Decimal `json:"unit_cost_net,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	CreatedBy   string           `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// AdjustmentResponse resultado de un ajuste manual.
type AdjustmentResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    int              `json:"stock"`
}

// KardexRequest filtros del kardex (fechas YYYY-MM-DD, ambas inclusivas).
type KardexRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// KardexEntry movimiento con su efecto y saldo acumulado.
type KardexEntry struct {
	MovementResponse
	Delta   int `json:"delta"`
	Balance int `json:"balance"`
}

// KardexResponse historial cronológico de un producto.
type KardexResponse struct {
	ProductID      string        `json:"product_id"`
	SKU            string        `json:"sku"`
	ProductName    string        `json:"product_name"`
	OpeningBalance int           `json:"opening_balance"`
	ClosingBalance int           `json:"closing_balance"`
	CurrentStock   int           `json:"current_stock"`
	Entries        []KardexEntry `json:"entries"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID           string          `json:"product_id"`
	SKU                 string          `json:"sku"`
	ProductName         string          `json:"product_name"`
	CurrentStock        int             `json:"current_stock"`
	MinStock            int             `json:"min_stock"`
	IdealStock          int             `json:"ideal_stock"`         // ceil(MinStock * 1.5)
	SuggestedOrderQty   int             `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitCost            decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"`
	UnitsSoldLast90Days int             `json:"units_sold_last_90d"`
	Priority            int             `json:"priority"` // 1 = más urgente
}
