package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Granularidad de agrupación de reportes de ventas.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// PeriodTotal total vendido en un período (YYYY-MM-DD, YYYY-MM o YYYY).
type PeriodTotal struct {
	Period string          `db:"period"`
	Total  decimal.Decimal `db:"total"`
}

// SalesSummary suma y cantidad de ventas contabilizadas en un rango.
type SalesSummary struct {
	Total decimal.Decimal `db:"total"`
	Count int             `db:"count"`
}

// ProductUnits unidades vendidas de un producto.
type ProductUnits struct {
	ProductID string `db:"product_id"`
	SKU       string `db:"sku"`
	Name      string `db:"name"`
	Units     int    `db:"units"`
}

// AnalyticsRepository consultas de solo lectura sobre ventas contabilizadas (CONFIRMED o DELIVERED).
// Los rangos son [from, to).
type AnalyticsRepository interface {
	SalesByPeriod(ctx context.Context, from, to time.Time, groupBy string) ([]PeriodTotal, error)
	SalesSummary(ctx context.Context, from, to time.Time) (SalesSummary, error)
	// TopProductsByUnits ranking por unidades vendidas; limit <= 0 devuelve todos.
	TopProductsByUnits(ctx context.Context, from, to time.Time, limit int) ([]ProductUnits, error)
}
