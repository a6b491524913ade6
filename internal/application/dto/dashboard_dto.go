package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Día actual
	TodaySales decimal.Decimal `json:"today_sales"`
	TodayCount int             `json:"today_count"`

	// Mes en curso (día 1 – hoy)
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyCount  int             `json:"monthly_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"`

	// Top 5 productos por unidades del mes
	TopProducts []TopProductDTO `json:"top_products"`

	LowStockCount int    `json:"low_stock_count"`
	DateLabel     string `json:"date_label"` // ej: "Febrero 2026"
}

// TopProductDTO producto del ranking del dashboard.
type TopProductDTO struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Units       int    `json:"units"`
}
