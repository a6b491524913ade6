package dto

import "github.com/shopspring/decimal"

// SalesReportRequest parámetros de GET /api/reports/sales.
type SalesReportRequest struct {
	From    string `query:"from"`
	To      string `query:"to"`
	GroupBy string `query:"groupBy"`
}

// SalesReportItem total vendido en un período.
type SalesReportItem struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// SalesReportResponse serie de totales por período.
type SalesReportResponse struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	GroupBy string            `json:"group_by"`
	Items   []SalesReportItem `json:"items"`
	Total   decimal.Decimal   `json:"total"`
}
