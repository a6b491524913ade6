package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre ventas contabilizadas.
// Las agrupaciones por fecha usan la zona horaria de la sesión (ver NewPool).
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// periodExpr formato to_char según la granularidad.
func periodExpr(groupBy string) (string, error) {
	switch groupBy {
	case repository.PeriodDay:
		return "YYYY-MM-DD", nil
	case repository.PeriodMonth:
		return "YYYY-MM", nil
	case repository.PeriodYear:
		return "YYYY", nil
	}
	return "", fmt.Errorf("agrupación desconocida %q", groupBy)
}

// SalesByPeriod suma s.total de ventas CONFIRMED/DELIVERED en [from, to) agrupadas por período.
func (r *AnalyticsRepo) SalesByPeriod(ctx context.Context, from, to time.Time, groupBy string) ([]repository.PeriodTotal, error) {
	format, err := periodExpr(groupBy)
	if err != nil {
		return nil, err
	}
	const query = `
	SELECT
	    to_char(s.date, $3)       AS period,
	    COALESCE(SUM(s.total), 0) AS total
	FROM sales s
	WHERE s.status IN ('CONFIRMED', 'DELIVERED')
	  AND s.date >= $1
	  AND s.date <  $2
	GROUP BY 1
	ORDER BY 1`

	var rows []repository.PeriodTotal
	if err := pgxscan.Select(ctx, r.q, &rows, query, from, to, format); err != nil {
		return nil, fmt.Errorf("analytics.SalesByPeriod: %w", err)
	}
	return rows, nil
}

// SalesSummary total y cantidad de ventas contabilizadas del rango. Sin ventas devuelve ceros.
func (r *AnalyticsRepo) SalesSummary(ctx context.Context, from, to time.Time) (repository.SalesSummary, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total), 0) AS total,
	    COUNT(*)                  AS count
	FROM sales s
	WHERE s.status IN ('CONFIRMED', 'DELIVERED')
	  AND s.date >= $1
	  AND s.date <  $2`

	var out repository.SalesSummary
	if err := pgxscan.Get(ctx, r.q, &out, query, from, to); err != nil {
		return repository.SalesSummary{}, fmt.Errorf("analytics.SalesSummary: %w", err)
	}
	return out, nil
}

// TopProductsByUnits ranking de productos por unidades vendidas en el rango.
// Empates por SKU. limit <= 0 devuelve todos.
func (r *AnalyticsRepo) TopProductsByUnits(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductUnits, error) {
	query := `
	SELECT
	    p.id          AS product_id,
	    p.sku,
	    p.name,
	    SUM(i.qty)    AS units
	FROM sale_items i
	JOIN sales    s ON s.id = i.sale_id
	JOIN products p ON p.id = i.product_id
	WHERE s.status IN ('CONFIRMED', 'DELIVERED')
	  AND s.date >= $1
	  AND s.date <  $2
	GROUP BY p.id, p.sku, p.name
	ORDER BY units DESC, p.sku`
	args := []any{from, to}
	if limit > 0 {
		query += `
	LIMIT $3`
		args = append(args, limit)
	}

	var rows []repository.ProductUnits
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("analytics.TopProductsByUnits: %w", err)
	}
	return rows, nil
}
