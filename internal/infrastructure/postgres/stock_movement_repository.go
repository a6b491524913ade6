package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

var movementColumns = []string{
	"id", "product_id", "type", "ref_type", "ref_id", "qty", "unit_cost_net", "notes", "created_by", "created_at",
}

// StockMovementRepo kardex sobre PostgreSQL. Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := exec(ctx, r.q, psql.Insert("stock_movements").Columns(movementColumns...).Values(
		m.ID, m.ProductID, m.Type, m.RefType, m.RefID, m.Quantity, m.UnitCostNet, m.Notes, m.CreatedBy, m.CreatedAt,
	))
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos del producto en [from, to), en orden cronológico (created_at, seq).
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	b := psql.Select(movementColumns...).From("stock_movements").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at", "seq")
	if from != nil {
		b = b.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		b = b.Where(squirrel.Lt{"created_at": *to})
	}
	var list []*entity.StockMovement
	if err := selectRows(ctx, r.q, &list, b); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}

// ListByReference movimientos generados por un documento.
func (r *StockMovementRepo) ListByReference(ctx context.Context, refType entity.RefType, refID string) ([]*entity.StockMovement, error) {
	b := psql.Select(movementColumns...).From("stock_movements").
		Where(squirrel.Eq{"ref_type": refType, "ref_id": refID}).
		OrderBy("created_at", "seq")
	var list []*entity.StockMovement
	if err := selectRows(ctx, r.q, &list, b); err != nil {
		return nil, fmt.Errorf("list stock movements by ref: %w", err)
	}
	return list, nil
}

// SumDeltaBefore saldo acumulado del producto antes de la fecha (IN suma, OUT resta, ADJUSTMENT con signo).
func (r *StockMovementRepo) SumDeltaBefore(ctx context.Context, productID string, before time.Time) (int, error) {
	const query = `
	SELECT COALESCE(SUM(CASE type WHEN 'OUT' THEN -qty ELSE qty END), 0)
	FROM stock_movements
	WHERE product_id = $1 AND created_at < $2`

	var sum int
	if err := r.q.QueryRow(ctx, query, productID, before).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}
