package memory

import (
	"context"
	"time"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex en memoria (solo append).
type StockMovementRepo struct {
	a access
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.movements.get(m.ID); ok {
			return domain.ErrDuplicate
		}
		st.movements.insert(m.ID, *m)
		return nil
	})
}

// ListByProduct el orden de inserción ya es cronológico.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements.all() {
			if m.ProductID != productID || !inRange(m.CreatedAt, from, to) {
				continue
			}
			m := m
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ListByReference(_ context.Context, refType entity.RefType, refID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements.all() {
			if m.RefType == refType && m.RefID == refID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) SumDeltaBefore(_ context.Context, productID string, before time.Time) (int, error) {
	total := 0
	err := r.a.read(func(st *state) error {
		for _, m := range st.movements.rows {
			if m.ProductID == productID && m.CreatedAt.Before(before) {
				total += m.Delta()
			}
		}
		return nil
	})
	return total, err
}
