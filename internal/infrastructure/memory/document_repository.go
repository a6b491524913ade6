package memory

import (
	"context"
	"time"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct {
	a access
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.purchases.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		st.purchases.insert(p.ID, *p)
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.a.read(func(st *state) error {
		if p, ok := st.purchases.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	return r.a.write(func(st *state) error {
		if !st.purchases.update(p.ID, *p) {
			return domain.NotFound("compra", p.ID)
		}
		return nil
	})
}

func (r *PurchaseRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	err := r.a.read(func(st *state) error {
		var rows []entity.Purchase
		for _, p := range st.purchases.all() {
			if f.Status != "" && string(p.Status) != f.Status {
				continue
			}
			if !inRange(p.Date, f.From, f.To) {
				continue
			}
			rows = append(rows, p)
		}
		for _, p := range page(newestFirst(rows, func(d entity.Purchase) time.Time { return d.Date }), f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) CreateItem(_ context.Context, item *entity.PurchaseItem) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.purchases.get(item.PurchaseID); !ok {
			return domain.NotFound("compra", item.PurchaseID)
		}
		st.purchaseItems.insert(item.ID, *item)
		return nil
	})
}

func (r *PurchaseRepo) ListItems(_ context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	err := r.a.read(func(st *state) error {
		for _, it := range st.purchaseItems.all() {
			if it.PurchaseID == purchaseID {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	return out, err
}

// SaleRepo ventas en memoria.
type SaleRepo struct {
	a access
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sales.get(s.ID); ok {
			return domain.ErrDuplicate
		}
		st.sales.insert(s.ID, *s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.a.read(func(st *state) error {
		if s, ok := st.sales.get(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) Update(_ context.Context, s *entity.Sale) error {
	return r.a.write(func(st *state) error {
		if !st.sales.update(s.ID, *s) {
			return domain.NotFound("venta", s.ID)
		}
		return nil
	})
}

func (r *SaleRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.a.read(func(st *state) error {
		var rows []entity.Sale
		for _, s := range st.sales.all() {
			if f.Status != "" && string(s.Status) != f.Status {
				continue
			}
			if !inRange(s.Date, f.From, f.To) {
				continue
			}
			rows = append(rows, s)
		}
		for _, s := range page(newestFirst(rows, func(d entity.Sale) time.Time { return d.Date }), f.Limit, f.Offset) {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sales.get(item.SaleID); !ok {
			return domain.NotFound("venta", item.SaleID)
		}
		st.saleItems.insert(item.ID, *item)
		return nil
	})
}

func (r *SaleRepo) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	err := r.a.read(func(st *state) error {
		for _, it := range st.saleItems.all() {
			if it.SaleID == saleID {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	return out, err
}

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	a access
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.orders.get(o.ID); ok {
			return domain.ErrDuplicate
		}
		st.orders.insert(o.ID, *o)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(st *state) error {
		if o, ok := st.orders.get(id); ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	return r.a.write(func(st *state) error {
		if !st.orders.update(o.ID, *o) {
			return domain.NotFound("pedido", o.ID)
		}
		return nil
	})
}

func (r *OrderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.a.read(func(st *state) error {
		var rows []entity.Order
		for _, o := range st.orders.all() {
			if status != "" && string(o.Status) != status {
				continue
			}
			rows = append(rows, o)
		}
		for _, o := range page(reverse(rows), limit, offset) {
			o := o
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}
