package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo reportes calculados recorriendo las ventas en memoria.
type AnalyticsRepo struct {
	a   access
	loc *time.Location
}

func periodLayout(groupBy string) string {
	switch groupBy {
	case repository.PeriodDay:
		return "2006-01-02"
	case repository.PeriodYear:
		return "2006"
	default:
		return "2006-01"
	}
}

func postedIn(s entity.Sale, from, to time.Time) bool {
	return s.Status.Posted() && !s.Date.Before(from) && s.Date.Before(to)
}

func (r *AnalyticsRepo) SalesByPeriod(_ context.Context, from, to time.Time, groupBy string) ([]repository.PeriodTotal, error) {
	layout := periodLayout(groupBy)
	totals := map[string]decimal.Decimal{}
	err := r.a.read(func(st *state) error {
		for _, s := range st.sales.rows {
			if !postedIn(s, from, to) {
				continue
			}
			key := s.Date.In(r.loc).Format(layout)
			totals[key] = totals[key].Add(s.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.PeriodTotal, 0, len(totals))
	for k, v := range totals {
		out = append(out, repository.PeriodTotal{Period: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func (r *AnalyticsRepo) SalesSummary(_ context.Context, from, to time.Time) (repository.SalesSummary, error) {
	sum := repository.SalesSummary{Total: decimal.Zero}
	err := r.a.read(func(st *state) error {
		for _, s := range st.sales.rows {
			if postedIn(s, from, to) {
				sum.Total = sum.Total.Add(s.Total)
				sum.Count++
			}
		}
		return nil
	})
	return sum, err
}

func (r *AnalyticsRepo) TopProductsByUnits(_ context.Context, from, to time.Time, limit int) ([]repository.ProductUnits, error) {
	units := map[string]int{}
	var out []repository.ProductUnits
	err := r.a.read(func(st *state) error {
		for _, it := range st.saleItems.rows {
			s, ok := st.sales.get(it.SaleID)
			if !ok || !postedIn(s, from, to) {
				continue
			}
			units[it.ProductID] += it.Quantity
		}
		for id, n := range units {
			pu := repository.ProductUnits{ProductID: id, Units: n}
			if p, ok := st.products.get(id); ok {
				pu.SKU = p.SKU
				pu.Name = p.Name
			}
			out = append(out, pu)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].SKU < out[j].SKU
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
