package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// LockProducts bloquea (FOR UPDATE) los productos indicados en orden ascendente de id,
// para que dos confirmaciones concurrentes no se bloqueen mutuamente.
func LockProducts(ctx context.Context, uow repository.UnitOfWork, ids []string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	out := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := uow.Products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NotFound("producto", id)
		}
		out[id] = p
	}
	return out, nil
}

// ResolveVATRate devuelve rate o la tasa por defecto, validando que esté en [0, 1].
func ResolveVATRate(rate *decimal.Decimal, def decimal.Decimal) (decimal.Decimal, error) {
	r := def
	if rate != nil {
		r = *rate
	}
	if r.LessThan(decimal.Zero) || r.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, domain.Invalid("vat_rate", "debe estar entre 0 y 1")
	}
	return r, nil
}
