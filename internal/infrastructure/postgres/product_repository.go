package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"id", "sku", "name", "brand", "category", "description", "cost_net", "price_gross",
	"vat_included", "stock", "min_stock", "active", "created_at", "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido (sin distinguir mayúsculas) devuelve ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	sql, args, err := psql.Insert("products").Columns(productColumns...).Values(
		p.ID, p.SKU, p.Name, p.Brand, p.Category, p.Description, p.CostNet, p.PriceGross,
		p.VATIncluded, p.Stock, p.MinStock, p.Active, p.CreatedAt, p.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id}))
}

// GetByIDForUpdate obtiene el producto con SELECT ... FOR UPDATE.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// GetBySKU obtiene un producto por SKU (sin distinguir mayúsculas).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, psql.Select(productColumns...).From("products").Where("lower(sku) = lower(?)", sku))
}

func (r *ProductRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product: %w", err)
	}
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos de catálogo. No modifica Stock (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	sql, args, err := psql.Update("products").SetMap(map[string]any{
		"sku":          p.SKU,
		"name":         p.Name,
		"brand":        p.Brand,
		"category":     p.Category,
		"description":  p.Description,
		"cost_net":     p.CostNet,
		"price_gross":  p.PriceGross,
		"vat_included": p.VATIncluded,
		"min_stock":    p.MinStock,
		"active":       p.Active,
		"updated_at":   p.UpdatedAt,
	}).Where(squirrel.Eq{"id": p.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto", p.ID)
	}
	return nil
}

// UpdateStock fija el stock del producto (usado por el kardex dentro de la transacción).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, productID, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto", productID)
	}
	return nil
}

// List lista productos ordenados por nombre con filtros opcionales.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	q := psql.Select(productColumns...).From("products").OrderBy("name", "id")
	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(squirrel.Or{squirrel.ILike{"name": pattern}, squirrel.ILike{"sku": pattern}})
	}
	if f.Category != "" {
		q = q.Where("lower(category) = lower(?)", f.Category)
	}
	if f.Brand != "" {
		q = q.Where("lower(brand) = lower(?)", f.Brand)
	}
	if f.Active != nil {
		q = q.Where(squirrel.Eq{"active": *f.Active})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return r.selectMany(ctx, q)
}

// ListBelowMinStock productos activos con stock <= min_stock, del más crítico al menos crítico.
func (r *ProductRepo) ListBelowMinStock(ctx context.Context) ([]*entity.Product, error) {
	q := psql.Select(productColumns...).From("products").
		Where("active AND stock <= min_stock").
		OrderBy("stock - min_stock", "sku")
	return r.selectMany(ctx, q)
}

func (r *ProductRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var list []*entity.Product
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}
