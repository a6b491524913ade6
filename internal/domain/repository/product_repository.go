package repository

import (
	"context"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search   string // coincidencia parcial en name o sku (sin distinguir mayúsculas)
	Category string
	Brand    string
	Active   *bool
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update modifica los campos de catálogo; no toca stock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListBelowMinStock productos activos con stock <= min_stock.
	ListBelowMinStock(ctx context.Context) ([]*entity.Product, error)
}
