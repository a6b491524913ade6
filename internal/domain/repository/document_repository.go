package repository

import (
	"context"
	"time"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

// DocumentFilter filtros comunes para listados de compras y ventas.
type DocumentFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// PurchaseRepository persistencia de compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetByIDForUpdate bloquea el encabezado hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	// Update persiste estado, totales y fecha de confirmación.
	Update(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Purchase, error)
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
}

// SaleRepository persistencia de ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Sale, error)
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
}

// OrderRepository persistencia de pedidos de despacho.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
}
