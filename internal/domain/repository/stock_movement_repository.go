package repository

import (
	"context"
	"time"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

// StockMovementRepository puerto del kardex. Solo inserción y lectura: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos del producto en orden cronológico ascendente.
	// from y to son opcionales; to es exclusivo.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, refType entity.RefType, refID string) ([]*entity.StockMovement, error)
	// SumDeltaBefore saldo del producto acumulado antes de la fecha dada.
	SumDeltaBefore(ctx context.Context, productID string, before time.Time) (int, error)
}
