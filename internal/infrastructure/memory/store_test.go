package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
	"github.com/jhoicas/petmaison-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, id, sku string, stock int) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, SKU: sku, Name: sku, CostNet: decimal.NewFromInt(100), PriceGross: decimal.NewFromInt(119),
		Stock: stock, MinStock: 1, Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func movement(productID string, qty int) *entity.StockMovement {
	return &entity.StockMovement{
		ID: productID + "-mov", ProductID: productID, Type: entity.MovementOut,
		RefType: entity.RefSale, RefID: "venta-1", Quantity: qty, CreatedAt: time.Now(),
	}
}

func TestTxRunner_Commit(t *testing.T) {
	s := memory.New(time.UTC)
	seedProduct(t, s, "p1", "A-1", 10)
	ctx := context.Background()

	err := memory.NewTxRunner(s).Run(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.Products.UpdateStock(ctx, "p1", 7); err != nil {
			return err
		}
		return uow.Movements.Create(ctx, movement("p1", 3))
	})
	require.NoError(t, err)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	movs, err := s.Movements().ListByProduct(ctx, "p1", nil, nil)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestTxRunner_RollbackPorError(t *testing.T) {
	s := memory.New(time.UTC)
	seedProduct(t, s, "p1", "A-1", 10)
	ctx := context.Background()
	boom := errors.New("boom")

	err := memory.NewTxRunner(s).Run(ctx, func(uow repository.UnitOfWork) error {
		require.NoError(t, uow.Products.UpdateStock(ctx, "p1", 0))
		require.NoError(t, uow.Movements.Create(ctx, movement("p1", 10)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock, "el stock no cambia si la transacción falla")
	movs, err := s.Movements().ListByProduct(ctx, "p1", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	s := memory.New(time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := memory.NewTxRunner(s).Run(ctx, func(repository.UnitOfWork) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	s := memory.New(time.UTC)
	seedProduct(t, s, "p1", "A-1", 1)
	err := s.Products().Create(context.Background(), &entity.Product{ID: "p2", SKU: "a-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_CopiasIndependientes(t *testing.T) {
	s := memory.New(time.UTC)
	seedProduct(t, s, "p1", "A-1", 5)
	ctx := context.Background()

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Stock = 99

	again, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock, "modificar el valor devuelto no altera el store")
}
