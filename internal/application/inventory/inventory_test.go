package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/app/apptest"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

func TestAdjust_PositivoYNegativo(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 5, "1000")

	out, err := f.Svc.Adjustments.Adjust(f.Ctx, f.AdminID, dto.AdjustmentRequest{ProductID: p.ID, Quantity: 3, Reason: "conteo físico"})
	require.NoError(t, err)
	assert.Equal(t, 8, out.Stock)
	assert.Equal(t, string(entity.MovementAdjustment), out.Movement.Type)
	assert.Equal(t, "conteo físico", out.Movement.Notes)
	assert.Equal(t, f.AdminID, out.Movement.CreatedBy)

	out, err = f.Svc.Adjustments.Adjust(f.Ctx, f.AdminID, dto.AdjustmentRequest{ProductID: p.ID, Quantity: -8, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Stock)
	assert.Equal(t, -8, out.Movement.Quantity)
	assert.Equal(t, 0, f.Stock(t, p.ID))
}

func TestAdjust_NoDejaStockNegativo(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 2, "1000")

	_, err := f.Svc.Adjustments.Adjust(f.Ctx, f.AdminID, dto.AdjustmentRequest{ProductID: p.ID, Quantity: -3, Reason: "merma"})
	var serr *domain.InsufficientStockError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Available)
	assert.Equal(t, 3, serr.Requested)
	assert.Equal(t, 2, f.Stock(t, p.ID))

	k, err := f.Svc.Kardex.GetKardex(f.Ctx, p.ID, dto.KardexRequest{})
	require.NoError(t, err)
	assert.Len(t, k.Entries, 1, "solo el stock inicial")
}

func TestAdjust_Validaciones(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 2, "1000")
	neg := decimal.NewFromInt(-1)

	cases := map[string]dto.AdjustmentRequest{
		"cantidad cero":  {ProductID: p.ID, Quantity: 0, Reason: "x"},
		"sobre el tope":  {ProductID: p.ID, Quantity: entity.MaxQuantity + 1, Reason: "x"},
		"bajo el tope":   {ProductID: p.ID, Quantity: -entity.MaxQuantity - 1, Reason: "x"},
		"sin motivo":     {ProductID: p.ID, Quantity: 1, Reason: "  "},
		"sin producto":   {Quantity: 1, Reason: "x"},
		"costo negativo": {ProductID: p.ID, Quantity: 1, Reason: "x", UnitCost: &neg},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.Svc.Adjustments.Adjust(f.Ctx, f.AdminID, in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "err = %v", err)
		})
	}

	_, err := f.Svc.Adjustments.Adjust(f.Ctx, f.AdminID, dto.AdjustmentRequest{ProductID: "nope", Quantity: 1, Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestKardex_SaldoAcumulado(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")
	f.ConfirmedSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 4})
	_, err := f.Svc.Adjustments.Adjust(f.Ctx, f.AdminID, dto.AdjustmentRequest{ProductID: p.ID, Quantity: 2, Reason: "devolución"})
	require.NoError(t, err)

	k, err := f.Svc.Kardex.GetKardex(f.Ctx, p.ID, dto.KardexRequest{})
	require.NoError(t, err)
	require.Len(t, k.Entries, 3)
	assert.Equal(t, 0, k.OpeningBalance)

	assert.Equal(t, []int{10, -4, 2}, []int{k.Entries[0].Delta, k.Entries[1].Delta, k.Entries[2].Delta})
	assert.Equal(t, []int{10, 6, 8}, []int{k.Entries[0].Balance, k.Entries[1].Balance, k.Entries[2].Balance})
	assert.Equal(t, string(entity.MovementOut), k.Entries[1].Type)
	assert.Equal(t, string(entity.RefSale), k.Entries[1].RefType)
	assert.Equal(t, 8, k.ClosingBalance)
	assert.Equal(t, k.ClosingBalance, k.CurrentStock)
}

func TestKardex_RangoDeFechas(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 7, "1000")
	today := time.Now().UTC()

	k, err := f.Svc.Kardex.GetKardex(f.Ctx, p.ID, dto.KardexRequest{
		From: today.AddDate(0, 0, 1).Format(dto.DateLayout),
	})
	require.NoError(t, err)
	assert.Empty(t, k.Entries)
	assert.Equal(t, 7, k.OpeningBalance)
	assert.Equal(t, 7, k.ClosingBalance)

	k, err = f.Svc.Kardex.GetKardex(f.Ctx, p.ID, dto.KardexRequest{
		From: today.AddDate(0, 0, -1).Format(dto.DateLayout),
		To:   today.AddDate(0, 0, 1).Format(dto.DateLayout),
	})
	require.NoError(t, err)
	assert.Len(t, k.Entries, 1)
	assert.Equal(t, 0, k.OpeningBalance)

	_, err = f.Svc.Kardex.GetKardex(f.Ctx, p.ID, dto.KardexRequest{From: "2025-13-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.Svc.Kardex.GetKardex(f.Ctx, p.ID, dto.KardexRequest{From: "2025-03-10", To: "2025-03-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.Svc.Kardex.GetKardex(f.Ctx, "nope", dto.KardexRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReplenishment_PriorizaPorVentasRecientes(t *testing.T) {
	f := apptest.New(t)
	quiet := f.Product(t, 1, "500")  // mínimo 2, sin ventas
	moving := f.Product(t, 3, "800") // vende 1 y queda en el mínimo
	f.Product(t, 10, "900")          // sobre el mínimo
	inactive := f.Product(t, 0, "100")
	require.NoError(t, f.Svc.Products.Deactivate(f.Ctx, inactive.ID))

	f.ConfirmedSale(t, apptest.SaleLine{ProductID: moving.ID, Qty: 1})

	list, err := f.Svc.Replenishment.GenerateReplenishmentList(f.Ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	first, second := list[0], list[1]
	assert.Equal(t, moving.ID, first.ProductID)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, 1, first.UnitsSoldLast90Days)
	assert.Equal(t, 3, first.IdealStock)
	assert.Equal(t, 1, first.SuggestedOrderQty)

	assert.Equal(t, quiet.ID, second.ProductID)
	assert.Equal(t, 2, second.Priority)
	assert.Equal(t, 2, second.SuggestedOrderQty)
	assert.True(t, second.EstimatedOrderCost.Equal(decimal.NewFromInt(1000)))
}

func TestReplenishment_SinProductosBajoMinimo(t *testing.T) {
	f := apptest.New(t)
	f.Product(t, 50, "1000")

	list, err := f.Svc.Replenishment.GenerateReplenishmentList(f.Ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
