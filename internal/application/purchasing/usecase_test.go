package purchasing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/app/apptest"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConfirm_SumaStockYTotales(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 0, "1000")
	b := f.Product(t, 0, "2000")

	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseDraft), p.Status)
	assert.True(t, p.Total.IsZero())

	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 5, UnitCostNet: dec("1000")})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: b.ID, Quantity: 3, UnitCostNet: dec("2000")})
	require.NoError(t, err)

	out, err := f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseConfirmed), out.Status)
	assert.NotNil(t, out.ConfirmedAt)
	assert.True(t, out.SubtotalNet.Equal(dec("11000")), "subtotal %s", out.SubtotalNet)
	assert.True(t, out.VAT.Equal(dec("2090")), "vat %s", out.VAT)
	assert.True(t, out.Total.Equal(dec("13090")), "total %s", out.Total)

	assert.Equal(t, 5, f.Stock(t, a.ID))
	assert.Equal(t, 3, f.Stock(t, b.ID))

	movs, err := f.Repos.Movements.ListByReference(f.Ctx, entity.RefPurchase, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	total := 0
	for _, m := range movs {
		assert.Equal(t, entity.MovementIn, m.Type)
		assert.True(t, m.UnitCostNet.Valid)
		total += m.Quantity
	}
	assert.Equal(t, 8, total)
}

func TestConfirm_DosVeces_NoDuplicaMovimientos(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 1, "500")
	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 4, UnitCostNet: dec("500")})
	require.NoError(t, err)

	_, err = f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, p.ID)
	require.NoError(t, err)

	again, err := f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, p.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadyConfirmed))
	require.NotNil(t, again)
	assert.True(t, again.AlreadyConfirmed)
	assert.Equal(t, string(entity.PurchaseConfirmed), again.Status)

	assert.Equal(t, 5, f.Stock(t, a.ID))
	movs, err := f.Repos.Movements.ListByReference(f.Ctx, entity.RefPurchase, p.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestConfirm_SinLineas(t *testing.T) {
	f := apptest.New(t)
	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)

	_, err = f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, p.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	got, err := f.Svc.Purchases.GetByID(f.Ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseDraft), got.Status)
}

func TestConfirm_Inexistente(t *testing.T) {
	f := apptest.New(t)
	_, err := f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAddItem_CompraConfirmada_Conflicto(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 0, "1000")
	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 1, UnitCostNet: dec("1000")})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, p.ID)
	require.NoError(t, err)

	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 1, UnitCostNet: dec("1000")})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestAddItem_RecalculaDesdeLineasPersistidas(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 0, "1000")
	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)

	exento := dec("0")
	out, err := f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 2, UnitCostNet: dec("1000"), VATRate: &exento})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(dec("2000")))

	out, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 1, UnitCostNet: dec("1000")})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, out.SubtotalNet.Equal(dec("3000")))
	assert.True(t, out.VAT.Equal(dec("190")))
	assert.True(t, out.Total.Equal(dec("3190")))
	assert.True(t, out.Items[1].LineTotal.Equal(dec("1190")))
}

func TestAddItem_Validaciones(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 0, "1000")
	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)

	cases := []struct {
		name  string
		in    dto.AddPurchaseItemRequest
		field string
	}{
		{"cantidad cero", dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 0, UnitCostNet: dec("1")}, "qty"},
		{"cantidad sobre el máximo", dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: entity.MaxQuantity + 1, UnitCostNet: dec("1")}, "qty"},
		{"costo negativo", dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 1, UnitCostNet: dec("-1")}, "unit_cost_net"},
		{"iva fuera de rango", func() dto.AddPurchaseItemRequest {
			r := dec("1.5")
			return dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 1, UnitCostNet: dec("1"), VATRate: &r}
		}(), "vat_rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Svc.Purchases.AddItem(f.Ctx, p.ID, tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: "nope", Quantity: 1, UnitCostNet: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfirm_StockSobreElMaximo_NoAplicaNada(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 10, "1000")
	p, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: f.Supplier(t)})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.AddItem(f.Ctx, p.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: entity.MaxQuantity, UnitCostNet: dec("1")})
	require.NoError(t, err)

	_, err = f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, p.ID)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "err = %v", err)
	assert.Equal(t, "qty", verr.Field)
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 10, f.Stock(t, a.ID))
	got, err := f.Svc.Purchases.GetByID(f.Ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PurchaseDraft), got.Status)
	movs, err := f.Repos.Movements.ListByReference(f.Ctx, entity.RefPurchase, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := apptest.New(t)
	_, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: "nope"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := apptest.New(t)
	a := f.Product(t, 0, "1000")
	supplier := f.Supplier(t)
	_, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: supplier})
	require.NoError(t, err)
	done, err := f.Svc.Purchases.Create(f.Ctx, f.AdminID, dto.CreatePurchaseRequest{SupplierID: supplier})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.AddItem(f.Ctx, done.ID, dto.AddPurchaseItemRequest{ProductID: a.ID, Quantity: 1, UnitCostNet: dec("1000")})
	require.NoError(t, err)
	_, err = f.Svc.Purchases.Confirm(f.Ctx, f.AdminID, done.ID)
	require.NoError(t, err)

	list, err := f.Svc.Purchases.List(f.Ctx, dto.DocumentListRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, done.ID, list.Items[0].ID)

	all, err := f.Svc.Purchases.List(f.Ctx, dto.DocumentListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 50, all.Page.Limit)

	_, err = f.Svc.Purchases.List(f.Ctx, dto.DocumentListRequest{Status: "DELIVERED"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
