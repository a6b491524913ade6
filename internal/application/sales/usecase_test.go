package sales_test

import (
	"bytes"
	"errors"
	"sync"
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

func saleMovements(t *testing.T, f *apptest.Fixture, saleID string) []*entity.StockMovement {
	t.Helper()
	movs, err := f.Repos.Movements.ListByReference(f.Ctx, entity.RefSale, saleID)
	require.NoError(t, err)
	return movs
}

func TestConfirm_DescuentaStockYCalculaTotales(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "700")
	s := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 3})

	assert.True(t, s.SubtotalNet.Equal(dec("3000")))
	assert.True(t, s.VAT.Equal(dec("570")))
	assert.True(t, s.Total.Equal(dec("3570")))

	out, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleConfirmed), out.Status)
	assert.True(t, out.Total.Equal(dec("3570")))
	assert.Equal(t, 7, f.Stock(t, p.ID))

	movs := saleMovements(t, f, s.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementOut, movs[0].Type)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.True(t, movs[0].UnitCostNet.Decimal.Equal(dec("700")), "el OUT guarda el costo del producto")
}

func TestConfirm_StockInsuficiente_NoAplicaNada(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")
	s := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 12})

	_, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	require.Error(t, err)
	var serr *domain.InsufficientStockError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, p.ID, serr.ProductID)
	assert.Equal(t, 10, serr.Available)
	assert.Equal(t, 12, serr.Requested)

	assert.Equal(t, 10, f.Stock(t, p.ID))
	assert.Empty(t, saleMovements(t, f, s.ID))
	got, err := f.Svc.Sales.GetByID(f.Ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleDraft), got.Status)
}

func TestConfirm_UnaLineaFalla_OtrasNoSeAplican(t *testing.T) {
	f := apptest.New(t)
	ok := f.Product(t, 10, "1000")
	short := f.Product(t, 1, "1000")
	s := f.DraftSale(t,
		apptest.SaleLine{ProductID: ok.ID, Qty: 2},
		apptest.SaleLine{ProductID: short.ID, Qty: 5},
	)

	_, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	require.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 10, f.Stock(t, ok.ID))
	assert.Equal(t, 1, f.Stock(t, short.ID))
	assert.Empty(t, saleMovements(t, f, s.ID))
}

func TestConfirm_MismoProductoEnVariasLineas_SumaCantidades(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 5, "1000")
	s := f.DraftSale(t,
		apptest.SaleLine{ProductID: p.ID, Qty: 3},
		apptest.SaleLine{ProductID: p.ID, Qty: 3},
	)

	_, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	var serr *domain.InsufficientStockError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 6, serr.Requested)
	assert.Equal(t, 5, f.Stock(t, p.ID))
}

func TestConfirm_Concurrentes_SoloUnaPasa(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")
	a := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 6})
	b := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 6})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.Svc.Sales.Confirm(f.Ctx, f.AdminID, id)
		}(i, id)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		failed++
		var serr *domain.InsufficientStockError
		require.True(t, errors.As(err, &serr), "err = %v", err)
		assert.Equal(t, 4, serr.Available)
		assert.Equal(t, 6, serr.Requested)
	}
	assert.Equal(t, 1, failed, "exactamente una confirmación debe fallar")
	assert.Equal(t, 4, f.Stock(t, p.ID))
	assert.Equal(t, 1, len(saleMovements(t, f, a.ID))+len(saleMovements(t, f, b.ID)))
}

func TestConfirm_DosVeces_MismoKardex(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")
	s := f.ConfirmedSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 4})

	again, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	assert.True(t, errors.Is(err, domain.ErrAlreadyConfirmed))
	require.NotNil(t, again)
	assert.True(t, again.AlreadyConfirmed)
	assert.Equal(t, 6, f.Stock(t, p.ID))
	assert.Len(t, saleMovements(t, f, s.ID), 1)
}

func TestConfirm_SinLineas(t *testing.T) {
	f := apptest.New(t)
	s := f.DraftSale(t)
	_, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCancel_NoRevierteStock(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")
	s := f.ConfirmedSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 2})

	out, err := f.Svc.Sales.Cancel(f.Ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleCancelled), out.Status)
	assert.Equal(t, 8, f.Stock(t, p.ID))

	_, err = f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	_, err = f.Svc.Sales.Cancel(f.Ctx, s.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestDeliver_SoloDesdeConfirmada(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")

	draft := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 1})
	_, err := f.Svc.Sales.Deliver(f.Ctx, draft.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	s := f.ConfirmedSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 1})
	out, err := f.Svc.Sales.Deliver(f.Ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleDelivered), out.Status)
	assert.Equal(t, 9, f.Stock(t, p.ID))

	again, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	assert.True(t, errors.Is(err, domain.ErrAlreadyConfirmed))
	assert.Equal(t, string(entity.SaleDelivered), again.Status)
}

func TestAddItem_PrecioPorDefectoYDescuento(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000") // precio bruto 1190 con IVA incluido
	s, err := f.Svc.Sales.Create(f.Ctx, f.AdminID, dto.CreateSaleRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentCash), s.PaymentMethod)

	out, err := f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: 2, Discount: dec("200")})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPriceNet.Equal(dec("1000")), "precio neto %s", out.Items[0].UnitPriceNet)
	assert.True(t, out.SubtotalNet.Equal(dec("1800")))
	assert.True(t, out.Discount.Equal(dec("200")))
	assert.True(t, out.VAT.Equal(dec("342")))
	assert.True(t, out.Total.Equal(dec("2142")))
}

func TestAddItem_MontosAEscalaDeMoneda(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1")
	s := f.DraftSale(t)

	price := dec("1.005")
	out, err := f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: 1, UnitPriceNet: &price})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPriceNet.Equal(dec("1.01")), "precio %s", out.Items[0].UnitPriceNet)
	assert.True(t, out.VAT.Equal(dec("0.19")), "iva 0.1919 se guarda como 0.19, got %s", out.VAT)
	assert.True(t, out.Total.Equal(dec("1.20")))

	small := dec("0.05")
	out, err = f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: 1, UnitPriceNet: &small})
	require.NoError(t, err)
	sum := decimal.Zero
	for _, it := range out.Items {
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, out.Total.Equal(sum), "Σ líneas %s, total %s", sum, out.Total)
	assert.True(t, out.Total.Equal(dec("1.26")), "total %s", out.Total)

	stored, err := f.Svc.Sales.GetByID(f.Ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.VAT.Equal(out.VAT))
}

func TestAddItem_Rechazos(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")
	s := f.DraftSale(t)

	_, err := f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: 1, Discount: dec("5000")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "descuento mayor que la línea")

	_, err = f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: entity.MaxQuantity + 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cantidad sobre el máximo")

	require.NoError(t, f.Svc.Products.Deactivate(f.Ctx, p.ID))
	_, err = f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: p.ID, Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "producto inactivo")

	got, err := f.Svc.Sales.GetByID(f.Ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.Total.IsZero())
}

func TestCreate_Validaciones(t *testing.T) {
	f := apptest.New(t)

	_, err := f.Svc.Sales.Create(f.Ctx, "", dto.CreateSaleRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.Svc.Sales.Create(f.Ctx, f.AdminID, dto.CreateSaleRequest{PaymentMethod: "CHEQUE"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	missing := "no-existe"
	_, err = f.Svc.Sales.Create(f.Ctx, f.AdminID, dto.CreateSaleRequest{CustomerID: &missing})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	customer := f.Customer(t)
	out, err := f.Svc.Sales.Create(f.Ctx, f.AdminID, dto.CreateSaleRequest{CustomerID: &customer, PaymentMethod: "TARJETA"})
	require.NoError(t, err)
	require.NotNil(t, out.CustomerID)
	assert.Equal(t, customer, *out.CustomerID)
}

func TestTicket_RequiereVentaConfirmada(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 10, "1000")

	draft := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 1})
	_, err := f.Svc.Tickets.Generate(f.Ctx, draft.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	s := f.ConfirmedSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 1})
	pdf, err := f.Svc.Tickets.Generate(f.Ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = f.Svc.Tickets.Generate(f.Ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
