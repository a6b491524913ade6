package orders_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/app/apptest"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

func newOrder(t *testing.T, f *apptest.Fixture) *dto.OrderResponse {
	t.Helper()
	o, err := f.Svc.Orders.Create(f.Ctx, dto.CreateOrderRequest{
		CustomerID: f.Customer(t),
		Address:    "Los Leones 123, Providencia",
		TimeWindow: "10:00-13:00",
	})
	require.NoError(t, err)
	return o
}

func advance(t *testing.T, f *apptest.Fixture, id string, status entity.OrderStatus) (*dto.OrderResponse, error) {
	t.Helper()
	return f.Svc.Orders.UpdateStatus(f.Ctx, id, dto.UpdateOrderStatusRequest{Status: string(status)})
}

func TestCreate_EstadoNew(t *testing.T) {
	f := apptest.New(t)
	o := newOrder(t, f)
	assert.Equal(t, string(entity.OrderNew), o.Status)
	assert.Nil(t, o.SaleID)
	assert.Equal(t, "10:00-13:00", o.TimeWindow)
}

func TestCreate_Validaciones(t *testing.T) {
	f := apptest.New(t)

	_, err := f.Svc.Orders.Create(f.Ctx, dto.CreateOrderRequest{CustomerID: f.Customer(t), Address: " "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.Svc.Orders.Create(f.Ctx, dto.CreateOrderRequest{CustomerID: "nope", Address: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	p := f.Product(t, 5, "1000")
	draft := f.DraftSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 1})
	_, err = f.Svc.Orders.Create(f.Ctx, dto.CreateOrderRequest{CustomerID: f.Customer(t), Address: "x", SaleID: &draft.ID})
	assert.True(t, errors.Is(err, domain.ErrConflict), "solo se asocian ventas contabilizadas")
}

func TestUpdateStatus_FlujoCompleto_EntregaLaVenta(t *testing.T) {
	f := apptest.New(t)
	p := f.Product(t, 5, "1000")
	sale := f.ConfirmedSale(t, apptest.SaleLine{ProductID: p.ID, Qty: 1})
	o := newOrder(t, f)

	linked, err := f.Svc.Orders.LinkSale(f.Ctx, o.ID, dto.LinkOrderSaleRequest{SaleID: sale.ID})
	require.NoError(t, err)
	require.NotNil(t, linked.SaleID)
	assert.Equal(t, sale.ID, *linked.SaleID)

	for _, st := range []entity.OrderStatus{entity.OrderPreparation, entity.OrderOutForDelivery, entity.OrderDelivered} {
		out, err := advance(t, f, o.ID, st)
		require.NoError(t, err, "pasar a %s", st)
		assert.Equal(t, string(st), out.Status)
	}

	s, err := f.Svc.Sales.GetByID(f.Ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SaleDelivered), s.Status)
	assert.Equal(t, 4, f.Stock(t, p.ID), "entregar no vuelve a mover stock")
}

func TestUpdateStatus_TransicionesInvalidas(t *testing.T) {
	f := apptest.New(t)
	o := newOrder(t, f)

	_, err := advance(t, f, o.ID, entity.OrderDelivered)
	assert.True(t, errors.Is(err, domain.ErrConflict), "NEW no salta a DELIVERED")

	_, err = advance(t, f, o.ID, "PERDIDO")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = advance(t, f, o.ID, entity.OrderCancelled)
	require.NoError(t, err)

	_, err = advance(t, f, o.ID, entity.OrderPreparation)
	assert.True(t, errors.Is(err, domain.ErrConflict), "un pedido anulado es terminal")

	_, err = f.Svc.Orders.LinkSale(f.Ctx, o.ID, dto.LinkOrderSaleRequest{SaleID: "x"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = advance(t, f, "nope", entity.OrderPreparation)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList_PorEstado(t *testing.T) {
	f := apptest.New(t)
	a := newOrder(t, f)
	newOrder(t, f)
	_, err := advance(t, f, a.ID, entity.OrderPreparation)
	require.NoError(t, err)

	list, err := f.Svc.Orders.List(f.Ctx, string(entity.OrderPreparation), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)

	all, err := f.Svc.Orders.List(f.Ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = f.Svc.Orders.List(f.Ctx, "OTRO", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
