// Package apptest arma los servicios sobre un store en memoria para tests de casos de uso y HTTP.
package apptest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/app"
	"github.com/jhoicas/petmaison-api/internal/application/auth"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/application/sales"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/infrastructure/memory"
	"github.com/jhoicas/petmaison-api/pkg/logger"
)

// JWTSecret secreto de los tokens emitidos por el fixture.
const JWTSecret = "apptest-secret"

// Fixture servicios y repositorios de un store en memoria nuevo.
type Fixture struct {
	Ctx     context.Context
	Store   *memory.Store
	Repos   app.Repositories
	Svc     *app.Services
	AdminID string

	seq int
}

// New crea un fixture con IVA 19 %, zona UTC y un usuario admin.
func New(t *testing.T) *Fixture {
	t.Helper()
	store := memory.New(time.UTC)
	repos := app.MemoryRepositories(store)
	svc := app.NewServices(repos, app.Settings{
		VATRate:  decimal.RequireFromString("0.19"),
		Location: time.UTC,
		JWT:      auth.JWTConfig{Secret: JWTSecret, ExpMinutes: 30, Issuer: "apptest"},
		Store:    sales.StoreInfo{Name: "PetMaison", RUT: "76.123.456-7", Address: "Av. Siempre Viva 742"},
	}, logger.Nop())

	f := &Fixture{Ctx: context.Background(), Store: store, Repos: repos, Svc: svc}
	admin, err := svc.Auth.RegisterUser(f.Ctx, dto.RegisterRequest{
		Email: "admin@petmaison.cl", Password: "Admin123!", Name: "Admin", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	f.AdminID = admin.ID
	return f
}

// Product crea un producto activo con el stock inicial y costo neto dados.
// Precio bruto = costo * 1.19, IVA incluido.
func (f *Fixture) Product(t *testing.T, stock int, costNet string) *dto.ProductResponse {
	t.Helper()
	f.seq++
	cost := decimal.RequireFromString(costNet)
	p, err := f.Svc.Products.Create(f.Ctx, f.AdminID, dto.CreateProductRequest{
		SKU:          fmt.Sprintf("SKU-%03d", f.seq),
		Name:         fmt.Sprintf("Producto %d", f.seq),
		Category:     "Alimento",
		CostNet:      cost,
		PriceGross:   cost.Mul(decimal.RequireFromString("1.19")),
		InitialStock: stock,
		MinStock:     2,
	})
	require.NoError(t, err)
	return p
}

// Supplier crea un proveedor.
func (f *Fixture) Supplier(t *testing.T) string {
	t.Helper()
	f.seq++
	s, err := f.Svc.Suppliers.Create(f.Ctx, dto.SupplierRequest{Name: fmt.Sprintf("Proveedor %d", f.seq)})
	require.NoError(t, err)
	return s.ID
}

// Customer crea un cliente.
func (f *Fixture) Customer(t *testing.T) string {
	t.Helper()
	f.seq++
	c, err := f.Svc.Customers.Create(f.Ctx, dto.CustomerRequest{Name: fmt.Sprintf("Cliente %d", f.seq)})
	require.NoError(t, err)
	return c.ID
}

// Stock lee el stock actual del producto.
func (f *Fixture) Stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.Repos.Products.GetByID(f.Ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// DraftSale crea una venta en DRAFT con una línea por cada par (producto, cantidad) a precio neto 1000.
func (f *Fixture) DraftSale(t *testing.T, lines ...SaleLine) *dto.SaleResponse {
	t.Helper()
	s, err := f.Svc.Sales.Create(f.Ctx, f.AdminID, dto.CreateSaleRequest{})
	require.NoError(t, err)
	price := decimal.NewFromInt(1000)
	for _, l := range lines {
		s, err = f.Svc.Sales.AddItem(f.Ctx, s.ID, dto.AddSaleItemRequest{ProductID: l.ProductID, Quantity: l.Qty, UnitPriceNet: &price})
		require.NoError(t, err)
	}
	return s
}

// ConfirmedSale crea y confirma una venta.
func (f *Fixture) ConfirmedSale(t *testing.T, lines ...SaleLine) *dto.SaleResponse {
	t.Helper()
	s := f.DraftSale(t, lines...)
	out, err := f.Svc.Sales.Confirm(f.Ctx, f.AdminID, s.ID)
	require.NoError(t, err)
	return out
}

// SaleLine producto y cantidad de una línea de venta.
type SaleLine struct {
	ProductID string
	Qty       int
}
