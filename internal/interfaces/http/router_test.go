package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petmaison-api/internal/app/apptest"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	apphttp "github.com/jhoicas/petmaison-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/petmaison-api/pkg/jwt"
)

type api struct {
	t      *testing.T
	f      *apptest.Fixture
	app    *fiber.App
	admin  string
	seller string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	f := apptest.New(t)
	app := fiber.New()
	apphttp.Router(app, f.Svc.RouterDeps())

	seller, err := f.Svc.Auth.RegisterUser(f.Ctx, dto.RegisterRequest{Email: "caja@petmaison.cl", Password: "Caja1234!"})
	require.NoError(t, err)

	return &api{t: t, f: f, app: app, admin: token(t, f.AdminID, entity.RoleAdmin), seller: token(t, seller.ID, entity.RoleVendedor)}
}

func token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(apptest.JWTSecret, userID, role, "apptest", 30)
	require.NoError(t, err)
	return tok
}

// do ejecuta la request y decodifica el cuerpo JSON en out (si no es nil).
func (a *api) do(method, path, bearer string, body any, out any) *http.Response {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestProductos_ListadoPublico(t *testing.T) {
	a := newAPI(t)
	a.f.Product(t, 5, "1000")

	var out dto.ProductListResponse
	resp := a.do(http.MethodGet, "/api/products", "", nil, &out)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, out.Items, 1)
}

func TestProductos_CrearRequiereAdmin(t *testing.T) {
	a := newAPI(t)
	body := fiber.Map{"sku": "ALI-001", "name": "Alimento perro 15kg", "cost_net": "20000", "price_gross": "29990", "initial_stock": 4}

	resp := a.do(http.MethodPost, "/api/products", "", body, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var denied dto.ErrorResponse
	resp = a.do(http.MethodPost, "/api/products", a.seller, body, &denied)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", denied.Code)

	var created dto.ProductResponse
	resp = a.do(http.MethodPost, "/api/products", a.admin, body, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ALI-001", created.SKU)
	assert.Equal(t, 4, created.Stock)

	var dup dto.ErrorResponse
	resp = a.do(http.MethodPost, "/api/products", a.admin, body, &dup)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", dup.Code)
}

func TestProductos_ValidacionDevuelveCampo(t *testing.T) {
	a := newAPI(t)

	var out struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	resp := a.do(http.MethodPost, "/api/products", a.admin, fiber.Map{"name": "Sin SKU"}, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "sku", out.Details["field"])
}

func TestVentas_FlujoCompleto(t *testing.T) {
	a := newAPI(t)
	p := a.f.Product(t, 3, "700")

	var sale dto.SaleResponse
	resp := a.do(http.MethodPost, "/api/sales", a.seller, fiber.Map{"payment_method": "TARJETA"}, &sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "DRAFT", sale.Status)

	resp = a.do(http.MethodPost, "/api/sales/"+sale.ID+"/items", a.seller,
		fiber.Map{"product_id": p.ID, "qty": 5, "unit_price_net": "1000"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// 5 pedidas, 3 disponibles.
	var rejected struct {
		Code    string                       `json:"code"`
		Details dto.InsufficientStockDetails `json:"details"`
	}
	resp = a.do(http.MethodPost, "/api/sales/"+sale.ID+"/confirm", a.seller, nil, &rejected)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", rejected.Code)
	assert.Equal(t, p.ID, rejected.Details.ProductID)
	assert.Equal(t, 3, rejected.Details.Available)
	assert.Equal(t, 5, rejected.Details.Requested)
	assert.Equal(t, 3, a.f.Stock(t, p.ID))

	// Segunda venta que sí alcanza.
	resp = a.do(http.MethodPost, "/api/sales", a.seller, fiber.Map{}, &sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = a.do(http.MethodPost, "/api/sales/"+sale.ID+"/items", a.seller,
		fiber.Map{"product_id": p.ID, "qty": 2, "unit_price_net": "1000"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var confirmed dto.SaleResponse
	resp = a.do(http.MethodPost, "/api/sales/"+sale.ID+"/confirm", a.seller, nil, &confirmed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CONFIRMED", confirmed.Status)
	assert.False(t, confirmed.AlreadyConfirmed)
	assert.True(t, confirmed.Total.Equal(decimal.NewFromInt(2380)), "total %s", confirmed.Total)
	assert.Equal(t, 1, a.f.Stock(t, p.ID))

	var again dto.SaleResponse
	resp = a.do(http.MethodPost, "/api/sales/"+sale.ID+"/confirm", a.seller, nil, &again)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, again.AlreadyConfirmed)
	assert.Equal(t, 1, a.f.Stock(t, p.ID), "reconfirmar no descuenta de nuevo")

	resp = a.do(http.MethodGet, "/api/sales/"+sale.ID+"/ticket", a.seller, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "boleta-"+sale.ID+".pdf")
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestVentas_NoEncontrada(t *testing.T) {
	a := newAPI(t)
	var out dto.ErrorResponse
	resp := a.do(http.MethodGet, "/api/sales/00000000-0000-0000-0000-00000000dead", a.seller, nil, &out)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestVentas_CuerpoInvalido(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.seller)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVentas_CantidadFueraDeRango(t *testing.T) {
	a := newAPI(t)
	p := a.f.Product(t, 5, "1000")

	var sale dto.SaleResponse
	resp := a.do(http.MethodPost, "/api/sales", a.seller, fiber.Map{}, &sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	resp = a.do(http.MethodPost, "/api/sales/"+sale.ID+"/items", a.seller,
		fiber.Map{"product_id": p.ID, "qty": 3000000000, "unit_price_net": "1000"}, &out)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "qty", out.Details["field"])
	assert.Equal(t, 5, a.f.Stock(t, p.ID))
}

func TestInventario_AjusteSoloAdmin(t *testing.T) {
	a := newAPI(t)
	p := a.f.Product(t, 5, "1000")
	body := fiber.Map{"product_id": p.ID, "qty": -2, "reason": "merma"}

	resp := a.do(http.MethodPost, "/api/inventory/adjustments", a.seller, body, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = a.do(http.MethodPost, "/api/inventory/adjustments", a.admin, body, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3, a.f.Stock(t, p.ID))

	var kardex dto.KardexResponse
	resp = a.do(http.MethodGet, "/api/inventory/kardex/"+p.ID, a.seller, nil, &kardex)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, kardex.Entries)
	assert.Equal(t, 3, kardex.Entries[len(kardex.Entries)-1].Balance)
}

func TestReporte_RequiereRango(t *testing.T) {
	a := newAPI(t)

	var bad dto.ErrorResponse
	resp := a.do(http.MethodGet, "/api/reports/sales?groupBy=month", "", nil, &bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", bad.Code)

	var ok dto.SalesReportResponse
	resp = a.do(http.MethodGet, "/api/reports/sales?from=2025-01-01&to=2025-01-31&groupBy=day", "", nil, &ok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "day", ok.GroupBy)
}

func TestDashboard_RequiereToken(t *testing.T) {
	a := newAPI(t)
	resp := a.do(http.MethodGet, "/api/dashboard/summary", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out dto.DashboardSummaryDTO
	resp = a.do(http.MethodGet, "/api/dashboard/summary", a.seller, nil, &out)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
