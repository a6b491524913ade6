package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/petmaison-api/internal/application/analytics"
	"github.com/jhoicas/petmaison-api/internal/application/auth"
	"github.com/jhoicas/petmaison-api/internal/application/inventory"
	"github.com/jhoicas/petmaison-api/internal/application/orders"
	"github.com/jhoicas/petmaison-api/internal/application/purchasing"
	"github.com/jhoicas/petmaison-api/internal/application/sales"
	"github.com/jhoicas/petmaison-api/internal/application/usecase"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	CustomerUC      *usecase.CustomerUseCase
	SupplierUC      *usecase.SupplierUseCase
	PurchaseUC      *purchasing.PurchaseUseCase
	SaleUC          *sales.SaleUseCase
	TicketUC        *sales.TicketUseCase
	OrderUC         *orders.OrderUseCase
	AdjustmentUC    *inventory.AdjustmentUseCase
	KardexUC        *inventory.KardexUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ReportUC        *appanalytics.ReportUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	authHandler := NewAuthHandler(deps.AuthUC)
	productHandler := NewProductHandler(deps.ProductUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	// Público
	api.Post("/auth/login", authHandler.Login)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Get("/reports/sales", reportHandler.SalesReport)

	// Auth
	api.Get("/auth/me", requireAuth, authHandler.Me)
	api.Post("/auth/users", requireAuth, adminOnly, authHandler.Register)

	// Productos: escrituras solo admin
	products := api.Group("/products", requireAuth, adminOnly)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clientes
	customers := api.Group("/customers", requireAuth)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Proveedores
	suppliers := api.Group("/suppliers", requireAuth)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Compras: lectura para todo el staff, escrituras admin
	purchases := api.Group("/purchases", requireAuth)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/", adminOnly, purchaseHandler.Create)
	purchases.Post("/:id/items", adminOnly, purchaseHandler.AddItem)
	purchases.Post("/:id/confirm", adminOnly, purchaseHandler.Confirm)

	// Ventas (POS)
	salesGroup := api.Group("/sales", requireAuth)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.TicketUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/items", saleHandler.AddItem)
	salesGroup.Post("/:id/confirm", saleHandler.Confirm)
	salesGroup.Post("/:id/deliver", saleHandler.Deliver)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Get("/:id/ticket", saleHandler.Ticket)

	// Pedidos de despacho
	ordersGroup := api.Group("/orders", requireAuth)
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Put("/:id/sale", orderHandler.LinkSale)

	// Inventario
	inv := api.Group("/inventory", requireAuth)
	inventoryHandler := NewInventoryHandler(deps.AdjustmentUC, deps.KardexUC, deps.ReplenishmentUC)
	inv.Post("/adjustments", adminOnly, inventoryHandler.Adjust)
	inv.Get("/kardex/:productId", inventoryHandler.GetKardex)
	inv.Get("/low-stock", inventoryHandler.GetReplenishmentList)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireAuth, dashboardHandler.GetSummary)
}
