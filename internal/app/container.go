// Package app arma los casos de uso sobre un conjunto de repositorios (PostgreSQL o memoria).
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/petmaison-api/internal/application/analytics"
	"github.com/jhoicas/petmaison-api/internal/application/auth"
	"github.com/jhoicas/petmaison-api/internal/application/inventory"
	"github.com/jhoicas/petmaison-api/internal/application/orders"
	"github.com/jhoicas/petmaison-api/internal/application/purchasing"
	"github.com/jhoicas/petmaison-api/internal/application/sales"
	"github.com/jhoicas/petmaison-api/internal/application/usecase"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
	"github.com/jhoicas/petmaison-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/petmaison-api/internal/infrastructure/pdf"
	"github.com/jhoicas/petmaison-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/petmaison-api/internal/interfaces/http"
	"github.com/jhoicas/petmaison-api/pkg/config"
	"github.com/jhoicas/petmaison-api/pkg/logger"
)

// Repositories repositorios fuera de transacción más el runner transaccional.
type Repositories struct {
	Tx        repository.TxRunner
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
	Suppliers repository.SupplierRepository
	Users     repository.UserRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Orders    repository.OrderRepository
	Movements repository.StockMovementRepository
	Analytics repository.AnalyticsRepository
}

// PostgresRepositories repositorios sobre el pool.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Tx:        postgres.NewTxRunner(pool),
		Products:  postgres.NewProductRepository(pool),
		Customers: postgres.NewCustomerRepository(pool),
		Suppliers: postgres.NewSupplierRepository(pool),
		Users:     postgres.NewUserRepository(pool),
		Purchases: postgres.NewPurchaseRepository(pool),
		Sales:     postgres.NewSaleRepository(pool),
		Orders:    postgres.NewOrderRepository(pool),
		Movements: postgres.NewStockMovementRepository(pool),
		Analytics: postgres.NewAnalyticsRepository(pool),
	}
}

// MemoryRepositories repositorios sobre un store en memoria.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Tx:        memory.NewTxRunner(store),
		Products:  store.Products(),
		Customers: store.Customers(),
		Suppliers: store.Suppliers(),
		Users:     store.Users(),
		Purchases: store.Purchases(),
		Sales:     store.Sales(),
		Orders:    store.Orders(),
		Movements: store.Movements(),
		Analytics: store.Analytics(),
	}
}

// Settings parámetros de negocio que no dependen del almacenamiento.
type Settings struct {
	VATRate  decimal.Decimal
	Location *time.Location
	JWT      auth.JWTConfig
	Store    sales.StoreInfo
}

// Services casos de uso listos para el router y el seed.
type Services struct {
	Auth          *auth.AuthUseCase
	Products      *usecase.ProductUseCase
	Customers     *usecase.CustomerUseCase
	Suppliers     *usecase.SupplierUseCase
	Purchases     *purchasing.PurchaseUseCase
	Sales         *sales.SaleUseCase
	Tickets       *sales.TicketUseCase
	Orders        *orders.OrderUseCase
	Adjustments   *inventory.AdjustmentUseCase
	Kardex        *inventory.KardexUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Dashboard     *appanalytics.DashboardUseCase
	Reports       *appanalytics.ReportUseCase

	jwtSecret string
}

// NewServices construye todos los casos de uso. Un solo Ledger para todo el proceso.
func NewServices(r Repositories, s Settings, log *logger.Logger) *Services {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	ledger := inventory.NewLedger()
	saleUC := sales.NewSaleUseCase(r.Tx, r.Sales, r.Products, r.Customers, ledger, s.VATRate, loc, log)

	return &Services{
		Auth:          auth.NewAuthUseCase(r.Users, s.JWT),
		Products:      usecase.NewProductUseCase(r.Products, r.Tx, ledger),
		Customers:     usecase.NewCustomerUseCase(r.Customers),
		Suppliers:     usecase.NewSupplierUseCase(r.Suppliers),
		Purchases:     purchasing.NewPurchaseUseCase(r.Tx, r.Purchases, r.Products, r.Suppliers, ledger, s.VATRate, loc, log),
		Sales:         saleUC,
		Tickets:       sales.NewTicketUseCase(saleUC, r.Customers, infrapdf.NewMarotoTicketGenerator(), s.Store),
		Orders:        orders.NewOrderUseCase(r.Tx, r.Orders, r.Customers),
		Adjustments:   inventory.NewAdjustmentUseCase(r.Tx, ledger),
		Kardex:        inventory.NewKardexUseCase(r.Products, r.Movements, loc),
		Replenishment: inventory.NewReplenishmentUseCase(r.Products, r.Analytics),
		Dashboard:     appanalytics.NewDashboardUseCase(r.Analytics, r.Products, loc),
		Reports:       appanalytics.NewReportUseCase(r.Analytics, loc),
		jwtSecret:     s.JWT.Secret,
	}
}

// RouterDeps adapta los servicios al router HTTP.
func (s *Services) RouterDeps() httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:          s.Auth,
		ProductUC:       s.Products,
		CustomerUC:      s.Customers,
		SupplierUC:      s.Suppliers,
		PurchaseUC:      s.Purchases,
		SaleUC:          s.Sales,
		TicketUC:        s.Tickets,
		OrderUC:         s.Orders,
		AdjustmentUC:    s.Adjustments,
		KardexUC:        s.Kardex,
		ReplenishmentUC: s.Replenishment,
		DashboardUC:     s.Dashboard,
		ReportUC:        s.Reports,
		JWTSecret:       s.jwtSecret,
	}
}

// SettingsFrom toma los parámetros de negocio de la configuración cargada.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		VATRate:  cfg.Store.VATRate,
		Location: cfg.App.Location(),
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Store: sales.StoreInfo{
			Name:    cfg.Store.Name,
			RUT:     cfg.Store.RUT,
			Address: cfg.Store.Address,
		},
	}
}

// Open prepara los repositorios según cfg.DB.Driver. El cierre devuelto libera el pool (no-op en memoria).
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (Repositories, func(), error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		return MemoryRepositories(memory.New(cfg.App.Location())), func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return Repositories{}, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return Repositories{}, nil, fmt.Errorf("migración: %w", err)
		}
		log.Info().Msg("esquema al día")
	}
	return PostgresRepositories(pool), pool.Close, nil
}
