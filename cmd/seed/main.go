// seed puebla la base con datos de demostración pasando por los mismos casos de uso que la API,
// de modo que totales, stock y kardex quedan consistentes.
//
// Uso: go run ./cmd/seed
// SEED_PASSWORD define la contraseña de los usuarios (por defecto PetMaison!2025).
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/app"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/pkg/config"
	"github.com/jhoicas/petmaison-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	repos, closeRepos, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer closeRepos()

	svc := app.NewServices(repos, app.SettingsFrom(cfg), log)
	if err := run(ctx, svc, log); err != nil {
		log.Error().Err(err).Msg("seed interrumpido")
		closeRepos()
		os.Exit(1)
	}
	log.Info().Msg("seed completado")
}

func run(ctx context.Context, svc *app.Services, log *logger.Logger) error {
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "PetMaison!2025"
	}

	adminID, err := seedUser(ctx, svc, "admin@petmaison.cl", "Admin", entity.RoleAdmin, password)
	if err != nil {
		return err
	}
	if _, err := seedUser(ctx, svc, "vendedor@petmaison.cl", "Vendedor", entity.RoleVendedor, password); err != nil {
		return err
	}

	existing, err := svc.Products.List(ctx, dto.ProductFilterRequest{PageRequest: dto.PageRequest{Limit: 1}})
	if err != nil {
		return err
	}
	if len(existing.Items) > 0 {
		log.Info().Msg("el catálogo ya tiene productos; se omiten datos de demostración")
		return nil
	}

	customers := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		c, err := svc.Customers.Create(ctx, dto.CustomerRequest{Name: fmt.Sprintf("Cliente %d", i)})
		if err != nil {
			return fmt.Errorf("cliente %d: %w", i, err)
		}
		customers = append(customers, c.ID)
	}

	suppliers := make([]string, 0, 3)
	for i := 1; i <= 3; i++ {
		s, err := svc.Suppliers.Create(ctx, dto.SupplierRequest{Name: fmt.Sprintf("Proveedor %d", i)})
		if err != nil {
			return fmt.Errorf("proveedor %d: %w", i, err)
		}
		suppliers = append(suppliers, s.ID)
	}

	vatIncluded := true
	products := make([]*dto.ProductResponse, 0, 20)
	for i := 0; i < 20; i++ {
		p, err := svc.Products.Create(ctx, adminID, dto.CreateProductRequest{
			SKU:          fmt.Sprintf("SKU%03d", i+1),
			Name:         fmt.Sprintf("Producto %d", i+1),
			Brand:        "MarcaX",
			Category:     "General",
			CostNet:      decimal.NewFromInt(int64(1000 + i)),
			PriceGross:   decimal.NewFromInt(int64(1190 + i)),
			VATIncluded:  &vatIncluded,
			InitialStock: 10,
			MinStock:     2,
		})
		if err != nil {
			return fmt.Errorf("producto %d: %w", i+1, err)
		}
		products = append(products, p)
	}
	log.Info().Int("customers", len(customers)).Int("suppliers", len(suppliers)).Int("products", len(products)).Msg("catálogo creado")

	for i := 0; i < 3; i++ {
		purchase, err := svc.Purchases.Create(ctx, adminID, dto.CreatePurchaseRequest{SupplierID: suppliers[i%len(suppliers)]})
		if err != nil {
			return err
		}
		for j := 0; j < 3; j++ {
			prod := products[(i*3+j)%len(products)]
			if _, err := svc.Purchases.AddItem(ctx, purchase.ID, dto.AddPurchaseItemRequest{
				ProductID:   prod.ID,
				Quantity:    5,
				UnitCostNet: prod.CostNet,
			}); err != nil {
				return err
			}
		}
		if _, err := svc.Purchases.Confirm(ctx, adminID, purchase.ID); err != nil {
			return fmt.Errorf("confirmar compra %d: %w", i+1, err)
		}
	}

	rnd := rand.New(rand.NewSource(42))
	markup := decimal.RequireFromString("1.2")
	saleIDs := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		customerID := customers[i%len(customers)]
		date := time.Now().AddDate(0, 0, -rnd.Intn(31))
		sale, err := svc.Sales.Create(ctx, adminID, dto.CreateSaleRequest{
			CustomerID:    &customerID,
			PaymentMethod: string(entity.PaymentCash),
			Date:          &date,
		})
		if err != nil {
			return err
		}
		for j := 0; j < 2; j++ {
			prod := products[(i*2+j)%len(products)]
			price := prod.CostNet.Mul(markup)
			if _, err := svc.Sales.AddItem(ctx, sale.ID, dto.AddSaleItemRequest{
				ProductID:    prod.ID,
				Quantity:     1,
				UnitPriceNet: &price,
			}); err != nil {
				return err
			}
		}
		if _, err := svc.Sales.Confirm(ctx, adminID, sale.ID); err != nil {
			return fmt.Errorf("confirmar venta %d: %w", i+1, err)
		}
		saleIDs = append(saleIDs, sale.ID)
	}

	for i := 0; i < 5; i++ {
		saleID := saleIDs[i]
		if _, err := svc.Orders.Create(ctx, dto.CreateOrderRequest{
			CustomerID: customers[i%len(customers)],
			SaleID:     &saleID,
			Address:    fmt.Sprintf("Calle %d", i+1),
		}); err != nil {
			return err
		}
	}
	log.Info().Int("purchases", 3).Int("sales", len(saleIDs)).Int("orders", 5).Msg("documentos confirmados")
	return nil
}

// seedUser crea el usuario o devuelve el existente si el email ya está registrado.
func seedUser(ctx context.Context, svc *app.Services, email, name, role, password string) (string, error) {
	u, err := svc.Auth.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: password, Name: name, Role: role})
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return "", fmt.Errorf("usuario %s: %w", email, err)
	}
	login, err := svc.Auth.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("usuario %s existe con otra contraseña: %w", email, err)
	}
	return login.User.ID, nil
}
