package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/application/inventory"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	domaininv "github.com/jhoicas/petmaison-api/internal/domain/inventory"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El stock solo cambia vía movimientos del kardex.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner repository.TxRunner
	ledger   *inventory.Ledger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner repository.TxRunner, ledger *inventory.Ledger) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, ledger: ledger}
}

func validatePrices(cost, price decimal.Decimal) error {
	if cost.LessThan(decimal.Zero) {
		return domain.Invalid("cost_net", "no puede ser negativo")
	}
	if price.LessThan(decimal.Zero) {
		return domain.Invalid("price_gross", "no puede ser negativo")
	}
	return nil
}

// Create crea un producto. Si InitialStock > 0 registra un ajuste en la misma transacción,
// así el stock siempre coincide con la suma de movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" {
		return nil, domain.Invalid("sku", "es requerido")
	}
	if in.Name == "" {
		return nil, domain.Invalid("name", "es requerido")
	}
	if in.InitialStock < 0 || in.InitialStock > entity.MaxQuantity {
		return nil, domain.Invalid("initial_stock", fmt.Sprintf("debe estar entre 0 y %d", entity.MaxQuantity))
	}
	if in.MinStock < 0 || in.MinStock > entity.MaxQuantity {
		return nil, domain.Invalid("min_stock", fmt.Sprintf("debe estar entre 0 y %d", entity.MaxQuantity))
	}
	if err := validatePrices(in.CostNet, in.PriceGross); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Brand:       strings.TrimSpace(in.Brand),
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		CostNet:     domaininv.Money(in.CostNet),
		PriceGross:  domaininv.Money(in.PriceGross),
		VATIncluded: true,
		Stock:       0,
		MinStock:    in.MinStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.VATIncluded != nil {
		product.VATIncluded = *in.VATIncluded
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		existing, err := uow.Products.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := uow.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		cost := product.CostNet
		_, err = uc.ledger.Apply(ctx, uow, product, inventory.MovementRequest{
			Type:     entity.MovementAdjustment,
			RefType:  entity.RefAdjustment,
			RefID:    product.ID,
			Quantity: in.InitialStock,
			UnitCost: &cost,
			Notes:    "stock inicial",
			UserID:   userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", id)
	}
	return toProductResponse(product), nil
}

// Update actualiza campos de catálogo. No permite modificar Stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", id)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.Invalid("sku", "no puede ser vacío")
		}
		product.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "no puede ser vacío")
		}
		product.Name = name
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CostNet != nil {
		product.CostNet = domaininv.Money(*in.CostNet)
	}
	if in.PriceGross != nil {
		product.PriceGross = domaininv.Money(*in.PriceGross)
	}
	if in.VATIncluded != nil {
		product.VATIncluded = *in.VATIncluded
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 || *in.MinStock > entity.MaxQuantity {
			return nil, domain.Invalid("min_stock", fmt.Sprintf("debe estar entre 0 y %d", entity.MaxQuantity))
		}
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := validatePrices(product.CostNet, product.PriceGross); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo. Los productos no se borran porque el kardex los referencia.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	inactive := false
	_, err := uc.Update(ctx, id, dto.UpdateProductRequest{Active: &inactive})
	return err
}

// List lista productos con filtros de búsqueda.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	products, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:   in.Search,
		Category: in.Category,
		Brand:    in.Brand,
		Active:   in.Active,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Count: len(items)},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
		CostNet:     p.CostNet,
		PriceGross:  p.PriceGross,
		VATIncluded: p.VATIncluded,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Active:      p.Active,
		LowStock:    p.BelowMinStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
