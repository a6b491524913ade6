package purchasing

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
	"github.com/jhoicas/petmaison-api/pkg/logger"
)

// PurchaseUseCase compras a proveedor: borrador, líneas y confirmación (entrada de stock).
type PurchaseUseCase struct {
	txRunner     repository.TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	ledger       *inventory.Ledger
	vatRate      decimal.Decimal
	loc          *time.Location
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso. vatRate es la tasa por defecto de las líneas.
func NewPurchaseUseCase(
	txRunner repository.TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	ledger *inventory.Ledger,
	vatRate decimal.Decimal,
	loc *time.Location,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
		vatRate:      vatRate,
		loc:          loc,
		log:          log,
	}
}

// Create crea una compra en DRAFT con totales en cero.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if strings.TrimSpace(in.SupplierID) == "" {
		return nil, domain.Invalid("supplier_id", "es requerido")
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFound("proveedor", in.SupplierID)
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	p := &entity.Purchase{
		ID:          uuid.New().String(),
		SupplierID:  supplier.ID,
		Date:        date,
		Notes:       strings.TrimSpace(in.Notes),
		Status:      entity.PurchaseDraft,
		SubtotalNet: decimal.Zero,
		VAT:         decimal.Zero,
		Total:       decimal.Zero,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.purchaseRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p, nil, nil), nil
}

// AddItem agrega una línea a una compra en DRAFT y recalcula los totales desde todas las líneas persistidas,
// en la misma transacción.
func (uc *PurchaseUseCase) AddItem(ctx context.Context, purchaseID string, in dto.AddPurchaseItemRequest) (*dto.PurchaseResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id", "es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("qty", "debe ser mayor que cero")
	}
	if in.Quantity > entity.MaxQuantity {
		return nil, domain.Invalid("qty", fmt.Sprintf("no puede superar %d", entity.MaxQuantity))
	}
	if in.UnitCostNet.LessThan(decimal.Zero) {
		return nil, domain.Invalid("unit_cost_net", "no puede ser negativo")
	}
	rate, err := inventory.ResolveVATRate(in.VATRate, uc.vatRate)
	if err != nil {
		return nil, err
	}

	var out *dto.PurchaseResponse
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		p, err := uow.Purchases.GetByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("compra", purchaseID)
		}
		if p.Status != entity.PurchaseDraft {
			return domain.Conflict("la compra %s está %s; solo se agregan líneas en DRAFT", p.ID, p.Status)
		}
		product, err := uow.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", in.ProductID)
		}

		item := &entity.PurchaseItem{
			ID:          uuid.New().String(),
			PurchaseID:  p.ID,
			ProductID:   product.ID,
			Quantity:    in.Quantity,
			UnitCostNet: domaininv.Money(in.UnitCostNet),
			VATRate:     rate,
			CreatedAt:   time.Now(),
		}
		item.LineTotal = domaininv.LineTotal(lineOf(item))
		if err := uow.Purchases.CreateItem(ctx, item); err != nil {
			return err
		}

		items, err := uow.Purchases.ListItems(ctx, p.ID)
		if err != nil {
			return err
		}
		applyTotals(p, items)
		p.UpdatedAt = time.Now()
		if err := uow.Purchases.Update(ctx, p); err != nil {
			return err
		}
		out = toPurchaseResponse(p, items, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Confirm aplica la compra al stock: un movimiento IN por línea, todo en una transacción.
// Si la compra ya estaba confirmada devuelve el documento junto a un AlreadyConfirmedError sin tocar el kardex.
func (uc *PurchaseUseCase) Confirm(ctx context.Context, userID, purchaseID string) (*dto.PurchaseResponse, error) {
	var out *dto.PurchaseResponse
	var already error
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		p, err := uow.Purchases.GetByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("compra", purchaseID)
		}
		items, err := uow.Purchases.ListItems(ctx, p.ID)
		if err != nil {
			return err
		}

		switch p.Status {
		case entity.PurchaseConfirmed:
			out = toPurchaseResponse(p, items, nil)
			out.AlreadyConfirmed = true
			already = &domain.AlreadyConfirmedError{Document: "compra", ID: p.ID, Status: string(p.Status)}
			return nil
		case entity.PurchaseDraft:
		default:
			return domain.Conflict("estado de compra desconocido %q", p.Status)
		}
		if len(items) == 0 {
			return domain.Invalid("items", "la compra no tiene líneas")
		}

		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ProductID)
		}
		products, err := inventory.LockProducts(ctx, uow, ids)
		if err != nil {
			return err
		}
		for _, it := range items {
			cost := it.UnitCostNet
			if _, err := uc.ledger.Apply(ctx, uow, products[it.ProductID], inventory.MovementRequest{
				Type:     entity.MovementIn,
				RefType:  entity.RefPurchase,
				RefID:    p.ID,
				Quantity: it.Quantity,
				UnitCost: &cost,
				UserID:   userID,
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		applyTotals(p, items)
		p.Status = entity.PurchaseConfirmed
		p.ConfirmedAt = &now
		p.UpdatedAt = now
		if err := uow.Purchases.Update(ctx, p); err != nil {
			return err
		}
		out = toPurchaseResponse(p, items, products)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("purchase_id", purchaseID).Msg("confirmación de compra rechazada")
		return nil, err
	}
	if already != nil {
		return out, already
	}
	uc.log.Info().Str("purchase_id", purchaseID).Int("lines", len(out.Items)).Str("total", out.Total.String()).Msg("compra confirmada")
	return out, nil
}

// GetByID devuelve la compra con sus líneas.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("compra", id)
	}
	items, err := uc.purchaseRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(items))
	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		prod, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if prod != nil {
			products[it.ProductID] = prod
		}
	}
	return toPurchaseResponse(p, items, products), nil
}

// List lista compras (más recientes primero) con filtros de estado y fecha.
func (uc *PurchaseUseCase) List(ctx context.Context, in dto.DocumentListRequest) (*dto.PurchaseListResponse, error) {
	in.DefaultPage()
	if in.Status != "" && in.Status != string(entity.PurchaseDraft) && in.Status != string(entity.PurchaseConfirmed) {
		return nil, domain.Invalid("status", "debe ser DRAFT o CONFIRMED")
	}
	from, to, err := dto.ParseDateRange(in.From, in.To, uc.loc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.purchaseRepo.List(ctx, repository.DocumentFilter{
		Status: in.Status, From: from, To: to, Limit: in.Limit, Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, *toPurchaseResponse(p, nil, nil))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Count: len(items)},
	}, nil
}

func lineOf(it *entity.PurchaseItem) domaininv.Line {
	return domaininv.Line{
		Quantity:   it.Quantity,
		UnitAmount: it.UnitCostNet,
		Discount:   decimal.Zero,
		VATRate:    it.VATRate,
	}
}

func applyTotals(p *entity.Purchase, items []*entity.PurchaseItem) {
	lines := make([]domaininv.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, lineOf(it))
	}
	t := domaininv.CalculateTotals(lines)
	p.SubtotalNet = t.SubtotalNet
	p.VAT = t.VAT
	p.Total = t.Total
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem, products map[string]*entity.Product) *dto.PurchaseResponse {
	out := &dto.PurchaseResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		Date:        p.Date,
		Notes:       p.Notes,
		Status:      string(p.Status),
		SubtotalNet: p.SubtotalNet,
		VAT:         p.VAT,
		Total:       p.Total,
		ConfirmedAt: p.ConfirmedAt,
	}
	for _, it := range items {
		line := dto.PurchaseItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			UnitCostNet: it.UnitCostNet,
			VATRate:     it.VATRate,
			LineTotal:   it.LineTotal,
		}
		if prod, ok := products[it.ProductID]; ok {
			line.SKU = prod.SKU
			line.ProductName = prod.Name
		}
		out.Items = append(out.Items, line)
	}
	return out
}
