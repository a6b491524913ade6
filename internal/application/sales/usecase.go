package sales

import (
	"context"
	"fmt"
	"sort"
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

// SaleUseCase ventas: borrador, líneas, confirmación (salida de stock) y estados posteriores.
type SaleUseCase struct {
	txRunner     repository.TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ledger       *inventory.Ledger
	vatRate      decimal.Decimal
	loc          *time.Location
	log          *logger.Logger
}

// NewSaleUseCase construye el caso de uso. vatRate es la tasa por defecto de las líneas.
func NewSaleUseCase(
	txRunner repository.TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ledger *inventory.Ledger,
	vatRate decimal.Decimal,
	loc *time.Location,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		vatRate:      vatRate,
		loc:          loc,
		log:          log,
	}
}

// Create crea una venta en DRAFT. El cliente es opcional; el usuario (vendedor) es obligatorio.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" {
		return nil, domain.Invalid("user_id", "es requerido")
	}
	method := entity.PaymentCash
	if in.PaymentMethod != "" {
		method = entity.PaymentMethod(in.PaymentMethod)
	}
	if !method.Valid() {
		return nil, domain.Invalid("payment_method", "debe ser EFECTIVO, TRANSFERENCIA o TARJETA")
	}

	var customerID *string
	if in.CustomerID != nil && strings.TrimSpace(*in.CustomerID) != "" {
		c, err := uc.customerRepo.GetByID(ctx, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.NotFound("cliente", *in.CustomerID)
		}
		id := c.ID
		customerID = &id
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	s := &entity.Sale{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		UserID:        userID,
		Date:          date,
		Status:        entity.SaleDraft,
		PaymentMethod: method,
		Notes:         strings.TrimSpace(in.Notes),
		SubtotalNet:   decimal.Zero,
		Discount:      decimal.Zero,
		VAT:           decimal.Zero,
		Total:         decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.saleRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSaleResponse(s, nil, nil), nil
}

// AddItem agrega una línea a una venta en DRAFT y recalcula los totales desde todas las líneas persistidas.
// Sin precio explícito se usa el precio neto del producto.
func (uc *SaleUseCase) AddItem(ctx context.Context, saleID string, in dto.AddSaleItemRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id", "es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("qty", "debe ser mayor que cero")
	}
	if in.Quantity > entity.MaxQuantity {
		return nil, domain.Invalid("qty", fmt.Sprintf("no puede superar %d", entity.MaxQuantity))
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, domain.Invalid("discount", "no puede ser negativo")
	}
	if in.UnitPriceNet != nil && in.UnitPriceNet.LessThan(decimal.Zero) {
		return nil, domain.Invalid("unit_price_net", "no puede ser negativo")
	}
	rate, err := inventory.ResolveVATRate(in.VATRate, uc.vatRate)
	if err != nil {
		return nil, err
	}

	var out *dto.SaleResponse
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		s, err := uow.Sales.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("venta", saleID)
		}
		if s.Status != entity.SaleDraft {
			return domain.Conflict("la venta %s está %s; solo se agregan líneas en DRAFT", s.ID, s.Status)
		}
		product, err := uow.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", in.ProductID)
		}
		if !product.Active {
			return domain.Invalid("product_id", "el producto está inactivo")
		}

		price := product.NetPrice(rate)
		if in.UnitPriceNet != nil {
			price = domaininv.Money(*in.UnitPriceNet)
		}
		item := &entity.SaleItem{
			ID:           uuid.New().String(),
			SaleID:       s.ID,
			ProductID:    product.ID,
			Quantity:     in.Quantity,
			UnitPriceNet: price,
			Discount:     domaininv.Money(in.Discount),
			VATRate:      rate,
			CreatedAt:    time.Now(),
		}
		gross := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPriceNet)
		if item.Discount.GreaterThan(gross) {
			return domain.Invalid("discount", "no puede superar qty × unit_price_net")
		}
		item.LineTotal = domaininv.LineTotal(lineOf(item))
		if err := uow.Sales.CreateItem(ctx, item); err != nil {
			return err
		}

		items, err := uow.Sales.ListItems(ctx, s.ID)
		if err != nil {
			return err
		}
		applyTotals(s, items)
		s.UpdatedAt = time.Now()
		if err := uow.Sales.Update(ctx, s); err != nil {
			return err
		}
		out = toSaleResponse(s, items, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Confirm descuenta el stock de la venta: valida todas las líneas bajo bloqueo y luego registra
// un movimiento OUT por línea. Si alguna línea no alcanza, nada se aplica y la venta sigue en DRAFT.
func (uc *SaleUseCase) Confirm(ctx context.Context, userID, saleID string) (*dto.SaleResponse, error) {
	var out *dto.SaleResponse
	var already error
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		s, err := uow.Sales.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("venta", saleID)
		}
		items, err := uow.Sales.ListItems(ctx, s.ID)
		if err != nil {
			return err
		}

		switch s.Status {
		case entity.SaleConfirmed, entity.SaleDelivered:
			out = toSaleResponse(s, items, nil)
			out.AlreadyConfirmed = true
			already = &domain.AlreadyConfirmedError{Document: "venta", ID: s.ID, Status: string(s.Status)}
			return nil
		case entity.SaleCancelled:
			return domain.Conflict("la venta %s está anulada", s.ID)
		case entity.SaleDraft:
		default:
			return domain.Conflict("estado de venta desconocido %q", s.Status)
		}
		if len(items) == 0 {
			return domain.Invalid("items", "la venta no tiene líneas")
		}

		requested := make(map[string]int, len(items))
		ids := make([]string, 0, len(items))
		for _, it := range items {
			if _, ok := requested[it.ProductID]; !ok {
				ids = append(ids, it.ProductID)
			}
			requested[it.ProductID] += it.Quantity
		}
		products, err := inventory.LockProducts(ctx, uow, ids)
		if err != nil {
			return err
		}
		sort.Strings(ids)
		for _, id := range ids {
			p := products[id]
			if p.Stock < requested[id] {
				return &domain.InsufficientStockError{
					ProductID: p.ID,
					SKU:       p.SKU,
					Name:      p.Name,
					Available: p.Stock,
					Requested: requested[id],
				}
			}
		}

		for _, it := range items {
			p := products[it.ProductID]
			cost := p.CostNet
			if _, err := uc.ledger.Apply(ctx, uow, p, inventory.MovementRequest{
				Type:     entity.MovementOut,
				RefType:  entity.RefSale,
				RefID:    s.ID,
				Quantity: it.Quantity,
				UnitCost: &cost,
				UserID:   userID,
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		applyTotals(s, items)
		s.Status = entity.SaleConfirmed
		s.ConfirmedAt = &now
		s.UpdatedAt = now
		if err := uow.Sales.Update(ctx, s); err != nil {
			return err
		}
		out = toSaleResponse(s, items, products)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("confirmación de venta rechazada")
		return nil, err
	}
	if already != nil {
		return out, already
	}
	uc.log.Info().Str("sale_id", saleID).Int("lines", len(out.Items)).Str("total", out.Total.String()).Msg("venta confirmada")
	return out, nil
}

// Deliver marca como entregada una venta confirmada. No afecta stock.
func (uc *SaleUseCase) Deliver(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	return uc.transition(ctx, saleID, entity.SaleDelivered, entity.SaleConfirmed)
}

// Cancel anula una venta en DRAFT o CONFIRMED. No revierte stock.
func (uc *SaleUseCase) Cancel(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	return uc.transition(ctx, saleID, entity.SaleCancelled, entity.SaleDraft, entity.SaleConfirmed)
}

func (uc *SaleUseCase) transition(ctx context.Context, saleID string, to entity.SaleStatus, from ...entity.SaleStatus) (*dto.SaleResponse, error) {
	var out *dto.SaleResponse
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		s, err := uow.Sales.GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("venta", saleID)
		}
		allowed := false
		for _, st := range from {
			if s.Status == st {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.Conflict("la venta %s no puede pasar de %s a %s", s.ID, s.Status, to)
		}
		s.Status = to
		s.UpdatedAt = time.Now()
		if err := uow.Sales.Update(ctx, s); err != nil {
			return err
		}
		items, err := uow.Sales.ListItems(ctx, s.ID)
		if err != nil {
			return err
		}
		out = toSaleResponse(s, items, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, items, products, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(s, items, products), nil
}

func (uc *SaleUseCase) load(ctx context.Context, id string) (*entity.Sale, []*entity.SaleItem, map[string]*entity.Product, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if s == nil {
		return nil, nil, nil, domain.NotFound("venta", id)
	}
	items, err := uc.saleRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	products := make(map[string]*entity.Product, len(items))
	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, nil, err
		}
		if p != nil {
			products[it.ProductID] = p
		}
	}
	return s, items, products, nil
}

// List lista ventas (más recientes primero) con filtros de estado y fecha.
func (uc *SaleUseCase) List(ctx context.Context, in dto.DocumentListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	switch entity.SaleStatus(in.Status) {
	case "", entity.SaleDraft, entity.SaleConfirmed, entity.SaleDelivered, entity.SaleCancelled:
	default:
		return nil, domain.Invalid("status", "estado de venta desconocido")
	}
	from, to, err := dto.ParseDateRange(in.From, in.To, uc.loc)
	if err != nil {
		return nil, err
	}
	rows, err := uc.saleRepo.List(ctx, repository.DocumentFilter{
		Status: in.Status, From: from, To: to, Limit: in.Limit, Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(rows))
	for _, s := range rows {
		items = append(items, *toSaleResponse(s, nil, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Count: len(items)},
	}, nil
}

func lineOf(it *entity.SaleItem) domaininv.Line {
	return domaininv.Line{
		Quantity:   it.Quantity,
		UnitAmount: it.UnitPriceNet,
		Discount:   it.Discount,
		VATRate:    it.VATRate,
	}
}

func applyTotals(s *entity.Sale, items []*entity.SaleItem) {
	lines := make([]domaininv.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, lineOf(it))
	}
	t := domaininv.CalculateTotals(lines)
	s.SubtotalNet = t.SubtotalNet
	s.Discount = t.Discount
	s.VAT = t.VAT
	s.Total = t.Total
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem, products map[string]*entity.Product) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
		Date:          s.Date,
		Status:        string(s.Status),
		PaymentMethod: string(s.PaymentMethod),
		Notes:         s.Notes,
		SubtotalNet:   s.SubtotalNet,
		Discount:      s.Discount,
		VAT:           s.VAT,
		Total:         s.Total,
		ConfirmedAt:   s.ConfirmedAt,
	}
	for _, it := range items {
		line := dto.SaleItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPriceNet: it.UnitPriceNet,
			Discount:     it.Discount,
			VATRate:      it.VATRate,
			LineTotal:    it.LineTotal,
		}
		if p, ok := products[it.ProductID]; ok {
			line.SKU = p.SKU
			line.ProductName = p.Name
		}
		out.Items = append(out.Items, line)
	}
	return out
}
