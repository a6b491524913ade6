package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// StoreInfo encabezado de la tienda impreso en el ticket.
type StoreInfo struct {
	Name    string
	RUT     string
	Address string
}

// TicketLine línea del ticket ya resuelta con datos del producto.
type TicketLine struct {
	Quantity     int
	SKU          string
	Name         string
	UnitPriceNet decimal.Decimal
	Discount     decimal.Decimal
	LineTotal    decimal.Decimal
}

// TicketData todo lo que necesita el generador para renderizar el comprobante.
type TicketData struct {
	Store    StoreInfo
	Sale     *entity.Sale
	Customer *entity.Customer // nil en ventas sin cliente
	Lines    []TicketLine
}

// TicketGenerator puerto de salida para generar el ticket (implementado con Maroto en infraestructura).
type TicketGenerator interface {
	GenerateTicket(ctx context.Context, data TicketData) ([]byte, error)
}

// TicketUseCase genera el comprobante PDF de una venta contabilizada.
type TicketUseCase struct {
	sales        *SaleUseCase
	customerRepo repository.CustomerRepository
	generator    TicketGenerator
	store        StoreInfo
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(sales *SaleUseCase, customerRepo repository.CustomerRepository, generator TicketGenerator, store StoreInfo) *TicketUseCase {
	return &TicketUseCase{sales: sales, customerRepo: customerRepo, generator: generator, store: store}
}

// Generate devuelve el PDF del ticket. Solo ventas CONFIRMED o DELIVERED tienen ticket.
func (uc *TicketUseCase) Generate(ctx context.Context, saleID string) ([]byte, error) {
	s, items, products, err := uc.sales.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if !s.Status.Posted() {
		return nil, domain.Conflict("la venta %s está %s; el ticket requiere una venta confirmada", s.ID, s.Status)
	}

	data := TicketData{Store: uc.store, Sale: s, Lines: make([]TicketLine, 0, len(items))}
	if s.CustomerID != nil {
		c, err := uc.customerRepo.GetByID(ctx, *s.CustomerID)
		if err != nil {
			return nil, err
		}
		data.Customer = c
	}
	for _, it := range items {
		line := TicketLine{
			Quantity:     it.Quantity,
			UnitPriceNet: it.UnitPriceNet,
			Discount:     it.Discount,
			LineTotal:    it.LineTotal,
		}
		if p, ok := products[it.ProductID]; ok {
			line.SKU = p.SKU
			line.Name = p.Name
		}
		data.Lines = append(data.Lines, line)
	}
	return uc.generator.GenerateTicket(ctx, data)
}
