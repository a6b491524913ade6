package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// OrderUseCase pedidos de despacho a domicilio.
type OrderUseCase struct {
	txRunner     repository.TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner repository.TxRunner, orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, customerRepo: customerRepo}
}

// Create registra un pedido en estado NEW. Si trae sale_id, la venta debe estar contabilizada.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, domain.Invalid("customer_id", "es requerido")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, domain.Invalid("address", "es requerido")
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("cliente", in.CustomerID)
	}

	now := time.Now()
	o := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		Address:    address,
		TimeWindow: strings.TrimSpace(in.TimeWindow),
		Notes:      strings.TrimSpace(in.Notes),
		Status:     entity.OrderNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		if in.SaleID != nil && *in.SaleID != "" {
			if err := checkLinkableSale(ctx, uow, *in.SaleID); err != nil {
				return err
			}
			saleID := *in.SaleID
			o.SaleID = &saleID
		}
		return uow.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// UpdateStatus avanza el pedido según NEW → PREPARATION → OUT_FOR_DELIVERY → DELIVERED,
// o lo anula desde cualquier estado no terminal. Al entregar, la venta asociada CONFIRMED pasa a DELIVERED.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	next := entity.OrderStatus(in.Status)
	if !next.Valid() {
		return nil, domain.Invalid("status", "estado de pedido desconocido")
	}
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		o, err := uow.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("pedido", id)
		}
		if !o.Status.CanTransitionTo(next) {
			return domain.Conflict("el pedido %s no puede pasar de %s a %s", o.ID, o.Status, next)
		}
		if next == entity.OrderDelivered && o.SaleID != nil {
			s, err := uow.Sales.GetByIDForUpdate(ctx, *o.SaleID)
			if err != nil {
				return err
			}
			if s != nil && s.Status == entity.SaleConfirmed {
				s.Status = entity.SaleDelivered
				s.UpdatedAt = time.Now()
				if err := uow.Sales.Update(ctx, s); err != nil {
					return err
				}
			}
		}
		o.Status = next
		o.UpdatedAt = time.Now()
		if err := uow.Orders.Update(ctx, o); err != nil {
			return err
		}
		out = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LinkSale asocia una venta contabilizada a un pedido no terminal.
func (uc *OrderUseCase) LinkSale(ctx context.Context, id string, in dto.LinkOrderSaleRequest) (*dto.OrderResponse, error) {
	if strings.TrimSpace(in.SaleID) == "" {
		return nil, domain.Invalid("sale_id", "es requerido")
	}
	var out *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		o, err := uow.Orders.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("pedido", id)
		}
		if o.Status.Terminal() {
			return domain.Conflict("el pedido %s está %s", o.ID, o.Status)
		}
		if err := checkLinkableSale(ctx, uow, in.SaleID); err != nil {
			return err
		}
		saleID := in.SaleID
		o.SaleID = &saleID
		o.UpdatedAt = time.Now()
		if err := uow.Orders.Update(ctx, o); err != nil {
			return err
		}
		out = toOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un pedido.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("pedido", id)
	}
	return toOrderResponse(o), nil
}

// List lista pedidos, opcionalmente por estado.
func (uc *OrderUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.OrderStatus(status).Valid() {
		return nil, domain.Invalid("status", "estado de pedido desconocido")
	}
	rows, err := uc.orderRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(rows))
	for _, o := range rows {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

func checkLinkableSale(ctx context.Context, uow repository.UnitOfWork, saleID string) error {
	s, err := uow.Sales.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NotFound("venta", saleID)
	}
	if !s.Status.Posted() {
		return domain.Conflict("la venta %s está %s; solo se asocian ventas confirmadas", s.ID, s.Status)
	}
	return nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Address:    o.Address,
		TimeWindow: o.TimeWindow,
		Notes:      o.Notes,
		Status:     string(o.Status),
		SaleID:     o.SaleID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
