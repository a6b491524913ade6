package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	domaininv "github.com/jhoicas/petmaison-api/internal/domain/inventory"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// MovementRequest datos de un movimiento a registrar en el kardex.
// Quantity es positiva para IN/OUT y con signo para ADJUSTMENT.
type MovementRequest struct {
	Type     entity.MovementType
	RefType  entity.RefType
	RefID    string
	Quantity int
	UnitCost *decimal.Decimal
	Notes    string
	UserID   string
}

// Ledger único punto que modifica el stock de un producto: cada cambio deja un movimiento.
type Ledger struct {
	now func() time.Time
}

// NewLedger construye el ledger con el reloj del sistema.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// Apply registra el movimiento y actualiza el stock del producto dentro de la transacción de uow.
// product debe venir bloqueado (GetByIDForUpdate); su Stock queda actualizado al volver.
func (l *Ledger) Apply(ctx context.Context, uow repository.UnitOfWork, product *entity.Product, req MovementRequest) (*entity.StockMovement, error) {
	switch req.Type {
	case entity.MovementIn, entity.MovementOut:
		if req.Quantity <= 0 {
			return nil, domain.Invalid("qty", "debe ser mayor que cero")
		}
	case entity.MovementAdjustment:
		if req.Quantity == 0 {
			return nil, domain.Invalid("qty", "no puede ser cero")
		}
	default:
		return nil, domain.Invalid("type", fmt.Sprintf("tipo de movimiento desconocido %q", req.Type))
	}
	if !req.RefType.Valid() {
		return nil, domain.Invalid("ref_type", fmt.Sprintf("referencia desconocida %q", req.RefType))
	}

	if req.Quantity > entity.MaxQuantity || req.Quantity < -entity.MaxQuantity {
		return nil, domain.Invalid("qty", fmt.Sprintf("fuera de rango (±%d)", entity.MaxQuantity))
	}

	delta := entity.MovementDelta(req.Type, req.Quantity)
	newStock := product.Stock + delta
	if newStock > entity.MaxQuantity {
		return nil, domain.Invalid("qty", fmt.Sprintf("el stock de %s superaría %d", product.SKU, entity.MaxQuantity))
	}
	if newStock < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Available: product.Stock,
			Requested: -delta,
		}
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      req.Type,
		RefType:   req.RefType,
		RefID:     req.RefID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		CreatedBy: req.UserID,
		CreatedAt: l.now(),
	}
	if req.UnitCost != nil {
		mov.UnitCostNet = decimal.NewNullDecimal(domaininv.Money(*req.UnitCost))
	}
	if err := uow.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := uow.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return mov, nil
}
