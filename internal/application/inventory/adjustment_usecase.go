package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// AdjustmentUseCase ajustes manuales de stock (conteos físicos, mermas, correcciones).
type AdjustmentUseCase struct {
	txRunner repository.TxRunner
	ledger   *Ledger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner repository.TxRunner, ledger *Ledger) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, ledger: ledger}
}

// Adjust bloquea el producto, valida que el stock no quede negativo y registra un movimiento ADJUSTMENT.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id", "es requerido")
	}
	if in.Quantity == 0 {
		return nil, domain.Invalid("qty", "no puede ser cero")
	}
	if in.Quantity > entity.MaxQuantity || in.Quantity < -entity.MaxQuantity {
		return nil, domain.Invalid("qty", fmt.Sprintf("fuera de rango (±%d)", entity.MaxQuantity))
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.Invalid("reason", "es requerido")
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.Invalid("unit_cost_net", "no puede ser negativo")
	}

	var out dto.AdjustmentResponse
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		product, err := uow.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", in.ProductID)
		}
		mov, err := uc.ledger.Apply(ctx, uow, product, MovementRequest{
			Type:     entity.MovementAdjustment,
			RefType:  entity.RefAdjustment,
			RefID:    uuid.New().String(),
			Quantity: in.Quantity,
			UnitCost: in.UnitCost,
			Notes:    strings.TrimSpace(in.Reason),
			UserID:   userID,
		})
		if err != nil {
			return err
		}
		out = dto.AdjustmentResponse{Movement: toMovementDTO(mov), Stock: product.Stock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func toMovementDTO(m *entity.StockMovement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      string(m.Type),
		RefType:   string(m.RefType),
		RefID:     m.RefID,
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
	if m.UnitCostNet.Valid {
		c := m.UnitCostNet.Decimal
		out.UnitCostNet = &c
	}
	return out
}
