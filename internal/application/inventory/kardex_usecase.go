package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// KardexUseCase consulta de solo lectura del historial de movimientos de un producto.
type KardexUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	loc          *time.Location
}

// NewKardexUseCase construye el caso de uso. loc es la zona horaria de los filtros de fecha.
func NewKardexUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository, loc *time.Location) *KardexUseCase {
	return &KardexUseCase{productRepo: productRepo, movementRepo: movementRepo, loc: loc}
}

// GetKardex devuelve los movimientos en orden cronológico con saldo de apertura, saldo acumulado y cierre.
func (uc *KardexUseCase) GetKardex(ctx context.Context, productID string, in dto.KardexRequest) (*dto.KardexResponse, error) {
	from, to, err := dto.ParseDateRange(in.From, in.To, uc.loc)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", productID)
	}

	opening := 0
	if from != nil {
		opening, err = uc.movementRepo.SumDeltaBefore(ctx, productID, *from)
		if err != nil {
			return nil, err
		}
	}
	movements, err := uc.movementRepo.ListByProduct(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.KardexResponse{
		ProductID:      product.ID,
		SKU:            product.SKU,
		ProductName:    product.Name,
		OpeningBalance: opening,
		CurrentStock:   product.Stock,
		Entries:        make([]dto.KardexEntry, 0, len(movements)),
	}
	balance := opening
	for _, m := range movements {
		delta := m.Delta()
		balance += delta
		out.Entries = append(out.Entries, dto.KardexEntry{
			MovementResponse: toMovementDTO(m),
			Delta:            delta,
			Balance:          balance,
		})
	}
	out.ClosingBalance = balance
	return out, nil
}
