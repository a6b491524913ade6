package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos en o bajo su stock mínimo,
// priorizados por ventas recientes.
type ReplenishmentUseCase struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, analyticsRepo repository.AnalyticsRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, analyticsRepo: analyticsRepo, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos con stock <= min_stock con la cantidad sugerida
// de pedido y un ranking de prioridad (unidades vendidas en 90 días, luego déficit).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	end := uc.now()
	start := end.AddDate(0, 0, -90)
	sold, err := uc.analyticsRepo.TopProductsByUnits(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}
	unitsByID := make(map[string]int, len(sold))
	for _, s := range sold {
		unitsByID[s.ProductID] = s.Units
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		ideal := (p.MinStock*3 + 1) / 2
		qty := ideal - p.Stock
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:           p.ID,
			SKU:                 p.SKU,
			ProductName:         p.Name,
			CurrentStock:        p.Stock,
			MinStock:            p.MinStock,
			IdealStock:          ideal,
			SuggestedOrderQty:   qty,
			UnitCost:            p.CostNet,
			EstimatedOrderCost:  p.CostNet.Mul(decimal.NewFromInt(int64(qty))),
			UnitsSoldLast90Days: unitsByID[p.ID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLast90Days != b.UnitsSoldLast90Days {
			return a.UnitsSoldLast90Days > b.UnitsSoldLast90Days
		}
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		return a.SKU < b.SKU
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
