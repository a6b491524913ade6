// Package analytics contiene los casos de uso de reportes de ventas y el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo, loc: loc, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. SalesSummary(hoy)
//  2. SalesSummary(mes)
//  3. TopProductsByUnits(mes, top 5)
//  4. ListBelowMinStock
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)

	// Hoy: [00:00, mañana 00:00)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	tomorrow := todayStart.AddDate(0, 0, 1)
	// Mes en curso: [día 1, mañana)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	type summaryResult struct {
		sum repository.SalesSummary
		err error
	}
	type topResult struct {
		top []repository.ProductUnits
		err error
	}
	type lowResult struct {
		count int
		err   error
	}

	todayCh := make(chan summaryResult, 1)
	monthCh := make(chan summaryResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		s, err := uc.analyticsRepo.SalesSummary(ctx, todayStart, tomorrow)
		todayCh <- summaryResult{s, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.SalesSummary(ctx, monthStart, tomorrow)
		monthCh <- summaryResult{s, err}
	}()
	go func() {
		top, err := uc.analyticsRepo.TopProductsByUnits(ctx, monthStart, tomorrow, dashboardTopProducts)
		topCh <- topResult{top, err}
	}()
	go func() {
		low, err := uc.productRepo.ListBelowMinStock(ctx)
		lowCh <- lowResult{len(low), err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	avg := decimal.Zero
	if month.sum.Count > 0 {
		avg = month.sum.Total.Div(decimal.NewFromInt(int64(month.sum.Count))).Round(2)
	}
	topProducts := make([]dto.TopProductDTO, 0, len(top.top))
	for _, p := range top.top {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:   p.ProductID,
			SKU:         p.SKU,
			ProductName: p.Name,
			Units:       p.Units,
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:    today.sum.Total.Round(2),
		TodayCount:    today.sum.Count,
		MonthlySales:  month.sum.Total.Round(2),
		MonthlyCount:  month.sum.Count,
		AverageTicket: avg,
		TopProducts:   topProducts,
		LowStockCount: low.count,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
