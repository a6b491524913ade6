package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// ReportUseCase reporte de ventas contabilizadas agrupadas por período. Solo lectura.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{analyticsRepo: analyticsRepo, loc: loc}
}

// SalesReport suma los totales de ventas CONFIRMED/DELIVERED entre from y to (inclusivos, obligatorios)
// agrupados por día, mes o año.
func (uc *ReportUseCase) SalesReport(ctx context.Context, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	groupBy := in.GroupBy
	if groupBy == "" {
		groupBy = repository.PeriodMonth
	}
	switch groupBy {
	case repository.PeriodDay, repository.PeriodMonth, repository.PeriodYear:
	default:
		return nil, domain.Invalid("groupBy", "debe ser day, month o year")
	}

	if in.From == "" {
		return nil, domain.Invalid("from", "es requerido")
	}
	if in.To == "" {
		return nil, domain.Invalid("to", "es requerido")
	}
	from, to, err := dto.ParseDateRange(in.From, in.To, uc.loc)
	if err != nil {
		return nil, err
	}

	rows, err := uc.analyticsRepo.SalesByPeriod(ctx, *from, *to, groupBy)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesReportResponse{
		From:    in.From,
		To:      in.To,
		GroupBy: groupBy,
		Items:   make([]dto.SalesReportItem, 0, len(rows)),
		Total:   decimal.Zero,
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.SalesReportItem{Period: r.Period, Total: r.Total})
		out.Total = out.Total.Add(r.Total)
	}
	return out, nil
}
