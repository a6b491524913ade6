package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/petmaison-api/internal/application/analytics"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
)

// ReportHandler reporte público de ventas por período.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesReport godoc
// @Summary      Ventas agrupadas por período
// @Description  Solo ventas CONFIRMED o DELIVERED. Períodos sin ventas se omiten.
// @Tags         reports
// @Produce      json
// @Param        from     query  string  true   "Desde (YYYY-MM-DD)"
// @Param        to       query  string  true   "Hasta inclusive (YYYY-MM-DD)"
// @Param        groupBy  query  string  false  "day | month | year"  default(month)
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SalesReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
