package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/petmaison-api/internal/application/analytics"
)

// DashboardHandler resumen de ventas para la portada del POS.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del día y del mes en curso
// @Description  Ventas contabilizadas de hoy y del mes, ticket promedio, top 5 por unidades y cantidad bajo mínimo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
