package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/application/inventory"
)

// InventoryHandler ajustes manuales, kardex y reposición (protegido).
type InventoryHandler struct {
	adjust        *inventory.AdjustmentUseCase
	kardex        *inventory.KardexUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustmentUseCase, kardex *inventory.KardexUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, kardex: kardex, replenishment: replenishment}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  qty con signo. Un ajuste negativo no puede dejar el stock bajo cero.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, qty, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.adjust.Adjust(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetKardex godoc
// @Summary      Kardex de un producto
// @Description  Movimientos en orden cronológico con saldo acumulado. from/to (YYYY-MM-DD) inclusivos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        from       query  string  false  "Desde"
// @Param        to         query  string  false  "Hasta"
// @Success      200  {object}  dto.KardexResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex/{productId} [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	var in dto.KardexRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.kardex.GetKardex(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Productos en o bajo su stock mínimo
// @Description  Cantidad sugerida hasta 1,5 veces el mínimo, priorizada por déficit y rotación de 90 días.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}
