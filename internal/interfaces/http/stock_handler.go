package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agroconserva/trazabilidad-api/internal/application/usecase"
)

// StockHandler expone el stock agregado de materia prima (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Stock agregado de materia prima por producto y unidad
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRow
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.List(GetOrganizationID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rows)
}

// Recompute godoc
// @Summary      Recalcular el stock agregado desde los lotes (verificación)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRow
// @Router       /api/stock/recompute [post]
func (h *StockHandler) Recompute(c *fiber.Ctx) error {
	rows, err := h.uc.Recompute(GetOrganizationID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rows)
}
