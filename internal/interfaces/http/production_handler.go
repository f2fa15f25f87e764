package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/production"
)

// ProductionHandler maneja las acciones de producción (protegido).
type ProductionHandler struct {
	uc *production.UseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar acción de producción (consolidación o re-etiquetado PELADO)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRequest  true  "Etapa, manifiesto de entrada y salida"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Create(c.UserContext(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionResponse(in.Stage, result))
}

func toProductionResponse(stage string, result *production.Result) dto.ProductionResponse {
	out := dto.ProductionResponse{Stage: stage}
	if result.Record != nil {
		rec := result.Record
		out.ID = rec.ID
		out.OutputBatchID = rec.OutputBatchID
		out.OutputBatchCode = rec.OutputBatchCode
		out.InputQuantity = rec.InputQuantity
		out.OutputQuantity = rec.OutputQuantity
		out.Unit = rec.Unit
		for _, in := range rec.Inputs {
			out.Inputs = append(out.Inputs, dto.ProductionInputResponse{
				InputBatchID:     in.InputBatchID,
				InputBatchCode:   in.InputBatchCode,
				QuantityConsumed: in.QuantityConsumed,
			})
		}
	}
	for _, b := range result.Relabeled {
		out.RelabeledBatchIDs = append(out.RelabeledBatchIDs, b.ID)
	}
	return out
}
