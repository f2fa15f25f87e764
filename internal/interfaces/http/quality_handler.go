package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/quality"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// QualityHandler maneja los controles de calidad (protegido, rol calidad o admin).
type QualityHandler struct {
	uc *quality.UseCase
}

// NewQualityHandler construye el handler.
func NewQualityHandler(uc *quality.UseCase) *QualityHandler {
	return &QualityHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar control de calidad sobre un lote esterilizado
// @Tags         quality
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQualityCheckRequest  true  "Decisión de calidad"
// @Success      201   {object}  dto.QualityCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quality [post]
func (h *QualityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQualityCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	check, err := h.uc.Create(c.UserContext(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	newStatus := entity.StatusRetenido
	switch check.Result {
	case entity.QualityApproved:
		newStatus = entity.StatusAprobado
	case entity.QualityRejected:
		newStatus = entity.StatusBloqueado
	}
	return c.Status(fiber.StatusCreated).JSON(dto.QualityCheckResponse{
		ID:        check.ID,
		BatchID:   check.BatchID,
		BatchCode: check.BatchCode,
		Result:    check.Result,
		NewStatus: newStatus,
		ExpiresAt: check.ExpiresAt,
		DecidedAt: check.DecidedAt,
	})
}
