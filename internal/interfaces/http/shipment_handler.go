package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/shipment"
	"github.com/agroconserva/trazabilidad-api/internal/application/trace"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// ShipmentHandler maneja expediciones y la cadena de trazabilidad (protegido).
type ShipmentHandler struct {
	uc      *shipment.UseCase
	traceUC *trace.UseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *shipment.UseCase, traceUC *trace.UseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, traceUC: traceUC}
}

// Create godoc
// @Summary      Expedir lote (total o parcial) a un cliente
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Datos de la expedición"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, b, err := h.uc.Create(c.UserContext(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(s, b))
}

// GetByID godoc
// @Summary      Obtener expedición por ID
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la expedición"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	s, err := h.uc.GetByID(c.UserContext(), GetOrganizationID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	if s == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "expedición no encontrada"})
	}
	return c.JSON(toShipmentResponse(s, nil))
}

// List godoc
// @Summary      Listar expediciones
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	shipments, err := h.uc.List(c.UserContext(), GetOrganizationID(c), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentResponse(s, nil))
	}
	return c.JSON(out)
}

// ApprovedBatches godoc
// @Summary      Listar lotes APROBADOS candidatos a expedición (orden FEFO)
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches/approved [get]
func (h *ShipmentHandler) ApprovedBatches(c *fiber.Ctx) error {
	batches, err := h.uc.ListApprovedForProduct(c.UserContext(), GetOrganizationID(c), c.Query("product_id"))
	if err != nil {
		return handleError(c, err)
	}
	now := time.Now()
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.NewBatchResponse(b, now))
	}
	return c.JSON(out)
}

// Trace godoc
// @Summary      Reconstruir la cadena de trazabilidad de una expedición
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la expedición"
// @Success      200  {array}  dto.TraceStage
// @Router       /api/shipments/{id}/trace [get]
func (h *ShipmentHandler) Trace(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	chain, err := h.traceUC.GetChain(c.UserContext(), GetOrganizationID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(chain)
}

func toShipmentResponse(s *entity.Shipment, b *entity.Batch) dto.ShipmentResponse {
	out := dto.ShipmentResponse{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		BatchID:      s.BatchID,
		BatchCode:    s.BatchCode,
		Quantity:     s.Quantity,
		Unit:         s.Unit,
		DeliveryNote: s.DeliveryNote,
		ProcessedAt:  s.ProcessedAt,
	}
	if b != nil {
		out.BatchStatus = b.Status
		out.BatchQuantity = b.Quantity
	}
	return out
}
