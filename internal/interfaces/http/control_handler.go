package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
)

// ControlNumberHandler maneja los lotes de números de control (solo admin).
type ControlNumberHandler struct {
	uc *billing.ControlNumberUseCase
}

// NewControlNumberHandler construye el handler.
func NewControlNumberHandler(uc *billing.ControlNumberUseCase) *ControlNumberHandler {
	return &ControlNumberHandler{uc: uc}
}

// Register registra un lote autorizado y desactiva el anterior.
// POST /api/control-numbers
func (h *ControlNumberHandler) Register(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ControlBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterBatch(companyID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "serie, desde y hasta (desde <= hasta) son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los lotes de la empresa.
// GET /api/control-numbers
func (h *ControlNumberHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.ListBatches(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
