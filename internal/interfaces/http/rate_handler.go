package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/application/rates"
	"github.com/facturave/facturave-api/internal/domain"
)

// RateHandler maneja el registro y consulta de la tasa BCV diaria.
type RateHandler struct {
	uc *rates.RateUseCase
}

// NewRateHandler construye el handler.
func NewRateHandler(uc *rates.RateUseCase) *RateHandler {
	return &RateHandler{uc: uc}
}

// Set registra (o reemplaza) la tasa de una fecha. Solo admin.
// POST /api/rates
func (h *RateHandler) Set(c *fiber.Ctx) error {
	var in dto.SetRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetRate(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "moneda, fecha (YYYY-MM-DD) y tasa positiva son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLatest devuelve la última tasa registrada de la moneda.
// GET /api/rates/latest?moneda=USD
func (h *RateHandler) GetLatest(c *fiber.Ctx) error {
	moneda := c.Query("moneda", "USD")
	out, err := h.uc.GetLatest(moneda)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay tasa registrada para la moneda"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
