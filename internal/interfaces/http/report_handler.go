package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
)

// ReportHandler maneja los reportes fiscales (protegido, lectura).
type ReportHandler struct {
	salesBook *billing.SalesBookUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(salesBook *billing.SalesBookUseCase) *ReportHandler {
	return &ReportHandler{salesBook: salesBook}
}

// LibroVentas descarga el libro de ventas XLSX del período.
// GET /api/reports/libro-ventas?desde=2026-02-01&hasta=2026-02-28
func (h *ReportHandler) LibroVentas(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	desde, err := parseDateQuery(c, "desde")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde requerido (YYYY-MM-DD)"})
	}
	hasta, err := parseDateQuery(c, "hasta")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta requerido (YYYY-MM-DD)"})
	}
	xlsx, filename, err := h.salesBook.Export(c.Context(), companyID, desde, hasta)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango de fechas es inválido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(xlsx)
}
