package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

// InvoiceHandler maneja el ciclo de vida del documento fiscal (protegido).
type InvoiceHandler struct {
	uc       *billing.InvoiceUseCase
	pdfUC    *billing.PDFUseCase
	exportUC *billing.ExportUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdfUC *billing.PDFUseCase, exportUC *billing.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC, exportUC: exportUC}
}

// Create crea un borrador de factura con los totales ya calculados.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.CreateDraft(c.Context(), companyID, in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID obtiene el detalle completo de un documento.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	invoice, err := h.uc.GetInvoice(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(invoice)
}

// List GET /api/invoices?limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListInvoices(c.Context(), companyID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Emit emite el borrador: asigna correlativo, número de control y congela la
// tasa BCV del día.
// POST /api/invoices/:id/emit
func (h *InvoiceHandler) Emit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	invoice, err := h.uc.Emit(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(invoice)
}

// Void anula un documento emitido conservando su numeración.
// POST /api/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.VoidInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.uc.Void(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(invoice)
}

// CreateNota crea un borrador de nota de crédito/débito que referencia al
// documento emitido :id.
// POST /api/invoices/:id/notas
func (h *InvoiceHandler) CreateNota(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nota, err := h.uc.CreateNota(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// DownloadPDF descarga la representación gráfica del documento.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}

// ExportDocumento descarga el documento electrónico JSON del formato de la
// imprenta digital (y lo envía al proveedor según ambiente).
// GET /api/invoices/:id/documento
func (h *InvoiceHandler) ExportDocumento(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	docJSON, filename, err := h.exportUC.ExportDocumento(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(docJSON)
}

// mapError traduce los errores de dominio del ciclo de vida a códigos HTTP.
// Los casos de uso envuelven los sentinelas con contexto, de ahí errors.Is.
func (h *InvoiceHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ESTADO_INVALIDO", Message: "el documento no está en un estado válido para la operación"})
	case errors.Is(err, domain.ErrPagosIncompletos):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PAGOS_INCOMPLETOS", Message: "la suma de pagos no cubre el total del documento"})
	case errors.Is(err, domain.ErrSinLoteActivo):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SIN_LOTE_ACTIVO", Message: "no hay lote de números de control activo"})
	case errors.Is(err, domain.ErrLoteAgotado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOTE_AGOTADO", Message: "el lote de números de control está agotado"})
	case errors.Is(err, domain.ErrDocumentoNoAfectado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DOCUMENTO_NO_AFECTADO", Message: "la nota debe referenciar un documento emitido"})
	case errors.Is(err, fiscal.ErrTasaNoDisponible):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TASA_NO_DISPONIBLE", Message: "registre la tasa BCV del día antes de emitir"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseDateQuery parsea un query param de fecha YYYY-MM-DD.
func parseDateQuery(c *fiber.Ctx, key string) (time.Time, error) {
	return time.Parse("2006-01-02", c.Query(key))
}
