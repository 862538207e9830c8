package billing

import (
	"context"
	"fmt"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de un documento fiscal.
// Solo documentos emitidos o anulados tienen PDF: un borrador no tiene
// numeración que imprimir.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF recupera todos los datos del documento, verifica que ya
// fue emitido y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrNotFound          si el documento no existe.
//   - domain.ErrForbidden         si no pertenece a la empresa del token.
//   - domain.ErrEstadoInvalido    si el documento está en borrador.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	companyID, invoiceID string,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar documento ───────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	// ── 2. Validar que ya fue emitido ─────────────────────────────────────────
	if inv.Estado == entity.EstadoBorrador {
		return nil, "", fmt.Errorf("%w: el documento está en borrador, emítalo antes de descargar el PDF",
			domain.ErrEstadoInvalido)
	}

	// ── 3. Cargar empresa ─────────────────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 4. Cargar cliente ─────────────────────────────────────────────────────
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 5. Cargar líneas y pagos ──────────────────────────────────────────────
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	payments, err := uc.invoiceRepo.GetPaymentsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pagos: %w", err)
	}

	// ── 6. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, company, customer, lines, payments)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", inv.Numero)
	return pdfBytes, filename, nil
}
