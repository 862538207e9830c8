package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/internal/infrastructure/timbrado"
	"github.com/facturave/facturave-api/internal/observability/metrics"
	"github.com/facturave/facturave-api/pkg/logger"
)

// ExportUseCase genera el documento electrónico JSON de un documento emitido
// y, si hay proveedor configurado, lo entrega. La generación es determinista:
// exportar dos veces el mismo documento produce bytes idénticos.
type ExportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	builder      *timbrado.BuilderService
	submitter    timbrado.Submitter // nil en modo dev
	env          string             // dev | test | prod
	log          *logger.Logger
}

// NewExportUseCase construye el caso de uso. submitter nil deja la entrega
// desactivada (modo dev): el documento se genera y se devuelve sin enviar.
func NewExportUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	builder *timbrado.BuilderService,
	submitter timbrado.Submitter,
	env string,
	log *logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		builder:      builder,
		submitter:    submitter,
		env:          env,
		log:          log,
	}
}

// ExportDocumento carga el documento con sus colecciones, construye el JSON
// del documento electrónico y lo entrega al proveedor si está configurado.
// Los borradores no son exportables (el builder los rechaza).
func (uc *ExportUseCase) ExportDocumento(ctx context.Context, companyID, invoiceID string) (docJSON []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("export: obtener documento: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("export: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("export: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("export: obtener líneas: %w", err)
	}
	payments, err := uc.invoiceRepo.GetPaymentsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("export: obtener pagos: %w", err)
	}

	inicio := time.Now()
	docJSON, err = uc.builder.BuildJSON(&timbrado.BuildContext{
		Invoice:  inv,
		Company:  company,
		Customer: customer,
		Lines:    lines,
		Payments: payments,
	})
	if err != nil {
		metrics.ObserveDocumentExport("json", metrics.ResultError, time.Since(inicio))
		return nil, "", err
	}

	if uc.submitter != nil && uc.env != timbrado.AppEnvDev {
		result, subErr := uc.submitter.Submit(ctx, docJSON, uc.env)
		switch {
		case subErr != nil:
			// Fallo de red o del proveedor: el documento generado sigue siendo
			// válido localmente y se puede reintentar la entrega.
			uc.log.Error().Err(subErr).
				Str("invoice_id", inv.ID).
				Msg("entrega al proveedor de timbrado fallida")
		case !result.Accepted:
			uc.log.Warn().
				Str("invoice_id", inv.ID).
				Str("track_id", result.TrackID).
				Str("errores", result.Errors).
				Msg("documento rechazado por el proveedor de timbrado")
		default:
			uc.log.Info().
				Str("invoice_id", inv.ID).
				Str("track_id", result.TrackID).
				Msg("documento aceptado por el proveedor de timbrado")
		}
	}

	metrics.ObserveDocumentExport("json", metrics.ResultSuccess, time.Since(inicio))

	filename = fmt.Sprintf("documento_%s.json", inv.Numero)
	return docJSON, filename, nil
}
