package billing

import (
	"context"
	"time"

	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función con los repositorios de facturación
// ligados a una misma transacción. La emisión necesita atomicidad entre el
// correlativo de factura, el consumo del lote de números de control y la
// actualización del documento.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		controlRepo repository.ControlNumberRepository,
		rateRepo repository.ExchangeRateRepository,
	) error) error
}

// InvoicePDFGenerator puerto de salida para la representación gráfica del
// documento fiscal. La implementación concreta vive en infrastructure/pdf.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		inv *entity.Invoice,
		company *entity.Company,
		customer *entity.Customer,
		lines []*entity.InvoiceLine,
		payments []*entity.InvoicePayment,
	) ([]byte, error)
}

// SalesBookExporter puerto de salida para el libro de ventas en XLSX.
type SalesBookExporter interface {
	Export(company *entity.Company, rows []SalesBookRow, desde, hasta time.Time) ([]byte, error)
}
