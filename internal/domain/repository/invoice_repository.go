package repository

import (
	"time"

	"github.com/facturave/facturave-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para documentos fiscales
// (cabecera, líneas y pagos).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	CreatePayment(payment *entity.InvoicePayment) error
	// Update actualiza estado, numeración, tasa congelada y campos de nota/anulación.
	Update(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByCompanyAndNumero busca un documento emitido por número (para notas).
	GetByCompanyAndNumero(companyID, numero string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	GetPaymentsByInvoiceID(invoiceID string) ([]*entity.InvoicePayment, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
	// ListEmittedBetween lista documentos emitidos en el rango (libro de ventas).
	ListEmittedBetween(companyID string, desde, hasta time.Time) ([]*entity.Invoice, error)
	// NextNumero devuelve el próximo correlativo de factura de la empresa.
	// Debe invocarse dentro de la transacción de emisión.
	NextNumero(companyID string) (int64, error)
}
