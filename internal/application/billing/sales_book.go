package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

// SalesBookRow fila del libro de ventas: un documento emitido con sus bases
// desglosadas por alícuota. Los documentos anulados aparecen con montos en
// cero pero conservan su numeración (el libro no tiene huecos).
type SalesBookRow struct {
	Fecha         time.Time
	Tipo          string
	Numero        string
	NumeroControl string
	ClienteRIF    string
	ClienteNombre string
	BaseGeneral   decimal.Decimal // código G
	BaseReducida  decimal.Decimal // código R
	BaseAdicional decimal.Decimal // código A
	Exento        decimal.Decimal // códigos E y NS
	TotalIVA      decimal.Decimal
	TotalIGTF     decimal.Decimal
	Total         decimal.Decimal
	Anulado       bool
}

// SalesBookUseCase arma el libro de ventas de un período y lo exporta a XLSX.
type SalesBookUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	exporter     SalesBookExporter
}

// NewSalesBookUseCase construye el caso de uso.
func NewSalesBookUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	exporter SalesBookExporter,
) *SalesBookUseCase {
	return &SalesBookUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		exporter:     exporter,
	}
}

// Export genera el XLSX del libro de ventas del período [desde, hasta].
func (uc *SalesBookUseCase) Export(ctx context.Context, companyID string, desde, hasta time.Time) (xlsx []byte, filename string, err error) {
	if hasta.Before(desde) {
		return nil, "", domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", domain.ErrNotFound
	}

	invoices, err := uc.invoiceRepo.ListEmittedBetween(companyID, desde, hasta)
	if err != nil {
		return nil, "", fmt.Errorf("libro de ventas: listar documentos: %w", err)
	}

	rows := make([]SalesBookRow, 0, len(invoices))
	for _, inv := range invoices {
		row, err := uc.buildRow(inv)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, row)
	}

	xlsx, err = uc.exporter.Export(company, rows, desde, hasta)
	if err != nil {
		return nil, "", fmt.Errorf("libro de ventas: exportar: %w", err)
	}
	filename = fmt.Sprintf("libro_ventas_%s_%s.xlsx", desde.Format("20060102"), hasta.Format("20060102"))
	return xlsx, filename, nil
}

func (uc *SalesBookUseCase) buildRow(inv *entity.Invoice) (SalesBookRow, error) {
	row := SalesBookRow{
		Tipo:          inv.Tipo,
		Numero:        inv.Numero,
		NumeroControl: inv.NumeroControl,
		Anulado:       inv.Estado == entity.EstadoAnulada,
	}
	if inv.FechaEmision != nil {
		row.Fecha = *inv.FechaEmision
	} else {
		row.Fecha = inv.Fecha
	}
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		row.ClienteRIF = customer.RIF
		row.ClienteNombre = customer.Name
	}

	// Anulado: numeración presente, montos en cero.
	if row.Anulado {
		return row, nil
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return row, fmt.Errorf("libro de ventas: líneas de %s: %w", inv.ID, err)
	}
	for _, l := range lines {
		switch l.CodigoIVA {
		case fiscal.IVAGeneral:
			row.BaseGeneral = row.BaseGeneral.Add(l.BaseImponible)
		case fiscal.IVAReducida:
			row.BaseReducida = row.BaseReducida.Add(l.BaseImponible)
		case fiscal.IVAAdicional:
			row.BaseAdicional = row.BaseAdicional.Add(l.BaseImponible)
		default:
			row.Exento = row.Exento.Add(l.BaseImponible)
		}
	}
	row.TotalIVA = inv.TotalIVA
	row.TotalIGTF = inv.TotalIGTF
	row.Total = inv.Total
	return row, nil
}
