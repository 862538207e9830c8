package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/internal/observability/metrics"
)

// Emit emite un borrador: verifica que los pagos cubren el total, congela la
// tasa BCV vigente y asigna correlativo y número de control en una sola
// transacción. Sin tasa del día no hay emisión (fiscal.ErrTasaNoDisponible);
// sin lote activo o con el lote agotado tampoco.
func (uc *InvoiceUseCase) Emit(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if inv.Estado != entity.EstadoBorrador {
		return nil, fmt.Errorf("emitir %s en estado %s: %w", inv.ID, inv.Estado, domain.ErrEstadoInvalido)
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.invoiceRepo.GetPaymentsByInvoiceID(id)
	if err != nil {
		return nil, err
	}

	pagos := make([]fiscal.Pago, 0, len(payments))
	for _, p := range payments {
		pagos = append(pagos, fiscal.Pago{Metodo: p.Metodo, Monto: p.Monto})
	}
	if !fiscal.PagoCompleto(pagos, inv.Total) {
		return nil, fmt.Errorf("emitir %s: %w", inv.ID, domain.ErrPagosIncompletos)
	}

	var loteRestante int64
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		controlRepo repository.ControlNumberRepository,
		rateRepo repository.ExchangeRateRepository,
	) error {
		rate, err := rateRepo.GetLatest(uc.monedaTasa)
		if err != nil {
			return err
		}
		if rate == nil || !rate.Tasa.GreaterThan(decimal.Zero) {
			return fiscal.ErrTasaNoDisponible
		}

		numero, err := invoiceRepo.NextNumero(companyID)
		if err != nil {
			return err
		}

		batch, err := controlRepo.GetActiveForUpdate(companyID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrSinLoteActivo
		}
		if batch.Agotado() {
			return domain.ErrLoteAgotado
		}
		numeroControl := fmt.Sprintf("%s-%08d", batch.Serie, batch.Siguiente)
		batch.Siguiente++
		batch.UpdatedAt = time.Now()
		if err := controlRepo.Update(batch); err != nil {
			return err
		}
		loteRestante = batch.Hasta - batch.Siguiente + 1

		now := time.Now()
		inv.Estado = entity.EstadoEmitida
		inv.Numero = fmt.Sprintf("%08d", numero)
		inv.NumeroControl = numeroControl
		inv.FechaEmision = &now
		inv.TasaCambio = rate.Tasa
		inv.FechaTasa = rate.Fecha
		inv.TotalUSD = inv.Total.Div(rate.Tasa).Round(2)
		inv.UpdatedAt = now
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		metrics.IncInvoiceEmitted(inv.Tipo, metrics.ResultError)
		return nil, err
	}
	metrics.IncInvoiceEmitted(inv.Tipo, metrics.ResultSuccess)
	metrics.SetControlNumbersRemaining(companyID, loteRestante)

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("numero", inv.Numero).
		Str("numero_control", inv.NumeroControl).
		Str("tasa_bcv", inv.TasaCambio.String()).
		Msg("documento emitido")

	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, lines, payments), nil
}

// Void anula un documento emitido. La numeración se conserva; el documento
// anulado sigue apareciendo en el libro de ventas con total cero.
func (uc *InvoiceUseCase) Void(ctx context.Context, companyID, id string, in dto.VoidInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Motivo == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if inv.Estado != entity.EstadoEmitida {
		return nil, fmt.Errorf("anular %s en estado %s: %w", inv.ID, inv.Estado, domain.ErrEstadoInvalido)
	}

	inv.Estado = entity.EstadoAnulada
	inv.MotivoAnulacion = in.Motivo
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	metrics.IncInvoiceVoided()

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("numero", inv.Numero).
		Str("motivo", in.Motivo).
		Msg("documento anulado")

	lines, _ := uc.invoiceRepo.GetLinesByInvoiceID(id)
	payments, _ := uc.invoiceRepo.GetPaymentsByInvoiceID(id)
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, lines, payments), nil
}
