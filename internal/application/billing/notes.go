package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/observability/metrics"
)

// CreateNota crea una nota de crédito o débito en borrador referenciando un
// documento emitido. La referencia (serie, número, fecha, monto, motivo) se
// toma del documento afectado y queda congelada en la nota; la numeración
// propia de la nota se asigna al emitirla, como cualquier otro documento.
func (uc *InvoiceUseCase) CreateNota(ctx context.Context, companyID, afectaID string, in dto.CreateNotaRequest) (*dto.InvoiceResponse, error) {
	if in.Motivo == "" || len(in.Lines) == 0 || len(in.Payments) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Tipo != entity.TipoNotaCredito && in.Tipo != entity.TipoNotaDebito {
		return nil, domain.ErrInvalidInput
	}

	afectado, err := uc.invoiceRepo.GetByID(afectaID)
	if err != nil || afectado == nil {
		return nil, domain.ErrNotFound
	}
	if afectado.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	// Solo documentos EMITIDA pueden ser afectados por una nota: un borrador
	// no tiene numeración que referenciar y un documento anulado se corrige
	// por anulación, no por nota.
	if afectado.Estado != entity.EstadoEmitida {
		return nil, fmt.Errorf("nota sobre %s en estado %s: %w", afectado.ID, afectado.Estado, domain.ErrDocumentoNoAfectado)
	}

	customer, err := uc.customerRepo.GetByID(afectado.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	lines, payments, totals, err := uc.buildLinesAndPayments(companyID, in.Lines, in.Payments)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nota := &entity.Invoice{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   afectado.CustomerID,
		Tipo:         in.Tipo,
		Estado:       entity.EstadoBorrador,
		Moneda:       "VES",
		Fecha:        now,
		Subtotal:     totals.Subtotal,
		TotalIVA:     totals.TotalIVA,
		TotalIGTF:    totals.TotalIGTF,
		Total:        totals.Total,
		AfectaSerie:  serieDeControl(afectado.NumeroControl),
		AfectaNumero: afectado.Numero,
		AfectaFecha:  afectado.FechaEmision,
		AfectaMonto:  afectado.Total,
		MotivoNota:   in.Motivo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.persistDraft(ctx, nota, lines, payments); err != nil {
		return nil, err
	}
	metrics.IncNotaCreated(nota.Tipo)

	uc.log.Info().
		Str("nota_id", nota.ID).
		Str("tipo", nota.Tipo).
		Str("afecta_numero", nota.AfectaNumero).
		Msg("borrador de nota creado")
	return uc.toResponse(nota, customer.Name, lines, payments), nil
}

// serieDeControl extrae la serie del número de control "SS-NNNNNNNN".
func serieDeControl(numeroControl string) string {
	for i := 0; i < len(numeroControl); i++ {
		if numeroControl[i] == '-' {
			return numeroControl[:i]
		}
	}
	return numeroControl
}
