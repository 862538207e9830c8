package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/internal/observability/metrics"
)

// ControlNumberUseCase administra los lotes de números de control autorizados
// por la imprenta digital. Solo un lote activo por empresa: registrar uno
// nuevo desactiva el anterior.
type ControlNumberUseCase struct {
	repo repository.ControlNumberRepository
}

// NewControlNumberUseCase construye el caso de uso.
func NewControlNumberUseCase(repo repository.ControlNumberRepository) *ControlNumberUseCase {
	return &ControlNumberUseCase{repo: repo}
}

// RegisterBatch registra un lote nuevo y lo activa.
func (uc *ControlNumberUseCase) RegisterBatch(companyID string, in dto.ControlBatchRequest) (*dto.ControlBatchResponse, error) {
	if in.Serie == "" || in.Desde <= 0 || in.Hasta < in.Desde {
		return nil, domain.ErrInvalidInput
	}

	// Desactivar el lote activo previo, si lo hay. Sin bloqueo de fila: el
	// consumo concurrente de números ocurre en la transacción de emisión.
	batches, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	for _, b := range batches {
		if b.Activo {
			b.Activo = false
			b.UpdatedAt = time.Now()
			if err := uc.repo.Update(b); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	batch := &entity.ControlNumberBatch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Serie:     in.Serie,
		Desde:     in.Desde,
		Hasta:     in.Hasta,
		Siguiente: in.Desde,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(batch); err != nil {
		return nil, err
	}
	metrics.SetControlNumbersRemaining(companyID, batch.Hasta-batch.Siguiente+1)
	return toBatchResponse(batch), nil
}

// ListBatches lista los lotes de la empresa, activos e históricos.
func (uc *ControlNumberUseCase) ListBatches(companyID string) ([]*dto.ControlBatchResponse, error) {
	batches, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ControlBatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return out, nil
}

func toBatchResponse(b *entity.ControlNumberBatch) *dto.ControlBatchResponse {
	return &dto.ControlBatchResponse{
		ID:        b.ID,
		Serie:     b.Serie,
		Desde:     b.Desde,
		Hasta:     b.Hasta,
		Siguiente: b.Siguiente,
		Activo:    b.Activo,
	}
}
