package repository

import "github.com/facturave/facturave-api/internal/domain/entity"

// ControlNumberRepository define el puerto de persistencia para los lotes de
// números de control autorizados.
type ControlNumberRepository interface {
	Create(batch *entity.ControlNumberBatch) error
	// GetActiveForUpdate obtiene el lote activo de la empresa con bloqueo de fila.
	// Debe invocarse dentro de la transacción de emisión.
	GetActiveForUpdate(companyID string) (*entity.ControlNumberBatch, error)
	Update(batch *entity.ControlNumberBatch) error
	ListByCompany(companyID string) ([]*entity.ControlNumberBatch, error)
}
