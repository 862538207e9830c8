package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

var _ repository.ControlNumberRepository = (*ControlNumberRepo)(nil)

// ControlNumberRepo implementación de ControlNumberRepository (usable con pool o tx).
type ControlNumberRepo struct {
	q Querier
}

// NewControlNumberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewControlNumberRepository(q Querier) *ControlNumberRepo {
	return &ControlNumberRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *ControlNumberRepo) Create(batch *entity.ControlNumberBatch) error {
	query := `
		INSERT INTO control_number_batches (id, company_id, serie, desde, hasta,
			siguiente, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.Serie, batch.Desde, batch.Hasta,
		batch.Siguiente, batch.Activo, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert control batch: %w", err)
	}
	return nil
}

// GetActiveForUpdate obtiene el lote activo de la empresa con bloqueo de fila
// (SELECT ... FOR UPDATE). Debe invocarse dentro de la transacción de emisión
// para serializar el consumo de números de control.
func (r *ControlNumberRepo) GetActiveForUpdate(companyID string) (*entity.ControlNumberBatch, error) {
	query := `
		SELECT id, company_id, serie, desde, hasta, siguiente, activo, created_at, updated_at
		FROM control_number_batches
		WHERE company_id = $1 AND activo = true
		ORDER BY created_at DESC LIMIT 1
		FOR UPDATE`
	var b entity.ControlNumberBatch
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&b.ID, &b.CompanyID, &b.Serie, &b.Desde, &b.Hasta, &b.Siguiente, &b.Activo,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active control batch: %w", err)
	}
	return &b, nil
}

// Update actualiza el lote (consumo de números, desactivación).
func (r *ControlNumberRepo) Update(batch *entity.ControlNumberBatch) error {
	query := `
		UPDATE control_number_batches SET siguiente = $2, activo = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Siguiente, batch.Activo, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update control batch: %w", err)
	}
	return nil
}

// ListByCompany lista los lotes de la empresa, más recientes primero.
func (r *ControlNumberRepo) ListByCompany(companyID string) ([]*entity.ControlNumberBatch, error) {
	query := `
		SELECT id, company_id, serie, desde, hasta, siguiente, activo, created_at, updated_at
		FROM control_number_batches WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list control batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ControlNumberBatch
	for rows.Next() {
		var b entity.ControlNumberBatch
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Serie, &b.Desde, &b.Hasta,
			&b.Siguiente, &b.Activo, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan control batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
