package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para el catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, company_id, codigo, name, description, price,
			codigo_iva, alicuota, unit_measure, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Codigo, item.Name, item.Description, item.Price,
		string(item.CodigoIVA), item.Alicuota, item.UnitMeasure, item.Active,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := itemSelect + ` WHERE id = $1`
	return scanItemRow(r.q.QueryRow(context.Background(), query, id))
}

// GetByCompanyAndCodigo obtiene un ítem por empresa y código (PLU).
func (r *ItemRepo) GetByCompanyAndCodigo(companyID, codigo string) (*entity.Item, error) {
	query := itemSelect + ` WHERE company_id = $1 AND codigo = $2`
	return scanItemRow(r.q.QueryRow(context.Background(), query, companyID, codigo))
}

// ListByCompany lista los ítems de la empresa con paginación.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	query := itemSelect + ` WHERE company_id = $1 ORDER BY codigo LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza un ítem.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, description = $3, price = $4, codigo_iva = $5,
			alicuota = $6, unit_measure = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Price, string(item.CodigoIVA),
		item.Alicuota, item.UnitMeasure, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

const itemSelect = `
	SELECT id, company_id, codigo, name, description, price, codigo_iva,
	       alicuota, unit_measure, active, created_at, updated_at
	FROM items`

func scanItemRow(row pgx.Row) (*entity.Item, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var codigoIVA string
	err := row.Scan(&it.ID, &it.CompanyID, &it.Codigo, &it.Name, &it.Description,
		&it.Price, &codigoIVA, &it.Alicuota, &it.UnitMeasure, &it.Active,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.CodigoIVA = fiscal.CodigoIVA(codigoIVA)
	return &it, nil
}
