package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo implementación de ExchangeRateRepository (usable con pool o tx).
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

// Upsert inserta o reemplaza la tasa de una fecha y moneda. Una fila por
// (moneda, fecha): recargar la tasa del día pisa la anterior.
func (r *ExchangeRateRepo) Upsert(rate *entity.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (id, moneda, tasa, fecha, fuente, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (moneda, fecha) DO UPDATE SET tasa = EXCLUDED.tasa, fuente = EXCLUDED.fuente`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.Moneda, rate.Tasa, rate.Fecha, rate.Fuente, rate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert exchange rate: %w", err)
	}
	return nil
}

// GetLatest devuelve la última tasa registrada para la moneda, o nil si no hay.
func (r *ExchangeRateRepo) GetLatest(moneda string) (*entity.ExchangeRate, error) {
	query := `
		SELECT id, moneda, tasa, fecha, fuente, created_at
		FROM exchange_rates WHERE moneda = $1 ORDER BY fecha DESC LIMIT 1`
	return scanRate(r.q.QueryRow(context.Background(), query, moneda))
}

// GetByDate devuelve la tasa de una fecha concreta, o nil si no hay.
func (r *ExchangeRateRepo) GetByDate(moneda string, fecha time.Time) (*entity.ExchangeRate, error) {
	query := `
		SELECT id, moneda, tasa, fecha, fuente, created_at
		FROM exchange_rates WHERE moneda = $1 AND fecha = $2`
	return scanRate(r.q.QueryRow(context.Background(), query, moneda, fecha))
}

func scanRate(row pgx.Row) (*entity.ExchangeRate, error) {
	var er entity.ExchangeRate
	err := row.Scan(&er.ID, &er.Moneda, &er.Tasa, &er.Fecha, &er.Fuente, &er.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange rate: %w", err)
	}
	return &er, nil
}
