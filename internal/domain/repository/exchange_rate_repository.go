package repository

import (
	"time"

	"github.com/facturave/facturave-api/internal/domain/entity"
)

// ExchangeRateRepository define el puerto de persistencia para la tasa BCV diaria.
type ExchangeRateRepository interface {
	// Upsert inserta o reemplaza la tasa de una fecha y moneda.
	Upsert(rate *entity.ExchangeRate) error
	// GetLatest devuelve la última tasa registrada para la moneda, o nil si no hay.
	GetLatest(moneda string) (*entity.ExchangeRate, error)
	GetByDate(moneda string, fecha time.Time) (*entity.ExchangeRate, error)
}
