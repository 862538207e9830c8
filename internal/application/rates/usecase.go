// Package rates administra la tasa de cambio oficial BCV que se congela en
// cada documento al emitirlo.
package rates

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/application/dto"
	"github.com/facturave/facturave-api/internal/domain"
	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/repository"
	"github.com/facturave/facturave-api/internal/observability/metrics"
	"github.com/facturave/facturave-api/pkg/logger"
)

// RateUseCase registro y consulta de la tasa BCV diaria.
type RateUseCase struct {
	repo repository.ExchangeRateRepository
	log  *logger.Logger
}

// NewRateUseCase construye el caso de uso.
func NewRateUseCase(repo repository.ExchangeRateRepository, log *logger.Logger) *RateUseCase {
	return &RateUseCase{repo: repo, log: log}
}

// SetRate registra (o reemplaza) la tasa de una fecha. Idempotente por
// (moneda, fecha): cargar dos veces la tasa del día deja una sola fila.
func (uc *RateUseCase) SetRate(in dto.SetRateRequest) (*dto.RateResponse, error) {
	if in.Moneda == "" || !in.Tasa.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := time.Parse("2006-01-02", in.Fecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	rate := &entity.ExchangeRate{
		ID:        uuid.New().String(),
		Moneda:    in.Moneda,
		Tasa:      in.Tasa,
		Fecha:     fecha,
		Fuente:    "BCV",
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Upsert(rate); err != nil {
		return nil, err
	}
	metrics.IncRateUpdate(rate.Moneda)

	uc.log.Info().
		Str("moneda", rate.Moneda).
		Str("fecha", in.Fecha).
		Str("tasa", rate.Tasa.String()).
		Msg("tasa BCV registrada")
	return toRateResponse(rate), nil
}

// GetLatest devuelve la última tasa registrada para la moneda.
func (uc *RateUseCase) GetLatest(moneda string) (*dto.RateResponse, error) {
	rate, err := uc.repo.GetLatest(moneda)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, domain.ErrNotFound
	}
	return toRateResponse(rate), nil
}

func toRateResponse(r *entity.ExchangeRate) *dto.RateResponse {
	return &dto.RateResponse{
		Moneda: r.Moneda,
		Fecha:  r.Fecha.Format("2006-01-02"),
		Tasa:   r.Tasa,
	}
}
