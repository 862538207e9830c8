package dto

import "github.com/shopspring/decimal"

// SetRateRequest body para PUT /api/rates: registra la tasa BCV del día.
type SetRateRequest struct {
	Moneda string          `json:"moneda" validate:"required"` // USD, EUR
	Fecha  string          `json:"fecha" validate:"required"`  // YYYY-MM-DD
	Tasa   decimal.Decimal `json:"tasa"`                       // Bs por unidad de divisa
}

// RateResponse tasa de cambio en respuestas.
type RateResponse struct {
	Moneda string          `json:"moneda"`
	Fecha  string          `json:"fecha"`
	Tasa   decimal.Decimal `json:"tasa"`
}
