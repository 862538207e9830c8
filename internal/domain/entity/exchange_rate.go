package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate es la tasa oficial diaria Bs/divisa publicada por el BCV.
// Una fila por fecha y moneda; la última fila vigente se congela en cada
// factura al emitirla.
type ExchangeRate struct {
	ID        string
	Moneda    string          // USD, EUR
	Tasa      decimal.Decimal // Bs por unidad de divisa
	Fecha     time.Time       // fecha valor (día)
	Fuente    string          // BCV
	CreatedAt time.Time
}
