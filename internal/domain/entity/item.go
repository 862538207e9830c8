package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

// Item representa un producto o servicio del catálogo de facturación.
// Precio en bolívares; el precio en divisa se deriva con la tasa BCV del día.
type Item struct {
	ID          string
	CompanyID   string
	Codigo      string // código único por empresa (PLU)
	Name        string
	Description string
	Price       decimal.Decimal  // precio de venta en Bs
	CodigoIVA   fiscal.CodigoIVA // G, R, A, E, NS
	Alicuota    decimal.Decimal  // porcentaje; cero usa la alícuota del código
	UnitMeasure string           // UND, KG, LT, HR...
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
