package entity

import (
	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

// InvoiceLine representa una línea de detalle de un documento fiscal.
// BaseImponible y MontoIVA se calculan con fiscal.Calculadora al crear la
// factura y quedan congelados al persistir.
type InvoiceLine struct {
	ID             string
	InvoiceID      string
	ItemID         string
	Codigo         string // PLU del ítem al momento de facturar
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	DescuentoPct   decimal.Decimal // 0..100
	CodigoIVA      fiscal.CodigoIVA
	Alicuota       decimal.Decimal // porcentaje aplicado
	BaseImponible  decimal.Decimal
	MontoIVA       decimal.Decimal
}
