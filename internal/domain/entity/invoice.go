package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un documento fiscal.
// BORRADOR: guardada para reservar ID, editable, sin número ni número de control.
// EMITIDA: numerada y con número de control asignado; elegible para exportar
// el documento electrónico y para ser referenciada por notas.
// ANULADA: emitida y luego anulada con motivo; conserva su numeración.
const (
	EstadoBorrador = "BORRADOR"
	EstadoEmitida  = "EMITIDA"
	EstadoAnulada  = "ANULADA"
)

// Tipos de documento fiscal.
const (
	TipoFactura     = "FACTURA"
	TipoNotaDebito  = "NOTA_DEBITO"
	TipoNotaCredito = "NOTA_CREDITO"
)

// Invoice representa la cabecera de un documento fiscal (factura o nota).
// Numero y NumeroControl se asignan en la emisión, nunca en el borrador.
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	Tipo          string // FACTURA, NOTA_DEBITO, NOTA_CREDITO
	Estado        string // BORRADOR, EMITIDA, ANULADA
	Numero        string // correlativo por empresa, asignado al emitir
	NumeroControl string // de la serie autorizada (imprenta digital), asignado al emitir
	Moneda        string // VES
	Fecha         time.Time
	FechaEmision  *time.Time // nil mientras sea borrador

	Subtotal  decimal.Decimal // suma de bases imponibles
	TotalIVA  decimal.Decimal
	TotalIGTF decimal.Decimal
	Total     decimal.Decimal // Subtotal + TotalIVA + TotalIGTF

	TasaCambio decimal.Decimal // tasa BCV congelada al emitir (Bs/USD)
	FechaTasa  time.Time       // fecha de la tasa aplicada
	TotalUSD   decimal.Decimal // Total / TasaCambio

	// Documento afectado: solo para notas de crédito/débito.
	AfectaSerie  string
	AfectaNumero string
	AfectaFecha  *time.Time
	AfectaMonto  decimal.Decimal
	MotivoNota   string

	MotivoAnulacion string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EsNota indica si el documento es una nota de crédito o débito.
func (i *Invoice) EsNota() bool {
	return i.Tipo == TipoNotaDebito || i.Tipo == TipoNotaCredito
}
