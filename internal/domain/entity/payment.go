package entity

import (
	"github.com/shopspring/decimal"

	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

// InvoicePayment representa una entrada de pago de un documento fiscal.
// AplicaIGTF y MontoIGTF son derivados de la clasificación del método
// (fiscal.Calculadora) y quedan congelados al persistir.
type InvoicePayment struct {
	ID          string
	InvoiceID   string
	Metodo      fiscal.MetodoPago
	Monto       decimal.Decimal // en bolívares
	MontoDivisa decimal.Decimal // referencia en divisa, cero si no aplica
	AplicaIGTF  bool
	MontoIGTF   decimal.Decimal
}
