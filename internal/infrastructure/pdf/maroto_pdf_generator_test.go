package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/facturave/facturave-api/internal/domain/entity"
	"github.com/facturave/facturave-api/internal/domain/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// La alícuota IGTF impresa sale de los montos congelados del documento, no de
// la configuración vigente: un PDF regenerado años después muestra la tasa
// con la que se emitió.
// ──────────────────────────────────────────────────────────────────────────────

func TestEtiquetaTotalIGTF_DerivadaDeMontosCongelados(t *testing.T) {
	pagos := []*entity.InvoicePayment{
		{Metodo: fiscal.MetodoTransferencia, Monto: decimal.NewFromInt(100)},
		{Metodo: fiscal.MetodoZelle, Monto: decimal.NewFromInt(90), AplicaIGTF: true, MontoIGTF: decimal.RequireFromString("2.70")},
	}

	inv := &entity.Invoice{TotalIGTF: decimal.RequireFromString("2.70")}
	assert.Equal(t, "IGTF (3%):", etiquetaTotalIGTF(inv, pagos))

	// Tasa histórica distinta de la vigente: 2% sobre la misma base.
	inv = &entity.Invoice{TotalIGTF: decimal.RequireFromString("1.80")}
	assert.Equal(t, "IGTF (2%):", etiquetaTotalIGTF(inv, pagos))
}

func TestEtiquetaTotalIGTF_SinIGTFVaSinPorcentaje(t *testing.T) {
	pagos := []*entity.InvoicePayment{
		{Metodo: fiscal.MetodoTransferencia, Monto: decimal.NewFromInt(232)},
	}
	inv := &entity.Invoice{TotalIGTF: decimal.Zero}
	assert.Equal(t, "IGTF:", etiquetaTotalIGTF(inv, pagos))

	// IGTF positivo pero sin pago marcado (dato inconsistente): sin porcentaje.
	inv = &entity.Invoice{TotalIGTF: decimal.NewFromInt(3)}
	assert.Equal(t, "IGTF:", etiquetaTotalIGTF(inv, pagos))
}
