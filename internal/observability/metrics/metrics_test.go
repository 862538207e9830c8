package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Los helpers son no-op antes de Init (nil-guard) y cuentan después. El orden
// de los tests importa: el primero corre antes de registrar las métricas.
// ──────────────────────────────────────────────────────────────────────────────

func TestHelpers_NoOpAntesDeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		ObserveHTTPRequest("GET", "/health", "200", time.Millisecond)
		IncInvoiceEmitted("FACTURA", ResultSuccess)
		IncInvoiceVoided()
		IncNotaCreated("NOTA_CREDITO")
		ObserveDocumentExport("json", ResultSuccess, time.Millisecond)
		SetControlNumbersRemaining("co-1", 10)
		IncRateUpdate("USD")
	})
}

func TestHelpers_CuentanDespuesDeInit(t *testing.T) {
	Init()

	IncInvoiceEmitted("FACTURA", "")
	assert.Equal(t, 1.0, testutil.ToFloat64(invoicesEmitted.WithLabelValues("FACTURA", resultSuccess)),
		"resultado vacío cae en success")
	IncInvoiceEmitted("NOTA_CREDITO", ResultError)
	assert.Equal(t, 1.0, testutil.ToFloat64(invoicesEmitted.WithLabelValues("NOTA_CREDITO", resultError)))

	IncInvoiceVoided()
	assert.Equal(t, 1.0, testutil.ToFloat64(invoicesVoided))

	IncNotaCreated("NOTA_DEBITO")
	assert.Equal(t, 1.0, testutil.ToFloat64(notasCreated.WithLabelValues("NOTA_DEBITO")))

	ObserveDocumentExport("", ResultSuccess, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(documentExportTotal.WithLabelValues("unknown", resultSuccess)),
		"formato vacío se etiqueta unknown")

	SetControlNumbersRemaining("co-1", 42)
	assert.Equal(t, 42.0, testutil.ToFloat64(controlNumbersLeft.WithLabelValues("co-1")))
	SetControlNumbersRemaining("co-1", -5)
	assert.Equal(t, 0.0, testutil.ToFloat64(controlNumbersLeft.WithLabelValues("co-1")),
		"un restante negativo se acota a cero")

	IncRateUpdate("USD")
	assert.Equal(t, 1.0, testutil.ToFloat64(rateUpdates.WithLabelValues("USD")))
}

// Init es idempotente: una segunda llamada no debe re-registrar (panic).
func TestInit_Idempotente(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}
