// Package metrics registra los contadores e histogramas Prometheus del
// servicio de facturación.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "facturave_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	invoicesEmitted *prometheus.CounterVec
	invoicesVoided  prometheus.Counter
	notasCreated    *prometheus.CounterVec

	documentExportTotal   *prometheus.CounterVec
	documentExportLatency *prometheus.HistogramVec

	controlNumbersLeft *prometheus.GaugeVec

	rateUpdates *prometheus.CounterVec
)

// Init registra las métricas. Idempotente: llamadas posteriores son no-op.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		invoicesEmitted = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoices_emitted_total",
				Help: "Total documents emitted by type and result",
			},
			[]string{"tipo", "result"},
		)
		invoicesVoided = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoices_voided_total",
				Help: "Total emitted documents voided",
			},
		)
		notasCreated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notas_created_total",
				Help: "Total credit/debit notes created by type",
			},
			[]string{"tipo"},
		)

		documentExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "document_export_total",
				Help: "Total electronic document exports by format and result",
			},
			[]string{"format", "result"},
		)
		documentExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "document_export_latency_seconds",
				Help:    "Electronic document export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		controlNumbersLeft = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "control_numbers_remaining",
				Help: "Remaining control numbers in the active batch per company",
			},
			[]string{"company_id"},
		)

		rateUpdates = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exchange_rate_updates_total",
				Help: "Total exchange rate registrations by currency",
			},
			[]string{"moneda"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			invoicesEmitted,
			invoicesVoided,
			notasCreated,
			documentExportTotal,
			documentExportLatency,
			controlNumbersLeft,
			rateUpdates,
		)
	})
}

// ObserveHTTPRequest registra una petición HTTP terminada.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, status).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// IncInvoiceEmitted cuenta una emisión por tipo de documento y resultado.
func IncInvoiceEmitted(tipo, result string) {
	if result == "" {
		result = resultSuccess
	}
	if invoicesEmitted != nil {
		invoicesEmitted.WithLabelValues(tipo, result).Inc()
	}
}

// IncInvoiceVoided cuenta una anulación.
func IncInvoiceVoided() {
	if invoicesVoided != nil {
		invoicesVoided.Inc()
	}
}

// IncNotaCreated cuenta una nota creada por tipo.
func IncNotaCreated(tipo string) {
	if notasCreated != nil {
		notasCreated.WithLabelValues(tipo).Inc()
	}
}

// ObserveDocumentExport registra una exportación de documento electrónico.
func ObserveDocumentExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if documentExportTotal != nil {
		documentExportTotal.WithLabelValues(format, result).Inc()
	}
	if documentExportLatency != nil {
		documentExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// SetControlNumbersRemaining publica los números de control que quedan en el
// lote activo de la empresa.
func SetControlNumbersRemaining(companyID string, remaining int64) {
	if remaining < 0 {
		remaining = 0
	}
	if controlNumbersLeft != nil {
		controlNumbersLeft.WithLabelValues(companyID).Set(float64(remaining))
	}
}

// IncRateUpdate cuenta un registro de tasa por moneda.
func IncRateUpdate(moneda string) {
	if rateUpdates != nil {
		rateUpdates.WithLabelValues(moneda).Inc()
	}
}

// Resultados exportados para los llamadores.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
