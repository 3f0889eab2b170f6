package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for container number validation and imports.
type Metrics struct {
	// Single checks by outcome: "valid", "format", "check_digit"
	Checks *prometheus.CounterVec

	// Import rows by outcome, same labels as Checks
	ImportRows *prometheus.CounterVec

	// Report deliveries by result: "delivered", "retried", "dead_lettered", "dropped"
	Deliveries *prometheus.CounterVec

	// Rows per processed import batch
	BatchSize prometheus.Histogram
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxcheck_checks_total",
			Help: "Total container number checks by outcome",
		}, []string{"outcome"}),

		ImportRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxcheck_import_rows_total",
			Help: "Total imported rows validated by outcome",
		}, []string{"outcome"}),

		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxcheck_report_deliveries_total",
			Help: "Import report deliveries by result",
		}, []string{"result"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "boxcheck_import_batch_rows",
			Help:    "Number of rows per processed import batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		}),
	}
}

// IncrementCheck records the outcome of a single check.
func (m *Metrics) IncrementCheck(outcome string) {
	if m != nil {
		m.Checks.WithLabelValues(outcome).Inc()
	}
}

// AddImportRows records n import rows with the given outcome.
func (m *Metrics) AddImportRows(outcome string, n int) {
	if m != nil && n > 0 {
		m.ImportRows.WithLabelValues(outcome).Add(float64(n))
	}
}

// IncrementDelivery records a report delivery result.
func (m *Metrics) IncrementDelivery(result string) {
	if m != nil {
		m.Deliveries.WithLabelValues(result).Inc()
	}
}

// ObserveBatchSize records the row count of a processed batch.
func (m *Metrics) ObserveBatchSize(rows int) {
	if m != nil {
		m.BatchSize.Observe(float64(rows))
	}
}
