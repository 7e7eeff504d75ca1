// Package metrics exposes Prometheus counters for the submission pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics holds the campaign's Prometheus metrics. Only the submission
// pipeline is observed; confirmation tracking is out of scope.
type Metrics struct {
	// TxTotal counts batch entries by outcome: accepted (hash returned) or
	// rejected (per-entry RPC error).
	TxTotal *prometheus.CounterVec

	// BatchesTotal counts dispatched JSON-RPC batch requests.
	BatchesTotal prometheus.Counter

	// AccountsTotal counts per-account campaign outcomes.
	AccountsTotal *prometheus.CounterVec
}

// New creates and registers all campaign metrics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TxTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evmink_transactions_total",
				Help: "Batch entries by submission outcome",
			},
			[]string{"status"},
		),
		BatchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "evmink_batches_total",
				Help: "Dispatched JSON-RPC batch requests",
			},
		),
		AccountsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evmink_accounts_total",
				Help: "Per-account campaign outcomes",
			},
			[]string{"outcome"},
		),
	}
}

// RecordTxAccepted records one batch entry answered with a transaction hash.
func (m *Metrics) RecordTxAccepted() {
	m.TxTotal.WithLabelValues("accepted").Inc()
}

// RecordTxRejected records one batch entry answered with an RPC error.
func (m *Metrics) RecordTxRejected() {
	m.TxTotal.WithLabelValues("rejected").Inc()
}

// RecordBatchDispatched records one dispatched batch request.
func (m *Metrics) RecordBatchDispatched() {
	m.BatchesTotal.Inc()
}

// RecordAccountDone records the outcome of one account's campaign.
func (m *Metrics) RecordAccountDone(failed bool) {
	outcome := "completed"
	if failed {
		outcome = "failed"
	}
	m.AccountsTotal.WithLabelValues(outcome).Inc()
}

// Serve exposes /metrics on addr for the duration of the run. Listener errors
// are logged, not fatal; the campaign itself does not depend on metrics.
func Serve(addr string, reg prometheus.Gatherer, logger logrus.FieldLogger) {
	if reg == nil {
		reg = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.WithField("addr", addr).WithError(err).Warn("metrics listener stopped")
		}
	}()
}
