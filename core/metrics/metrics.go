package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bom_reconciler"

// Metrics groups every collector the reconciler updates.
type Metrics struct {
	Registry *prometheus.Registry

	// SyncRuns counts finished runs by mode and terminal status.
	SyncRuns *prometheus.CounterVec
	// SyncItems counts scanned, synced and failed items.
	SyncItems *prometheus.CounterVec
	// SyncBatchRetries counts batch fetch retries.
	SyncBatchRetries prometheus.Counter
	// DifferencesFound counts detected differences by severity.
	DifferencesFound *prometheus.CounterVec
	// Resolutions counts resolve/ignore attempts by action and outcome, plus
	// committed transitions whose event delivery failed (outcome publish_failed).
	Resolutions *prometheus.CounterVec
	// DiffDuration observes BOM comparison latency.
	DiffDuration prometheus.Histogram
}

// New creates a Metrics value with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Finished sync runs by mode and terminal status.",
		}, []string{"mode", "status"}),
		SyncItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_items_total",
			Help:      "Items processed by sync runs.",
		}, []string{"outcome"}),
		SyncBatchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_batch_retries_total",
			Help:      "Authoritative batch fetch retries.",
		}),
		DifferencesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "differences_found_total",
			Help:      "Detected field differences by severity.",
		}, []string{"severity"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alignment_resolutions_total",
			Help:      "Alignment resolve and ignore attempts by outcome; publish_failed counts undelivered events.",
		}, []string{"action", "outcome"}),
		DiffDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bom_diff_duration_seconds",
			Help:      "BOM comparison latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.SyncRuns,
		m.SyncItems,
		m.SyncBatchRetries,
		m.DifferencesFound,
		m.Resolutions,
		m.DiffDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// Register mounts GET /metrics on r.
func (m *Metrics) Register(r fiber.Router) {
	r.Get("/metrics", m.Handler())
}
