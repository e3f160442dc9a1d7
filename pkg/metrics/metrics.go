package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Rate limit metrics
	RateLimitRejections *prometheus.CounterVec

	// Job metrics
	JobsTotal   *prometheus.CounterVec
	JobDuration *prometheus.HistogramVec

	// Business metrics
	BulkItemsTotal         *prometheus.CounterVec
	MirrorFailures         *prometheus.CounterVec
	AttributionRowsWritten prometheus.Counter
}

// New registra as métricas no registerer informado.
// Testes usam prometheus.NewRegistry() para não colidir com o registro global.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExternalAPICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "method", "status"},
		),

		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api", "method"},
		),

		ExternalAPIFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),

		RateLimitRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_rejections_total",
				Help: "Total number of calls rejected by the local rate limiter",
			},
			[]string{"scope"},
		),

		JobsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduled_jobs_total",
				Help: "Total number of scheduled job runs",
			},
			[]string{"job", "status"},
		),

		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scheduled_job_duration_seconds",
				Help:    "Scheduled job duration in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		),

		BulkItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bulk_items_total",
				Help: "Total number of entities processed by bulk operations",
			},
			[]string{"operation", "result"},
		),

		MirrorFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "remote_mirror_failures_total",
				Help: "Total number of local changes that could not be mirrored to the platform",
			},
			[]string{"operation"},
		),

		AttributionRowsWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "attribution_counters_written_total",
				Help: "Total number of attribution counter rows written by the rollup",
			},
		),
	}
}

// NewNop cria métricas em um registro descartável
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) RecordExternalAPICall(api, method, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, method, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api, method).Observe(duration.Seconds())
}

func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

func (m *Metrics) RecordJob(job, status string, duration time.Duration) {
	m.JobsTotal.WithLabelValues(job, status).Inc()
	m.JobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

func (m *Metrics) RecordBulkItems(operation string, updated, skipped int) {
	m.BulkItemsTotal.WithLabelValues(operation, "updated").Add(float64(updated))
	m.BulkItemsTotal.WithLabelValues(operation, "skipped").Add(float64(skipped))
}
