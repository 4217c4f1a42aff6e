package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for sync operation counters.
const (
	ResultSuccess       = "success"
	ResultFailure       = "failure"
	ResultNotApplicable = "not_applicable"
)

// Metrics holds the Prometheus instruments of the sync layer. A nil
// *Metrics is valid and records nothing, which keeps tests quiet.
type Metrics struct {
	syncOperations   *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// New registers the sync metrics on the default registry
func New() *Metrics {
	return &Metrics{
		syncOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "webflow_sync_operations_total",
			Help: "Completed sync operations by resource kind and result",
		}, []string{"resource", "result"}),
		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "webflow_upstream_request_duration_seconds",
			Help:    "Duration of Webflow API requests by resource kind",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
	}
}

// SyncCompleted records the outcome of one sync operation
func (m *Metrics) SyncCompleted(resource string, result string) {
	if m == nil {
		return
	}
	m.syncOperations.WithLabelValues(resource, result).Inc()
}

// ObserveUpstream records the duration of one Webflow API request
func (m *Metrics) ObserveUpstream(resource string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(resource).Observe(duration.Seconds())
}
