package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tasklist/internal/tasklist"
)

// Metrics groups all Prometheus instruments used by the page server.
type Metrics struct {
	registry *prometheus.Registry

	Fetches       *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	TasksLoaded   prometheus.Gauge
	PageRequests  *prometheus.CounterVec
}

// NewMetrics registers the instruments on a fresh registry, so several
// instances (one per test) never collide.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Task fetches by outcome phase.",
		}, []string{"outcome"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent on the task fetch.",
			Buckets:   prometheus.DefBuckets,
		}),
		TasksLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_loaded",
			Help:      "Number of tasks held after the fetch.",
		}),
		PageRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_requests_total",
			Help:      "Served requests by route and rendered phase.",
		}, []string{"route", "phase"}),
	}
}

// ObserveFetch implements tasklist.Observer.
func (m *Metrics) ObserveFetch(phase tasklist.Phase, elapsed time.Duration, tasks int) {
	m.Fetches.WithLabelValues(phase.String()).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
	m.TasksLoaded.Set(float64(tasks))
}

// ObserveRequest counts one served request.
func (m *Metrics) ObserveRequest(route string, phase tasklist.Phase) {
	m.PageRequests.WithLabelValues(route, phase.String()).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
