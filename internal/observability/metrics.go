package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ocean_dashboard"

// Metrics holds the Prometheus counters and histograms for the dashboard.
type Metrics struct {
	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: source={marine,obis,gbif}, outcome={success,error,empty}
	UpstreamDuration *prometheus.HistogramVec // labels: source
	CacheLookups     *prometheus.CounterVec   // labels: source, result={hit,miss}

	// Page metrics.
	PageRenders   *prometheus.CounterVec // labels: page={main,oceanographic,fisheries,molecular,snapshot}
	MockFallbacks *prometheus.CounterVec // labels: domain
	ChartFailures prometheus.Counter
	StoreFailures prometheus.Counter

	SnapshotsPublished prometheus.Counter
	PublishFailures    prometheus.Counter
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.PageRenders,
		m.MockFallbacks,
		m.ChartFailures,
		m.StoreFailures,
		m.SnapshotsPublished,
		m.PublishFailures,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Upstream response cache lookups by source and result.",
		}, []string{"source", "result"}),
		PageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Rendered pages by page name.",
		}, []string{"page"}),
		MockFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mock_fallbacks_total",
			Help:      "Views served from mock data because the live source was unavailable.",
		}, []string{"domain"}),
		ChartFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_failures_total",
			Help:      "Chart configurations that could not be built.",
		}),
		StoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Failed reads or writes of the last-used coordinate.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Snapshots written to the summary topic.",
		}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Snapshots that could not be written to the summary topic.",
		}),
	}
}

// ObserveUpstream records the outcome and duration of one upstream request.
func (m *Metrics) ObserveUpstream(source, outcome string, seconds float64) {
	m.UpstreamRequests.WithLabelValues(source, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(source).Observe(seconds)
}
