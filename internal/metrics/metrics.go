package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

const namespace = "agrokalk"

// CatalogCounter is the subset of catalog.Store needed to report catalog size.
type CatalogCounter interface {
	CountByProducer(ctx context.Context) map[catalog.Producer]int
}

// Metrics owns a registry with the service's collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
	quotesTotal          *prometheus.CounterVec
	importsTotal         *prometheus.CounterVec
	importedRecords      *prometheus.CounterVec
}

// catalogCollector reports catalog size per producer on each scrape.
type catalogCollector struct {
	catalog CatalogCounter
	desc    *prometheus.Desc
}

func (c *catalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *catalogCollector) Collect(ch chan<- prometheus.Metric) {
	for producer, n := range c.catalog.CountByProducer(context.Background()) {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), string(producer))
	}
}

// New registers the runtime, HTTP and application collectors.
func New(counter CatalogCounter) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route, and status code.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed.",
		}),
		quotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quotes_total",
				Help:      "Quote calculations by producer and outcome.",
			},
			[]string{"producer", "outcome"},
		),
		importsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imports_total",
				Help:      "Catalog imports by producer, source, and outcome.",
			},
			[]string{"producer", "source", "outcome"},
		),
		importedRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imported_records_total",
				Help:      "Machine records created by imports.",
			},
			[]string{"producer"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,

		m.quotesTotal,
		m.importsTotal,
		m.importedRecords,
	)
	if counter != nil {
		m.registry.MustRegister(&catalogCollector{
			catalog: counter,
			desc: prometheus.NewDesc(
				prometheus.BuildFQName(namespace, "", "catalog_machines"),
				"Number of catalog records, partitioned by producer.",
				[]string{"producer"},
				nil,
			),
		})
	}
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveQuote counts a quote calculation.
func (m *Metrics) ObserveQuote(producer catalog.Producer, err error) {
	m.quotesTotal.WithLabelValues(string(producer), outcome(err)).Inc()
}

// ObserveImport counts an import attempt; it satisfies importer.Observer.
func (m *Metrics) ObserveImport(producer catalog.Producer, source string, count int, err error) {
	m.importsTotal.WithLabelValues(string(producer), source, outcome(err)).Inc()
	if count > 0 {
		m.importedRecords.WithLabelValues(string(producer)).Add(float64(count))
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// responseWriter wraps http.ResponseWriter to capture the response status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records HTTP metrics. The path label is the chi route pattern
// so its cardinality stays bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.httpRequestsInFlight.Inc()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			m.httpRequestsInFlight.Dec()
			pattern := routePattern(r)
			m.httpRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rw.status)).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(rw, r)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
