package metrics

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry            *prometheus.Registry
	ListingsSubmitted   prometheus.Counter
	ListingTransitions  *prometheus.CounterVec // from, to, kind
	ListingsDeleted     prometheus.Counter
	ReportsFiled        prometheus.Counter
	ReportsResolved     *prometheus.CounterVec // status
	ImageReleaseFailure prometheus.Counter
	APIErrorsTotal      *prometheus.CounterVec   // route, code
	APILatency          *prometheus.HistogramVec // route, method
}

// NewMetricsManager creates and registers all collectors. serviceName becomes the namespace.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()
	ns := sanitize(serviceName)

	m := &MetricsManager{
		Registry: registry,
		ListingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "listings_submitted_total",
			Help:      "Total number of listings submitted for moderation.",
		}),
		ListingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "listing_transitions_total",
			Help:      "Listing status transitions by source, target and kind.",
		}, []string{"from", "to", "kind"}),
		ListingsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "listings_deleted_total",
			Help:      "Total number of listings deleted by their owners.",
		}),
		ReportsFiled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reports_filed_total",
			Help:      "Total number of abuse reports filed.",
		}),
		ReportsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reports_resolved_total",
			Help:      "Abuse reports closed by administrators, by resolution.",
		}, []string{"status"}),
		ImageReleaseFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "image_release_failures_total",
			Help:      "Best-effort image releases that failed.",
		}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "api_errors_total",
			Help:      "HTTP responses with status >= 400 by route and code.",
		}, []string{"route", "code"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "api_request_latency_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	registry.MustRegister(
		m.ListingsSubmitted,
		m.ListingTransitions,
		m.ListingsDeleted,
		m.ReportsFiled,
		m.ReportsResolved,
		m.ImageReleaseFailure,
		m.APIErrorsTotal,
		m.APILatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func sanitize(ns string) string {
	out := []byte(ns)
	for i, c := range out {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			out[i] = '_'
		}
	}
	return string(out)
}

// StartMetricsServer serves /metrics from registry on port. An empty port disables it.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
