// Package metrics exposes Prometheus collectors for the entitlement engine and
// the HTTP layer.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atelier-community/atelier/internal/domain/entitlement"
)

const namespace = "atelier"

// Metrics holds every collector. It implements the entitlement engine's
// Recorder interface.
type Metrics struct {
	gatherer prometheus.Gatherer

	resolutions     *prometheus.CounterVec
	storeFallbacks  *prometheus.CounterVec
	failClosed      *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		gatherer: reg,
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "entitlement",
				Name:      "resolutions_total",
				Help:      "Resolved entitlements by feature and status",
			},
			[]string{"feature", "status"},
		),
		storeFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "entitlement",
				Name:      "store_fallbacks_total",
				Help:      "Level config reads answered from the static table after a store failure",
			},
			[]string{"operation"},
		),
		failClosed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "entitlement",
				Name:      "fail_closed_total",
				Help:      "Resolutions denied because evaluation failed",
			},
			[]string{"feature"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	collectors := []prometheus.Collector{
		m.resolutions,
		m.storeFallbacks,
		m.failClosed,
		m.requestsTotal,
		m.requestDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) ObserveResolution(feature entitlement.Feature, status entitlement.Status) {
	m.resolutions.WithLabelValues(feature.String(), status.String()).Inc()
}

func (m *Metrics) IncStoreFallback(operation string) {
	m.storeFallbacks.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncFailClosed(feature entitlement.Feature) {
	m.failClosed.WithLabelValues(feature.String()).Inc()
}

// ObserveRequest records one HTTP request. path must be the route template,
// not the raw URL.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.requestsTotal.WithLabelValues(method, path, code).Inc()
	m.requestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
