// Package metrics holds the Prometheus instruments of the service. A nil
// *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcomes used as label values.
const (
	OutcomeOK               = "ok"
	OutcomeConnectionFailed = "connection_failed"
	OutcomeQueryFailed      = "query_failed"
	OutcomeUnexpectedValue  = "unexpected_value"
	OutcomeDecodeRejected   = "decode_rejected"
)

// Collector owns its registry so several collectors can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	Queries        *prometheus.CounterVec
	QueryDuration  *prometheus.HistogramVec
	RecordsDecoded *prometheus.CounterVec
	RecordsSkipped *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// NewCollector creates and registers every instrument under namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "repository",
				Name:      "queries_total",
				Help:      "Repository queries by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "repository",
				Name:      "query_duration_seconds",
				Help:      "Repository query duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
		RecordsDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "repository",
				Name:      "records_decoded_total",
				Help:      "Nodes decoded into entities",
			},
			[]string{"entity"},
		),
		RecordsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "repository",
				Name:      "records_skipped_total",
				Help:      "Nodes skipped by the lenient decode policy",
			},
			[]string{"entity"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		c.Queries,
		c.QueryDuration,
		c.RecordsDecoded,
		c.RecordsSkipped,
		c.HTTPRequests,
		c.HTTPDuration,
	)
	return c
}

// ObserveQuery records the outcome of one repository query.
func (c *Collector) ObserveQuery(entity, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Queries.WithLabelValues(entity, outcome).Inc()
	c.QueryDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
}

// AddDecoded counts decoded records.
func (c *Collector) AddDecoded(entity string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.RecordsDecoded.WithLabelValues(entity).Add(float64(n))
}

// AddSkipped counts records dropped by the lenient policy.
func (c *Collector) AddSkipped(entity string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.RecordsSkipped.WithLabelValues(entity).Add(float64(n))
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
