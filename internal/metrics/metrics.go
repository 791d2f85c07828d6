// Package metrics exposes prometheus collectors for the wizard, the store
// and the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wispgen"

// Metrics holds every collector on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	StepSubmissions *prometheus.CounterVec
	WispsCreated    prometheus.Counter
	WispsDeleted    prometheus.Counter
	RenderDuration  *prometheus.HistogramVec
	RenderFailures  *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

// New registers all collectors, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		StepSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_step_submissions_total",
			Help:      "Wizard step submissions by step and outcome.",
		}, []string{"step", "outcome"}),
		WispsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wisps_created_total",
			Help:      "Records created by completing the wizard.",
		}),
		WispsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wisps_deleted_total",
			Help:      "Records deleted.",
		}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time to assemble and render a document.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"variant"}),
		RenderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Documents that failed to render.",
		}, []string{"variant"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.StepSubmissions,
		m.WispsCreated,
		m.WispsDeleted,
		m.RenderDuration,
		m.RenderFailures,
		m.HTTPRequests,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StepSubmitted implements wizard.Observer.
func (m *Metrics) StepSubmitted(step int, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.StepSubmissions.WithLabelValues(strconv.Itoa(step), outcome).Inc()
}

// WispCreated implements wizard.Observer.
func (m *Metrics) WispCreated() {
	m.WispsCreated.Inc()
}

// WispDeleted counts a deleted record.
func (m *Metrics) WispDeleted() {
	m.WispsDeleted.Inc()
}

// Rendered records one render attempt.
func (m *Metrics) Rendered(variant string, elapsed time.Duration, err error) {
	if err != nil {
		m.RenderFailures.WithLabelValues(variant).Inc()
		return
	}
	m.RenderDuration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

// Middleware counts requests by method and response status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.HTTPRequests, next)
}
