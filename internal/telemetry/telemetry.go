// Package telemetry provides OpenTelemetry instrumentation for the post
// generator service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "post-generator"

// Metrics holds all post generator Prometheus metrics
type Metrics struct {
	// Generation metrics
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	PostsGenerated     prometheus.Counter
	ValidationFailures prometheus.Counter
	SubmitsRejected    prometheus.Counter

	// Session metrics
	SessionsCreated prometheus.Counter
	ActiveSessions  prometheus.Gauge

	// Catalog metrics
	CatalogLoadFailures prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}

	m.GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postgen_generations_total",
		Help: "Total generation requests settled, by result (success, empty, remote_error, transport_failure)",
	}, []string{"result"})

	m.GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "postgen_generation_duration_seconds",
		Help:    "Wall time of a single generation call",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	})

	m.PostsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postgen_posts_generated_total",
		Help: "Total individual posts returned by successful generations",
	})

	m.ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postgen_validation_failures_total",
		Help: "Submits rejected because the product draft failed validation",
	})

	m.SubmitsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postgen_submits_rejected_total",
		Help: "Submits rejected because a generation was already in flight",
	})

	m.SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postgen_sessions_created_total",
		Help: "Total workflow sessions created",
	})

	m.ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "postgen_active_sessions",
		Help: "Currently live workflow sessions",
	})

	m.CatalogLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postgen_catalog_load_failures_total",
		Help: "Platform catalog loads that fell back to an empty catalog",
	})

	return m
}

// StartGeneration opens a span for one generation call.
func (p *Provider) StartGeneration(ctx context.Context, productName string, postCount int) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, "generate_posts", trace.WithAttributes(
		attribute.String("product.name", productName),
		attribute.Int("generation.count", postCount),
	))
}

// RecordGeneration records the settlement of one generation call.
func (p *Provider) RecordGeneration(ctx context.Context, result string, posts int, duration time.Duration) {
	p.Metrics.GenerationsTotal.WithLabelValues(result).Inc()
	p.Metrics.GenerationDuration.Observe(duration.Seconds())
	if posts > 0 {
		p.Metrics.PostsGenerated.Add(float64(posts))
	}
}

// RecordValidationFailure counts a submit rejected by draft validation.
func (p *Provider) RecordValidationFailure(ctx context.Context) {
	p.Metrics.ValidationFailures.Inc()
}

// RecordSubmitRejected counts a submit rejected while another was in flight.
func (p *Provider) RecordSubmitRejected(ctx context.Context) {
	p.Metrics.SubmitsRejected.Inc()
}

// RecordSessionCreated counts a new session and bumps the live gauge.
func (p *Provider) RecordSessionCreated(ctx context.Context) {
	p.Metrics.SessionsCreated.Inc()
	p.Metrics.ActiveSessions.Inc()
}

// RecordSessionClosed drops the live session gauge.
func (p *Provider) RecordSessionClosed(ctx context.Context) {
	p.Metrics.ActiveSessions.Dec()
}

// RecordCatalogLoadFailure counts a catalog load that fell back to empty.
func (p *Provider) RecordCatalogLoadFailure(ctx context.Context) {
	p.Metrics.CatalogLoadFailures.Inc()
}
