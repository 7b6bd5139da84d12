// Package metrics expone las métricas Prometheus del servicio de schedules.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics usa un registry propio (no el global) para poder armar varios routers en tests.
// Todos los métodos toleran receiver nil.
type Metrics struct {
	registry *prometheus.Registry

	SchedulesWritten    *prometheus.CounterVec
	ValidationFailures  *prometheus.CounterVec
	VersionConflicts    prometheus.Counter
	ItemsPerSchedule    prometheus.Histogram
	CalendarEvents      prometheus.Histogram
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	OutboxPending       prometheus.Gauge
	OutboxPublished     prometheus.Counter
	OutboxFailed        prometheus.Counter
	CircuitBreakerState *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		SchedulesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicine_schedules_written_total",
			Help: "Schedules written, by operation (create, update, delete)",
		}, []string{"op"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medicine_schedule_validation_failures_total",
			Help: "Schedule requests rejected before touching storage",
		}, []string{"reason"}),
		VersionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "medicine_schedule_version_conflicts_total",
			Help: "Updates rejected by the optimistic version check",
		}),
		ItemsPerSchedule: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medicine_schedule_items",
			Help:    "Items per written schedule",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		CalendarEvents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medicine_schedule_calendar_events",
			Help:    "Dose events materialized per calendar request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "route"}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outbox_pending_entries",
			Help: "Pending outbox entries seen in the last poll",
		}),
		OutboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_published_total",
			Help: "Outbox entries published to the broker",
		}),
		OutboxFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_failed_total",
			Help: "Outbox publish attempts that failed",
		}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"name"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SchedulesWritten,
		m.ValidationFailures,
		m.VersionConflicts,
		m.ItemsPerSchedule,
		m.CalendarEvents,
		m.HTTPRequests,
		m.HTTPDuration,
		m.OutboxPending,
		m.OutboxPublished,
		m.OutboxFailed,
		m.CircuitBreakerState,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler sirve /metrics para este registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ScheduleWritten(op string, items int) {
	if m == nil {
		return
	}
	m.SchedulesWritten.WithLabelValues(op).Inc()
	if items > 0 {
		m.ItemsPerSchedule.Observe(float64(items))
	}
}

func (m *Metrics) ValidationFailed(reason string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) VersionConflict() {
	if m == nil {
		return
	}
	m.VersionConflicts.Inc()
}

func (m *Metrics) CalendarServed(events int) {
	if m == nil {
		return
	}
	m.CalendarEvents.Observe(float64(events))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) OutboxBatch(pending int) {
	if m == nil {
		return
	}
	m.OutboxPending.Set(float64(pending))
}

func (m *Metrics) OutboxResult(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.OutboxFailed.Inc()
		return
	}
	m.OutboxPublished.Inc()
}

// BreakerState: 0=closed, 1=open, 2=half-open.
func (m *Metrics) BreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
