// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ledger operations.
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeNotFound      = "not_found"
	OutcomeDuplicate     = "duplicate"
	OutcomeNotRegistered = "not_registered"
	OutcomeError         = "error"
)

// Recorder is what the services and middleware depend on.
type Recorder interface {
	RecordRegistration(outcome string)
	RecordDeregistration(outcome string)
	RecordDanglingSkipped(kind string)
	RecordCascadeDeleted(kind string, count int64)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(route string, duration time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	registrations   *prometheus.CounterVec
	deregistrations *prometheus.CounterVec
	dangling        *prometheus.CounterVec
	cascaded        *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// NewCollector builds a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_events_registrations_total",
			Help: "Register calls by outcome",
		}, []string{"outcome"}),
		deregistrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_events_deregistrations_total",
			Help: "Deregister calls by outcome",
		}, []string{"outcome"}),
		dangling: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_events_dangling_registrations_skipped_total",
			Help: "Registrations skipped in listings because the referenced record is gone",
		}, []string{"kind"}),
		cascaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_events_cascade_deleted_registrations_total",
			Help: "Registrations removed when their event or user was deleted",
		}, []string{"kind"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_events_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campus_events_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.registrations,
		c.deregistrations,
		c.dangling,
		c.cascaded,
		c.httpStatus,
		c.latency,
	)

	return c
}

func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordDeregistration(outcome string) {
	c.deregistrations.WithLabelValues(outcome).Inc()
}

// RecordDanglingSkipped counts one skipped registration; kind is "event" or "user".
func (c *Collector) RecordDanglingSkipped(kind string) {
	c.dangling.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordCascadeDeleted(kind string, count int64) {
	c.cascaded.WithLabelValues(kind).Add(float64(count))
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestLatency(route string, duration time.Duration) {
	c.latency.WithLabelValues(route).Observe(duration.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRegistration(string)                  {}
func (Nop) RecordDeregistration(string)                {}
func (Nop) RecordDanglingSkipped(string)               {}
func (Nop) RecordCascadeDeleted(string, int64)         {}
func (Nop) RecordHTTPStatus(int)                       {}
func (Nop) RecordRequestLatency(string, time.Duration) {}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
