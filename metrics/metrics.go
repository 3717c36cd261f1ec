package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	aggregation       prometheus.Histogram
	aggregationErrors prometheus.Counter
	reviewsSubmitted  *prometheus.CounterVec
	helpfulVotes      *prometheus.CounterVec
}

// NewMetrics registers every collector on reg, so tests can use a fresh one.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		aggregation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "spot_aggregation_duration_seconds",
			Help:    "Histogram of full study spot aggregation durations.",
			Buckets: prometheus.DefBuckets,
		}),
		aggregationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spot_aggregation_errors_total",
			Help: "Total study spot aggregations aborted by a store error.",
		}),
		reviewsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reviews_submitted_total",
			Help: "Total review submissions by outcome (ok, invalid, error).",
		}, []string{"outcome"}),
		helpfulVotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_helpful_votes_total",
			Help: "Total helpful votes by outcome (ok, duplicate, error).",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.aggregation,
		m.aggregationErrors,
		m.reviewsSubmitted,
		m.helpfulVotes,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records count and latency for next under a fixed route label.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

// Middleware labels requests with the matched mux path template.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.WrapHandler(route, next).ServeHTTP(w, r)
	})
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAggregation(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.aggregation.Observe(duration.Seconds())
	if err != nil {
		m.aggregationErrors.Inc()
	}
}

func (m *Metrics) ReviewSubmitted(outcome string) {
	if m == nil {
		return
	}
	m.reviewsSubmitted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HelpfulVote(outcome string) {
	if m == nil {
		return
	}
	m.helpfulVotes.WithLabelValues(outcome).Inc()
}
