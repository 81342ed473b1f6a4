package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/flip-forecast/pkg/score"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one handler. Each handler owns
// its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Evaluations     *prometheus.CounterVec
	EvaluationTime  prometheus.Histogram
	NetProfit       prometheus.Histogram
}

// NewMetrics creates and registers the API collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipforecast_http_requests_total",
				Help: "Total number of API requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flipforecast_http_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"route"},
		),

		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flipforecast_deal_evaluations_total",
				Help: "Total number of deals evaluated by risk tier",
			},
			[]string{"risk"},
		),

		EvaluationTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flipforecast_deal_evaluation_seconds",
				Help:    "Time spent evaluating a single deal",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),

		NetProfit: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flipforecast_deal_net_profit_dollars",
				Help:    "Net profit of evaluated deals",
				Buckets: []float64{-50000, -10000, 0, 10000, 25000, 50000, 100000, 200000},
			},
		),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.Evaluations,
		m.EvaluationTime,
		m.NetProfit,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveEvaluation records one deal evaluation.
func (m *Metrics) ObserveEvaluation(tier score.Tier, netProfit float64, elapsed time.Duration) {
	m.Evaluations.WithLabelValues(string(tier)).Inc()
	m.EvaluationTime.Observe(elapsed.Seconds())
	m.NetProfit.Observe(netProfit)
}

// unmatchedRoute labels requests that no route handled.
const unmatchedRoute = "unmatched"

// Middleware counts requests by their chi route pattern so path parameters
// and unknown paths do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
