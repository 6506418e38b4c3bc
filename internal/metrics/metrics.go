package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Tool call outcomes recorded in the status label
const (
	StatusOK          = "ok"
	StatusToolError   = "tool_error"
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
)

// Metrics holds the Prometheus collectors for tool calls
type Metrics struct {
	registry *prometheus.Registry

	ToolCalls        *prometheus.CounterVec
	ToolDuration     *prometheus.HistogramVec
	Evaluations      *prometheus.CounterVec
	UndefinedResults *prometheus.CounterVec
	Reconfigurations prometheus.Counter

	startTime time.Time
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),

		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculatte_tool_calls_total",
				Help: "Total number of tool calls",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calculatte_tool_duration_seconds",
				Help:    "Tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool"},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculatte_function_evaluations_total",
				Help: "Total number of function evaluations performed by tool calls",
			},
			[]string{"tool"},
		),
		UndefinedResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculatte_undefined_results_total",
				Help: "Total number of results that do not exist (NaN)",
			},
			[]string{"tool"},
		),
		Reconfigurations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "calculatte_engine_reconfigurations_total",
				Help: "Total number of accuracy reconfigurations",
			},
		),
	}

	m.registry.MustRegister(
		m.ToolCalls,
		m.ToolDuration,
		m.Evaluations,
		m.UndefinedResults,
		m.Reconfigurations,
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "calculatte_uptime_seconds",
				Help: "Seconds since the server started",
			},
			func() float64 { return time.Since(m.startTime).Seconds() },
		),
		collectors.NewGoCollector(),
	)

	return m
}

// Registry returns the registry holding every collector
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveToolCall records the outcome and duration of one tool call
func (m *Metrics) ObserveToolCall(tool, status string, duration time.Duration) {
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// AddEvaluations records how many times a tool call evaluated its functions
func (m *Metrics) AddEvaluations(tool string, n int64) {
	if n > 0 {
		m.Evaluations.WithLabelValues(tool).Add(float64(n))
	}
}

// ObserveUndefined records a result that does not exist
func (m *Metrics) ObserveUndefined(tool string) {
	m.UndefinedResults.WithLabelValues(tool).Inc()
}

// Handler returns the /metrics exposition handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", zap.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown metrics server: %w", err)
		}
		return nil
	}
}
