// Package metrics exposes command and HTTP metrics in Prometheus format.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Command outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// durationBuckets are in seconds. Commands run in memory, so the low end is
// finer than the HTTP defaults.
var durationBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.010, 0.025, 0.050, 0.100, 0.250, 0.500, 1.0, 2.5,
}

// Metrics owns a private registry so tests and multiple sessions never
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	patients        prometheus.Gauge
	saves           *prometheus.CounterVec

	httpDuration   *prometheus.HistogramVec
	activeRequests prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uninurse",
			Name:      "commands_total",
			Help:      "Commands executed, by command word and outcome.",
		}, []string{"command", "outcome"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uninurse",
			Name:      "command_duration_seconds",
			Help:      "Time spent parsing, executing and persisting a command.",
			Buckets:   durationBuckets,
		}, []string{"command"}),
		patients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uninurse",
			Name:      "patients",
			Help:      "Patients currently in the book.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uninurse",
			Name:      "book_saves_total",
			Help:      "Book saves, by storage driver and result.",
		}, []string{"driver", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uninurse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uninurse",
			Subsystem: "http",
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	m.registry.MustRegister(
		m.commands,
		m.commandDuration,
		m.patients,
		m.saves,
		m.httpDuration,
		m.activeRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveCommand records one command. A nil receiver is a no-op.
func (m *Metrics) ObserveCommand(command, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	if command == "" {
		command = "unknown"
	}
	m.commands.WithLabelValues(command, outcome).Inc()
	m.commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (m *Metrics) SetPatients(n int) {
	if m == nil {
		return
	}
	m.patients.Set(float64(n))
}

func (m *Metrics) ObserveSave(driver string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saves.WithLabelValues(driver, result).Inc()
}

// Middleware records HTTP request latency keyed by the matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.activeRequests.Inc()
			defer m.activeRequests.Dec()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)
			m.httpDuration.WithLabelValues(c.Request().Method, route, status).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
