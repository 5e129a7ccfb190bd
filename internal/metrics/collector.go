// Package metrics provides Prometheus metrics for curloop.
//
// The collector tracks per-tick outcomes; the optional HTTP server exposes
// them on /metrics for scraping during long-running loops.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/efenow/curloop/internal/action"
)

// Collector manages the Prometheus metrics for one loop run.
type Collector struct {
	info               *prometheus.GaugeVec
	iterationsTotal    prometheus.Counter
	successesTotal     prometheus.Counter
	failuresTotal      *prometheus.CounterVec
	invocationDuration prometheus.Histogram
	lastExitCode       prometheus.Gauge
	elapsedSeconds     prometheus.Gauge

	startTime time.Time
}

// CollectorConfig holds configuration for the collector.
type CollectorConfig struct {
	Version string
	Action  string
	Command string
}

// NewCollector creates a collector registered on the default registry.
func NewCollector(cfg CollectorConfig) *Collector {
	return NewCollectorWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector with a custom registry.
// Useful for testing.
func NewCollectorWithRegistry(cfg CollectorConfig, registry prometheus.Registerer) *Collector {
	c := &Collector{
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "curloop_info",
				Help: "Information about the loop (value always 1)",
			},
			[]string{"version", "action", "command"},
		),
		iterationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "curloop_iterations_total",
				Help: "Total invocations attempted",
			},
		),
		successesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "curloop_successes_total",
				Help: "Invocations that exited zero",
			},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "curloop_failures_total",
				Help: "Failed invocations by reason",
			},
			[]string{"reason"}, // "failure", "timeout", "invocation_error"
		),
		invocationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "curloop_invocation_duration_seconds",
				Help: "Wall-clock duration of each invocation",
				Buckets: []float64{
					0.005, 0.01, 0.025, 0.05, 0.1,
					0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0,
				},
			},
		),
		lastExitCode: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "curloop_last_exit_code",
				Help: "Exit code of the most recent invocation",
			},
		),
		elapsedSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "curloop_elapsed_seconds",
				Help: "Seconds since the loop started",
			},
		),
		startTime: time.Now(),
	}

	registry.MustRegister(
		c.info,
		c.iterationsTotal,
		c.successesTotal,
		c.failuresTotal,
		c.invocationDuration,
		c.lastExitCode,
		c.elapsedSeconds,
	)

	c.info.WithLabelValues(cfg.Version, cfg.Action, cfg.Command).Set(1)

	return c
}

// RecordOutcome updates the metrics from one classified invocation outcome.
func (c *Collector) RecordOutcome(o action.Outcome) {
	c.iterationsTotal.Inc()
	c.invocationDuration.Observe(o.Duration.Seconds())
	c.lastExitCode.Set(float64(o.ExitCode))
	c.elapsedSeconds.Set(time.Since(c.startTime).Seconds())

	switch o.Status {
	case action.StatusSuccess:
		c.successesTotal.Inc()
	case action.StatusTimeout:
		c.failuresTotal.WithLabelValues("timeout").Inc()
	case action.StatusError:
		c.failuresTotal.WithLabelValues("invocation_error").Inc()
	default:
		c.failuresTotal.WithLabelValues("failure").Inc()
	}
}
