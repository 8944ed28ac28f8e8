// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	CommandsReceived  prometheus.Counter
	CommandsSucceeded prometheus.Counter
	CommandsNoGame    prometheus.Counter
	CommandsFailed    prometheus.Counter
	RepliesFailed     prometheus.Counter
	KeepAliveTicks    prometheus.Counter
	KeepAliveFailures prometheus.Counter

	// Histograms (seconds)
	ScheduleFetchDuration prometheus.Observer

	// Gauges
	SessionConnectedGauge prometheus.Gauge // 1=connected,0=disconnected
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsReceived = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_commands_received_total", Help: "Number of recognized schedule commands received"})
		CommandsSucceeded = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_commands_succeeded_total", Help: "Number of commands answered with a formatted game"})
		CommandsNoGame = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_commands_no_game_total", Help: "Number of commands answered with the no-game message"})
		CommandsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_commands_failed_total", Help: "Number of commands answered with the generic failure message"})
		RepliesFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_replies_failed_total", Help: "Number of replies that could not be delivered"})
		KeepAliveTicks = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_keepalive_ticks_total", Help: "Number of keep-alive ticks executed"})
		KeepAliveFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_keepalive_failures_total", Help: "Number of keep-alive ticks that failed"})
		ScheduleFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "bot_schedule_fetch_duration_seconds", Help: "Schedule fetch duration seconds", Buckets: prometheus.DefBuckets})
		SessionConnectedGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "bot_session_connected", Help: "Discord session connected=1 disconnected=0"})
	})
}

// SetSessionConnected sets the session gauge to 1 if connected else 0.
func SetSessionConnected(connected bool) {
	if SessionConnectedGauge == nil {
		return
	}
	if connected {
		SessionConnectedGauge.Set(1)
	} else {
		SessionConnectedGauge.Set(0)
	}
}

// Inc increments a counter if non-nil, so code paths stay safe before Init.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
