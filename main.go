// Command dodgers-bot is the main entrypoint for the Dodgers schedule Discord bot.
// It:
//   - Loads configuration and initializes structured logging.
//   - Starts the Discord worker as a background goroutine: session lifecycle,
//     !dodgers command handling, and the periodic keep-alive task.
//   - Exposes a minimal HTTP server with the health endpoint and /metrics, so a
//     single process satisfies the hosting platform's port-binding requirement.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"dodgers-bot/bot"
	"dodgers-bot/config"
	"dodgers-bot/mlb"
	"dodgers-bot/server"
	"dodgers-bot/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) { // text | json
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	// A missing token is fatal at startup: the worker is never started and the
	// process exits non-zero rather than running permanently degraded.
	if err := cfg.Validate(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("dodgers-bot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The two concurrent activities share nothing but the worker's readiness
	// flag: the Discord worker goroutine and the HTTP server goroutine.
	schedule := mlb.NewClient(mlb.Config{
		BaseURL:    cfg.MLBAPIBaseURL,
		TeamID:     cfg.TeamID,
		HTTPClient: &http.Client{Timeout: cfg.FetchTimeout},
	})
	worker := bot.NewWorker(cfg, schedule)

	go func() {
		// Worker death (bad token, refused intent) degrades health to
		// disconnected; the HTTP server keeps serving.
		if err := worker.Run(ctx); err != nil {
			slog.Error("discord worker exited with error", slog.Any("err", err))
		}
	}()

	go func() {
		if err := server.Start(ctx, cfg.HTTPAddr, worker.Connected); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()
	slog.Info("started", slog.String("addr", cfg.HTTPAddr))

	// Block until shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")
}
