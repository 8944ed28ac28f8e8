package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"dodgers-bot/config"
	"dodgers-bot/telemetry"
)

// Worker owns the Discord session lifecycle. It is the only writer of the
// readiness flag; the health endpoint reads it as a plain snapshot.
type Worker struct {
	cfg       *config.Config
	router    *Router
	keepAlive *KeepAlive
	connected atomic.Bool
}

func NewWorker(cfg *config.Config, schedule ScheduleFetcher) *Worker {
	return &Worker{
		cfg:       cfg,
		router:    NewRouter(schedule, cfg.FetchTimeout),
		keepAlive: NewKeepAlive(cfg.KeepAliveInterval),
	}
}

// Connected reports whether the Discord session is established. Safe to call
// from any goroutine.
func (w *Worker) Connected() bool { return w.connected.Load() }

// Run opens the Discord session and blocks until ctx is cancelled or startup
// fails. A rejected login or a refused message-content intent surfaces from
// Open and is fatal to the worker only; the HTTP endpoint keeps serving with a
// disconnected health status.
func (w *Worker) Run(ctx context.Context) error {
	session, err := discordgo.New("Bot " + w.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	// Reading command text requires the privileged message-content intent,
	// not just message metadata.
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	keepAliveCtx, cancelKeepAlive := context.WithCancel(ctx)
	defer cancelKeepAlive()

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("discord session ready", slog.String("user", r.User.Username))
		w.connected.Store(true)
		telemetry.SetSessionConnected(true)
		// Ready fires again on gateway resume; Start is a no-op while running.
		w.keepAlive.Start(keepAliveCtx, s)
	})

	session.AddHandler(func(s *discordgo.Session, d *discordgo.Disconnect) {
		slog.Warn("discord session disconnected")
		w.connected.Store(false)
		telemetry.SetSessionConnected(false)
	})

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		botID := ""
		if s.State != nil && s.State.User != nil {
			botID = s.State.User.ID
		}
		w.router.HandleMessage(ctx, s, botID, m.Message)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	slog.Info("discord session opened")

	<-ctx.Done()
	w.teardown(session, cancelKeepAlive)
	return nil
}

// teardown is best-effort: every step runs even if an earlier one fails.
func (w *Worker) teardown(session *discordgo.Session, cancelKeepAlive context.CancelFunc) {
	cancelKeepAlive()
	w.connected.Store(false)
	telemetry.SetSessionConnected(false)
	if err := session.Close(); err != nil {
		slog.Error("discord session close failed", slog.Any("err", err))
	}
	slog.Info("discord worker stopped")
}
