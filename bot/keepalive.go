package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"dodgers-bot/telemetry"
)

// SelfFetcher is the slice of the Discord session the keep-alive task needs.
// *discordgo.Session satisfies it.
type SelfFetcher interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// KeepAlive periodically fetches the bot's own user purely to generate outbound
// traffic, preventing idle-timeout eviction on the hosting platform.
type KeepAlive struct {
	interval time.Duration

	mu      sync.Mutex
	running bool
}

func NewKeepAlive(interval time.Duration) *KeepAlive {
	return &KeepAlive{interval: interval}
}

// Start launches the tick loop. It must be called only once the session is
// ready; the worker does so from its Ready handler. Calling Start while a loop
// is already running is a no-op, so a gateway resume firing Ready again cannot
// spawn a second loop. The loop stops only when ctx is cancelled.
func (k *KeepAlive) Start(ctx context.Context, session SelfFetcher) {
	k.mu.Lock()
	if k.running {
		k.mu.Unlock()
		slog.Debug("keep-alive already running; ignoring start")
		return
	}
	k.running = true
	k.mu.Unlock()

	go k.loop(ctx, session)
}

// Running reports whether a tick loop is active.
func (k *KeepAlive) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

func (k *KeepAlive) loop(ctx context.Context, session SelfFetcher) {
	defer func() {
		k.mu.Lock()
		k.running = false
		k.mu.Unlock()
	}()

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	slog.Info("keep-alive started", slog.Duration("interval", k.interval))
	for {
		select {
		case <-ctx.Done():
			slog.Info("keep-alive cancelled")
			return
		case <-ticker.C:
			k.tick(session)
		}
	}
}

// tick performs one cheap self-lookup. Failures are logged and never stop the loop.
func (k *KeepAlive) tick(session SelfFetcher) {
	telemetry.Inc(telemetry.KeepAliveTicks)
	user, err := session.User("@me")
	if err != nil {
		telemetry.Inc(telemetry.KeepAliveFailures)
		slog.Error("keep-alive tick failed", slog.Any("err", err))
		return
	}
	slog.Info("keep-alive tick", slog.String("user", user.Username))
}
