package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"dodgers-bot/format"
	"dodgers-bot/mlb"
	"dodgers-bot/telemetry"
)

// CommandToken is the literal prefix that marks a message as a schedule request.
const CommandToken = "!dodgers"

const (
	msgNoGame      = "今日のドジャースの試合情報が見つかりませんでした。"
	msgFetchFailed = "試合情報の取得中にエラーが発生しました。"

	defaultFetchTimeout = 8 * time.Second
)

// Sender is the slice of the Discord session the router needs to reply.
// *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ScheduleFetcher fetches today's game. *mlb.Client satisfies it.
type ScheduleFetcher interface {
	FetchTodayGame(ctx context.Context) (*mlb.Game, error)
}

// Router turns recognized command messages into schedule replies.
type Router struct {
	schedule     ScheduleFetcher
	fetchTimeout time.Duration
}

// NewRouter constructs a router. A non-positive fetchTimeout falls back to the
// default bound so an upstream hang can never stall a command indefinitely.
func NewRouter(schedule ScheduleFetcher, fetchTimeout time.Duration) *Router {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Router{schedule: schedule, fetchTimeout: fetchTimeout}
}

// HandleMessage processes one inbound message. Messages from the bot itself and
// messages not starting with the command token are ignored. Every other path
// terminates in a reply to the triggering channel; fetch and parse failures
// become a fixed apology message, and a failed reply send is logged only.
func (r *Router) HandleMessage(ctx context.Context, s Sender, botID string, m *discordgo.Message) {
	if m == nil || m.Author == nil {
		return
	}
	if botID != "" && m.Author.ID == botID {
		return
	}
	if !strings.HasPrefix(m.Content, CommandToken) {
		return
	}

	telemetry.Inc(telemetry.CommandsReceived)
	logger := telemetry.LoggerWithCorr(ctx)
	logger.Info("schedule command received",
		slog.String("author", m.Author.Username),
		slog.String("channel", m.ChannelID))

	ctx, span := telemetry.StartSpan(ctx, "bot", "command.schedule")
	defer span.End()

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	var (
		game *mlb.Game
		err  error
	)
	telemetry.TimeFunc(telemetry.ScheduleFetchDuration, func() {
		game, err = r.schedule.FetchTodayGame(fetchCtx)
	})

	var reply string
	switch {
	case errors.Is(err, mlb.ErrNoGameToday):
		logger.Info("no game scheduled today")
		telemetry.Inc(telemetry.CommandsNoGame)
		reply = msgNoGame
	case err != nil:
		logger.Error("schedule fetch failed", slog.Any("err", err))
		telemetry.RecordError(span, err)
		telemetry.Inc(telemetry.CommandsFailed)
		reply = msgFetchFailed
	default:
		telemetry.Inc(telemetry.CommandsSucceeded)
		reply = format.Game(game)
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		// Logged only; there is no further user-visible action possible.
		logger.Error("reply delivery failed",
			slog.String("channel", m.ChannelID),
			slog.Any("err", err))
		telemetry.Inc(telemetry.RepliesFailed)
	}
}
