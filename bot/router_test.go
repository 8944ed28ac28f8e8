package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"dodgers-bot/mlb"
	"dodgers-bot/testutil"
)

const botID = "bot-user-id"

type sentMessage struct {
	channelID string
	content   string
}

type fakeSender struct {
	sent    []sentMessage
	sendErr error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &discordgo.Message{}, nil
}

type stubFetcher struct {
	game *mlb.Game
	err  error
}

func (s stubFetcher) FetchTodayGame(ctx context.Context) (*mlb.Game, error) {
	return s.game, s.err
}

func message(authorID, content string) *discordgo.Message {
	return &discordgo.Message{
		ChannelID: "chan-1",
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Username: "tester"},
	}
}

func TestRouterIgnoresOwnMessages(t *testing.T) {
	sender := &fakeSender{}
	r := NewRouter(stubFetcher{err: fmt.Errorf("must not be called")}, time.Second)

	r.HandleMessage(context.Background(), sender, botID, message(botID, CommandToken))
	if len(sender.sent) != 0 {
		t.Errorf("expected no reply to own message, got %v", sender.sent)
	}
}

func TestRouterIgnoresNonCommandMessages(t *testing.T) {
	sender := &fakeSender{}
	r := NewRouter(stubFetcher{err: fmt.Errorf("must not be called")}, time.Second)

	for _, content := range []string{"hello", "dodgers", "! dodgers", "say !dodgers"} {
		r.HandleMessage(context.Background(), sender, botID, message("user-1", content))
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no replies, got %v", sender.sent)
	}
}

func TestRouterRecognizesCommandWithTrailingText(t *testing.T) {
	sender := &fakeSender{}
	r := NewRouter(stubFetcher{err: mlb.ErrNoGameToday}, time.Second)

	r.HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken+" please"))
	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
}

func TestRouterRepliesNoGame(t *testing.T) {
	sender := &fakeSender{}
	r := NewRouter(stubFetcher{err: mlb.ErrNoGameToday}, time.Second)

	r.HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken))
	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
	if sender.sent[0].content != msgNoGame {
		t.Errorf("reply = %q, want no-game message", sender.sent[0].content)
	}
}

func TestRouterRepliesGenericFailure(t *testing.T) {
	sender := &fakeSender{}
	r := NewRouter(stubFetcher{err: &mlb.FetchError{StatusCode: 502, Err: fmt.Errorf("bad gateway")}}, time.Second)

	r.HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken))
	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
	if sender.sent[0].content != msgFetchFailed {
		t.Errorf("reply = %q, want generic failure message", sender.sent[0].content)
	}
}

func TestRouterRepliesToTriggeringChannel(t *testing.T) {
	sender := &fakeSender{}
	r := NewRouter(stubFetcher{err: mlb.ErrNoGameToday}, time.Second)

	m := message("user-1", CommandToken)
	m.ChannelID = "chan-42"
	r.HandleMessage(context.Background(), sender, botID, m)
	if len(sender.sent) != 1 || sender.sent[0].channelID != "chan-42" {
		t.Errorf("expected reply on chan-42, got %v", sender.sent)
	}
}

func TestRouterDeliveryFailureLoggedOnly(t *testing.T) {
	sender := &fakeSender{sendErr: fmt.Errorf("delivery failed")}
	r := NewRouter(stubFetcher{err: mlb.ErrNoGameToday}, time.Second)

	// Must not panic or propagate.
	r.HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken))
}

// End-to-end scenarios against a mock MLB Stats API with the real client.

func e2eRouter(t *testing.T, mock *testutil.MockStatsServer) *Router {
	t.Helper()
	client := mlb.NewClient(mlb.Config{BaseURL: mock.URL, TeamID: 119})
	return NewRouter(client, 2*time.Second)
}

func TestEndToEndScheduledGame(t *testing.T) {
	mock := testutil.NewMockStatsServer(t)
	mock.MockSchedule(testutil.ScheduledGame(
		"San Diego Padres", "Los Angeles Dodgers", "Dodger Stadium", "2024-05-01T02:10:00Z"))

	sender := &fakeSender{}
	e2eRouter(t, mock).HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
	reply := sender.sent[0].content
	today := time.Now().Format("2006-01-02")
	if !strings.HasPrefix(reply, "⚾ **今日のドジャースの試合 ("+today+")** ⚾") {
		t.Errorf("unexpected header:\n%s", reply)
	}
	if !strings.Contains(reply, "San Diego Padres @ Los Angeles Dodgers") {
		t.Errorf("missing matchup line:\n%s", reply)
	}
	if strings.Contains(reply, " - ") {
		t.Errorf("unexpected score segment for scheduled game:\n%s", reply)
	}
}

func TestEndToEndInProgressGame(t *testing.T) {
	mock := testutil.NewMockStatsServer(t)
	mock.MockSchedule(testutil.GameWithScores(
		"San Diego Padres", "Los Angeles Dodgers", "Dodger Stadium",
		"2024-05-01T02:10:00Z", "In Progress", 3, 2))

	sender := &fakeSender{}
	e2eRouter(t, mock).HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].content, " (San Diego Padres 3 - 2 Los Angeles Dodgers)") {
		t.Errorf("missing score segment:\n%s", sender.sent[0].content)
	}
}

func TestEndToEndUpstreamFailure(t *testing.T) {
	mock := testutil.NewMockStatsServer(t)
	mock.MockStatus(503)

	sender := &fakeSender{}
	e2eRouter(t, mock).HandleMessage(context.Background(), sender, botID, message("user-1", CommandToken))

	if len(sender.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sender.sent))
	}
	if sender.sent[0].content != msgFetchFailed {
		t.Errorf("reply = %q, want generic failure message", sender.sent[0].content)
	}
}
