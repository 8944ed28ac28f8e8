package bot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type fakeSelf struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSelf) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.User{Username: "bot"}, nil
}

func (f *fakeSelf) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestKeepAliveNotRunningBeforeStart(t *testing.T) {
	k := NewKeepAlive(time.Minute)
	if k.Running() {
		t.Errorf("expected keep-alive not running before Start")
	}
}

func TestKeepAliveTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	self := &fakeSelf{}
	k := NewKeepAlive(20 * time.Millisecond)
	k.Start(ctx, self)

	waitUntil(t, time.Second, func() bool { return self.count() >= 2 })
}

func TestKeepAliveDoubleStartIsNoOp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	self := &fakeSelf{}
	k := NewKeepAlive(20 * time.Millisecond)
	k.Start(ctx, self)

	// Readiness fired twice (gateway resume); the second Start must not spawn
	// a loop of its own, so cancelling the first context stops all ticking.
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	k.Start(ctx2, self)

	waitUntil(t, time.Second, func() bool { return self.count() >= 2 })
	cancel()
	waitUntil(t, time.Second, func() bool { return !k.Running() })

	settled := self.count()
	time.Sleep(100 * time.Millisecond)
	if got := self.count(); got != settled {
		t.Errorf("ticks continued after cancel (%d -> %d); second loop is running", settled, got)
	}
}

func TestKeepAliveTickErrorKeepsLooping(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	self := &fakeSelf{err: fmt.Errorf("transient disconnect")}
	k := NewKeepAlive(20 * time.Millisecond)
	k.Start(ctx, self)

	waitUntil(t, time.Second, func() bool { return self.count() >= 3 })
	if !k.Running() {
		t.Errorf("expected loop to survive tick errors")
	}
}

func TestKeepAliveStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	self := &fakeSelf{}
	k := NewKeepAlive(20 * time.Millisecond)
	k.Start(ctx, self)
	waitUntil(t, time.Second, func() bool { return k.Running() })

	cancel()
	waitUntil(t, time.Second, func() bool { return !k.Running() })

	// A later session can start a fresh loop.
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	k.Start(ctx2, self)
	waitUntil(t, time.Second, func() bool { return k.Running() })
}
