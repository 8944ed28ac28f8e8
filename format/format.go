// Package format renders a normalized game record into the Japanese-language
// Discord reply. Rendering is pure and total: any structurally valid record
// produces a string, never an error.
package format

import (
	"fmt"
	"time"

	"dodgers-bot/mlb"
)

// Statuses under which a game has not started and carries no score.
var preGameStatuses = map[string]struct{}{
	"Scheduled": {},
	"Pre-Game":  {},
	"Warmup":    {},
	"Preview":   {},
}

// Fixed UTC+9 offset. The target locale has no DST, so a flat offset is
// deliberate; no tzdata lookup.
var jst = time.FixedZone("JST", 9*60*60)

const timeUnavailable = "時間情報なし"

// Game renders the full multi-line reply for one game.
func Game(g *mlb.Game) string {
	return fmt.Sprintf(
		"⚾ **今日のドジャースの試合 (%s)** ⚾\n"+
			"対戦: %s @ %s\n"+
			"球場: %s\n"+
			"状態: %s%s\n"+
			"開始時刻 (日本時間): %s",
		g.Date,
		g.AwayTeam, g.HomeTeam,
		g.Venue,
		g.Status, score(g),
		startTimeJST(g.StartTimeUTC),
	)
}

// score returns the " (AWAY a - h HOME)" segment, or "" before first pitch.
// A missing score renders as "?" rather than failing.
func score(g *mlb.Game) string {
	if _, pre := preGameStatuses[g.Status]; pre {
		return ""
	}
	return fmt.Sprintf(" (%s %s - %s %s)", g.AwayTeam, scoreText(g.AwayScore), scoreText(g.HomeScore), g.HomeTeam)
}

func scoreText(score *int) string {
	if score == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *score)
}

// startTimeJST converts an ISO-8601 UTC timestamp to the localized start-time
// line. Malformed input yields a fallback literal, never an error.
func startTimeJST(utcTime string) string {
	t, err := time.Parse(time.RFC3339, utcTime)
	if err != nil {
		return timeUnavailable
	}
	return t.In(jst).Format("2006年01月02日 15:04")
}
