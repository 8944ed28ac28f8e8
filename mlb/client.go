// Package mlb contains a minimal client for the MLB Stats API schedule endpoint,
// fetching today's game for one team and mapping it to a normalized Game record.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://statsapi.mlb.com"
	defaultTimeout = 8 * time.Second

	// sportID 1 is MLB.
	sportID = 1
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	TeamID     int
	HTTPClient *http.Client
}

// Client fetches the schedule for one team from the MLB Stats API.
type Client struct {
	baseURL    string
	teamID     int
	httpClient *http.Client
	now        func() time.Time
}

// NewClient constructs a schedule client with the provided configuration.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		// Bounded timeout so a hung upstream stalls one command, not forever.
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    base,
		teamID:     cfg.TeamID,
		httpClient: hc,
		now:        time.Now,
	}
}

// FetchTodayGame retrieves today's game for the configured team.
//
// "Today" is re-resolved on every call in the process-local timezone. An empty
// schedule returns ErrNoGameToday. If the date has a doubleheader, only the
// first game in provider order is returned.
func (c *Client) FetchTodayGame(ctx context.Context) (*Game, error) {
	today := c.now().Format("2006-01-02")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/schedule", nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	q := req.URL.Query()
	q.Set("sportId", strconv.Itoa(sportID))
	q.Set("teamId", strconv.Itoa(c.teamID))
	q.Set("date", today)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ParseError{Err: err}
	}

	if len(payload.Dates) == 0 || len(payload.Dates[0].Games) == 0 {
		return nil, ErrNoGameToday
	}

	return mapGame(today, payload.Dates[0].Games[0])
}

// mapGame validates required fields and builds the normalized record. Missing
// scores are not an error; they stay nil per the Game contract.
func mapGame(date string, g gamePayload) (*Game, error) {
	switch {
	case g.Status.DetailedState == "":
		return nil, &ParseError{Field: "status.detailedState"}
	case g.Teams.Home.Team.Name == "":
		return nil, &ParseError{Field: "teams.home.team.name"}
	case g.Teams.Away.Team.Name == "":
		return nil, &ParseError{Field: "teams.away.team.name"}
	case g.Venue.Name == "":
		return nil, &ParseError{Field: "venue.name"}
	case g.GameDate == "":
		return nil, &ParseError{Field: "gameDate"}
	}

	return &Game{
		Date:         date,
		Status:       g.Status.DetailedState,
		HomeTeam:     g.Teams.Home.Team.Name,
		AwayTeam:     g.Teams.Away.Team.Name,
		Venue:        g.Venue.Name,
		StartTimeUTC: g.GameDate,
		HomeScore:    g.Teams.Home.Score,
		AwayScore:    g.Teams.Away.Score,
	}, nil
}
