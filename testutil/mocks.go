// Package testutil provides shared test fakes: a mock MLB Stats API server and
// schedule payload builders.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockStatsServer creates a test server that mocks MLB Stats API responses
type MockStatsServer struct {
	*httptest.Server
	Handlers map[string]http.HandlerFunc
}

// NewMockStatsServer creates a new mock MLB Stats API server
func NewMockStatsServer(t *testing.T) *MockStatsServer {
	t.Helper()
	m := &MockStatsServer{
		Handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.Handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(m.Close)
	return m
}

// MockSchedule serves a schedule holding the given games for the query date.
func (m *MockStatsServer) MockSchedule(games ...map[string]interface{}) {
	m.Handlers["/api/v1/schedule"] = func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"dates": []map[string]interface{}{
				{"games": games},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}
}

// MockEmptySchedule serves a schedule with no dates (an off day).
func (m *MockStatsServer) MockEmptySchedule() {
	m.Handlers["/api/v1/schedule"] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"dates": []interface{}{}})
	}
}

// MockStatus serves a bare status code for the schedule endpoint.
func (m *MockStatsServer) MockStatus(code int) {
	m.Handlers["/api/v1/schedule"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// ScheduledGame builds a pre-game payload (no scores).
func ScheduledGame(away, home, venue, gameDate string) map[string]interface{} {
	return map[string]interface{}{
		"gameDate": gameDate,
		"status":   map[string]interface{}{"detailedState": "Scheduled"},
		"venue":    map[string]interface{}{"name": venue},
		"teams": map[string]interface{}{
			"away": map[string]interface{}{"team": map[string]interface{}{"name": away}},
			"home": map[string]interface{}{"team": map[string]interface{}{"name": home}},
		},
	}
}

// GameWithScores builds a payload for a game that has started.
func GameWithScores(away, home, venue, gameDate, status string, awayScore, homeScore int) map[string]interface{} {
	return map[string]interface{}{
		"gameDate": gameDate,
		"status":   map[string]interface{}{"detailedState": status},
		"venue":    map[string]interface{}{"name": venue},
		"teams": map[string]interface{}{
			"away": map[string]interface{}{"team": map[string]interface{}{"name": away}, "score": awayScore},
			"home": map[string]interface{}{"team": map[string]interface{}{"name": home}, "score": homeScore},
		},
	}
}
