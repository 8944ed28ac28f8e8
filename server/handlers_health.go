package server

import (
	"encoding/json"
	"net/http"
)

type healthStatus struct {
	Status     string `json:"status"`
	API        string `json:"api"`
	DiscordBot string `json:"discord_bot"`
}

// handleHealth reports process liveness and bot readiness. It never blocks on
// the worker; readiness is a plain snapshot of an atomic flag, so a slow or
// dead Discord connection cannot delay the probe.
func handleHealth(connected func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{
			Status:     "ok",
			API:        "running",
			DiscordBot: "disconnected",
		}
		if connected != nil && connected() {
			status.DiscordBot = "connected"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}
