package mlb

// Game is the normalized record for one scheduled game. It is constructed fresh
// per fetch and never cached or mutated after construction.
type Game struct {
	// Date is the query date in the process-local timezone, YYYY-MM-DD.
	Date string
	// Status is the provider's detailed state, e.g. "Scheduled", "In Progress", "Final".
	Status   string
	HomeTeam string
	AwayTeam string
	Venue    string
	// StartTimeUTC is the provider's gameDate, an ISO-8601 timestamp in UTC.
	StartTimeUTC string
	// Scores are nil exactly when the provider omits them (pre-game).
	HomeScore *int
	AwayScore *int
}

// Wire shapes for GET /api/v1/schedule. Only the fields we read are declared.
type scheduleResponse struct {
	Dates []struct {
		Games []gamePayload `json:"games"`
	} `json:"dates"`
}

type gamePayload struct {
	GameDate string `json:"gameDate"`
	Status   struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home teamSide `json:"home"`
		Away teamSide `json:"away"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type teamSide struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Score *int `json:"score"`
}
