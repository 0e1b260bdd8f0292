package serve

import "time"

// --- API Request/Response Types ---

// QuizRequest is the body of the generation endpoints.
type QuizRequest struct {
	Input string `json:"input"`
	// Seed overrides the configured seed for this request.
	Seed *int64 `json:"seed,omitempty"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

// ValidateResponse lists the problems Check found.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors []ProblemResponse `json:"errors"`
}

// ProblemResponse is one validation problem.
type ProblemResponse struct {
	Line    int    `json:"line,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// StatsResponse reports server counters.
type StatsResponse struct {
	Generated int64     `json:"generated"`
	Failed    int64     `json:"failed"`
	Uptime    string    `json:"uptime"`
	StartedAt time.Time `json:"started_at"`
}
