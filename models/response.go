package models

// QueryResponse is the response for POST /api/v1/query.
type QueryResponse struct {
	Success bool         `json:"success"`
	URLs    []string     `json:"urls,omitempty"`
	Timing  TimingInfo   `json:"timing"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ExtractResponse is the response for POST /api/v1/extract.
type ExtractResponse struct {
	Success  bool         `json:"success"`
	Document *Document    `json:"document,omitempty"`
	Timing   TimingInfo   `json:"timing"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// ScoreResponse is the response for POST /api/v1/score.
type ScoreResponse struct {
	Success    bool          `json:"success"`
	Reward     float64       `json:"reward"`
	Samples    []ScoreSample `json:"samples,omitempty"`
	NoEvidence bool          `json:"no_evidence,omitempty"`
	Timing     TimingInfo    `json:"timing"`
	Error      *ErrorDetail  `json:"error,omitempty"`
}

// TimingInfo reports the end-to-end duration of a request.
type TimingInfo struct {
	TotalMs int64 `json:"total_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status       string       `json:"status"` // "healthy" or "idle"
	Uptime       string       `json:"uptime"`
	SessionStats SessionStats `json:"session_stats"`
	Version      string       `json:"version"`
}

// SessionStats reports the browser session lifecycle counters.
type SessionStats struct {
	Live    bool  `json:"live"`
	Opened  int64 `json:"opened"`
	Resets  int64 `json:"resets"`
	Fetches int64 `json:"fetches"`
}
