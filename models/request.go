package models

import "time"

// QueryRequest is the payload for POST /api/v1/query.
type QueryRequest struct {
	// Query is the free-text search. Required.
	Query string `json:"query" binding:"required"`
}

// ExtractRequest is the payload for POST /api/v1/extract.
type ExtractRequest struct {
	// URL is the page to fetch and extract. Required.
	URL string `json:"url" binding:"required,url"`

	// Steps are clicks performed after load, before extraction.
	Steps []StepRequest `json:"steps,omitempty" binding:"omitempty,max=20,dive"`
}

// StepRequest is the wire form of an InteractionStep.
type StepRequest struct {
	By     string   `json:"by" binding:"required"`
	Value  string   `json:"value" binding:"required"`
	Index  int      `json:"index,omitempty" binding:"omitempty,min=0"`
	WaitMs int      `json:"wait_ms,omitempty" binding:"omitempty,min=0,max=30000"`
	Backup *Locator `json:"backup,omitempty"`
}

// ToStep converts the wire form into an InteractionStep.
func (r StepRequest) ToStep() InteractionStep {
	return InteractionStep{
		Locator: Locator{By: LocatorStrategy(r.By), Value: r.Value},
		Index:   r.Index,
		Wait:    time.Duration(r.WaitMs) * time.Millisecond,
		Backup:  r.Backup,
	}
}

// ScoreRequest is the payload for POST /api/v1/score.
type ScoreRequest struct {
	// Prompt is the user prompt. Required.
	Prompt string `json:"prompt" binding:"required"`

	// Completion is the assistant answer being judged. Required.
	Completion string `json:"completion" binding:"required"`
}
