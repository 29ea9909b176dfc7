package models

// Document is the plain text extracted from one fetched page.
type Document struct {
	URL       string `json:"url"`
	Extractor string `json:"extractor"`
	Text      string `json:"text"`
}

// ScoreSample is the backend's judgement of one document.
// Parsed is false when the reply held no number and Score was defaulted to 0.
type ScoreSample struct {
	URL    string  `json:"url"`
	Score  float64 `json:"score"`
	Parsed bool    `json:"parsed"`
	Reply  string  `json:"reply,omitempty"`
}

// RewardReport is the averaged reward plus the samples it was computed from.
type RewardReport struct {
	Reward  float64       `json:"reward"`
	Samples []ScoreSample `json:"samples"`

	// NoEvidence is set when the search page had no results container and
	// the reward defaulted to neutral.
	NoEvidence bool `json:"no_evidence,omitempty"`
}
