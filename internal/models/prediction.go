package models

import "slices"

// PredictionResult is the flattened response of one real-time prediction:
// the model's score plus the rule(s) that matched and their outcomes.
type PredictionResult struct {
	EventID        string   `json:"eventId"`
	ModelVersion   string   `json:"modelVersion"`
	Score          float32  `json:"score"`
	MatchedRuleIDs []string `json:"matchedRuleIds"`
	Outcomes       []string `json:"outcomes"`
}

// HasOutcome reports whether the prediction produced the named outcome.
func (p *PredictionResult) HasOutcome(name string) bool {
	return slices.Contains(p.Outcomes, name)
}
