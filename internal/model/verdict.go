package model

import "encoding/json"

// Evidence is the structured payload attached to a verdict.
type Evidence map[string]any

// Verdict is the outcome of evaluating one check against evidence.
type Verdict struct {
	Check    CheckDescriptor `json:"check"`
	Status   Status          `json:"status"`
	Detail   string          `json:"detail,omitempty"`
	Evidence Evidence        `json:"evidence,omitempty"`
}

// Score derives the earned points from status and check weight.
func (v Verdict) Score() float64 {
	return ScoreFor(v.Status, v.Check.Weight)
}

// ScoreFor is weight for passed, half weight for warning, 0 otherwise.
func ScoreFor(s Status, weight float64) float64 {
	switch s {
	case StatusPassed:
		return weight
	case StatusWarning:
		return weight * 0.5
	default:
		return 0
	}
}

// MarshalJSON adds the derived score so downstream consumers don't recompute it.
func (v Verdict) MarshalJSON() ([]byte, error) {
	type plain Verdict
	return json.Marshal(struct {
		plain
		Score float64 `json:"score"`
	}{plain(v), v.Score()})
}
