// Package risk derives a risk posture from an assessment's overall score.
package risk

import "github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"

type Posture string

const (
	Low      Posture = "LOW"
	Moderate Posture = "MODERATE"
	High     Posture = "HIGH"
	Critical Posture = "CRITICAL"
)

type Rating struct {
	Score    float64 `json:"score"`
	Maturity string  `json:"maturity"`
	Posture  Posture `json:"posture"`
	// OpenBySeverity counts failed and error findings per severity.
	OpenBySeverity map[model.Severity]int `json:"openBySeverity,omitempty"`
}

func PostureFor(score float64) Posture {
	switch {
	case score >= 90:
		return Low
	case score >= 70:
		return Moderate
	case score >= 50:
		return High
	default:
		return Critical
	}
}

func FromScore(score float64, maturity string) Rating {
	return Rating{Score: score, Maturity: maturity, Posture: PostureFor(score)}
}

// FromAssessment rates a, counting findings that are not mere warnings.
func FromAssessment(a *model.Assessment) Rating {
	r := FromScore(a.Overall, a.Maturity)
	for _, f := range a.Findings {
		if f.Status == model.StatusWarning {
			continue
		}
		if r.OpenBySeverity == nil {
			r.OpenBySeverity = map[model.Severity]int{}
		}
		r.OpenBySeverity[f.Severity]++
	}
	return r
}
