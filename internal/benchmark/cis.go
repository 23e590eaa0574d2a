package benchmark

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// CISControl is one control domain of the CIS Software Supply Chain guide.
type CISControl struct {
	Description string
	Checks      []string
}

var cisControls = map[string]CISControl{
	"source-code":     {"Source Code Management", []string{"SEC-001", "SEC-002", "SEC-006", "COLLAB-001"}},
	"build-pipelines": {"Build Pipelines", []string{"CICD-001", "CICD-003", "CICD-005"}},
	"dependencies":    {"Dependencies", []string{"SEC-010", "SEC-011", "SEC-012"}},
	"artifacts":       {"Artifacts", []string{"SEC-020", "SEC-007"}},
	"deployment":      {"Deployment", []string{"CICD-006", "CICD-007"}},
}

// CISCompliance evaluates the five CIS supply-chain domains.
func CISCompliance(passed sets.Set[string]) map[string]model.CISDomain {
	return CISComplianceFor(cisControls, passed)
}

// CISComplianceFor evaluates an arbitrary domain table. A domain without
// checks has percentage 0 and counts as compliant, since nothing is missing.
func CISComplianceFor(controls map[string]CISControl, passed sets.Set[string]) map[string]model.CISDomain {
	out := make(map[string]model.CISDomain, len(controls))
	for id, c := range controls {
		n := 0
		for _, check := range c.Checks {
			if passed.Has(check) {
				n++
			}
		}
		pct := 0.0
		if len(c.Checks) > 0 {
			pct = float64(n) / float64(len(c.Checks)) * 100
		}
		out[id] = model.CISDomain{
			Description: c.Description,
			Total:       len(c.Checks),
			Passed:      n,
			Percentage:  pct,
			Compliant:   n == len(c.Checks),
		}
	}
	return out
}
