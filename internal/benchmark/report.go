package benchmark

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// PassedIDs collects the ids of passed verdicts. Verdicts from several
// subjects union: a check counts once any subject passed it.
func PassedIDs(verdicts []model.Verdict) sets.Set[string] {
	out := sets.New[string]()
	for _, v := range verdicts {
		if v.Status == model.StatusPassed {
			out.Insert(v.Check.ID)
		}
	}
	return out
}

// Evaluate runs all four classifiers.
func Evaluate(overall float64, passed sets.Set[string]) model.BenchmarkReport {
	return model.BenchmarkReport{
		DORA:    DORAProfile(DORALevel(overall)),
		OpenSSF: OpenSSFAlignment(passed),
		SLSA:    SLSAProfile(SLSALevel(passed)),
		CIS:     CISCompliance(passed),
	}
}
