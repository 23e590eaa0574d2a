// Package compare diffs two assessments of the same organization.
package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/trend"
)

// Load reads a previously written assessment JSON file.
func Load(path string) (*model.Assessment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a model.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse assessment %s: %w", path, err)
	}
	return &a, nil
}

// Diff compares prev against curr and returns a ComparisonSummary for the assessment.
func Diff(prev, curr *model.Assessment) model.ComparisonSummary {
	r := model.ComparisonSummary{
		PreviousScanID:    prev.Scan.ScanID,
		PreviousScannedAt: prev.Metadata.GeneratedAt,
		PreviousScore:     prev.Overall,
		PreviousMaturity:  prev.Maturity,
		ScoreDelta:        trend.Compute(prev.Overall, curr.Overall).DeltaScore,

		DORAPrevious: prev.Benchmarks.DORA.Level,
		DORACurrent:  curr.Benchmarks.DORA.Level,
		SLSAPrevious: prev.Benchmarks.SLSA.Level,
		SLSACurrent:  curr.Benchmarks.SLSA.Level,

		CategoryDeltas: trend.Categories(prev.Categories, curr.Categories),
	}

	prevRepos, currRepos := repoNames(prev), repoNames(curr)
	r.ReposAdded = sets.List(currRepos.Difference(prevRepos))
	r.ReposRemoved = sets.List(prevRepos.Difference(currRepos))

	prevSSF, currSSF := met(prev.Benchmarks.OpenSSF), met(curr.Benchmarks.OpenSSF)
	r.OpenSSFGained = sets.List(currSSF.Difference(prevSSF))
	r.OpenSSFLost = sets.List(prevSSF.Difference(currSSF))

	prevSet := findingSet(prev.Findings)
	currSet := findingSet(curr.Findings)
	for k, f := range currSet {
		if _, ok := prevSet[k]; !ok {
			r.FindingsNew = append(r.FindingsNew, f)
		}
	}
	for k, f := range prevSet {
		if _, ok := currSet[k]; !ok {
			r.FindingsResolved = append(r.FindingsResolved, f)
		}
	}
	sortFindings(r.FindingsNew)
	sortFindings(r.FindingsResolved)

	return r
}

func repoNames(a *model.Assessment) sets.Set[string] {
	s := sets.New[string]()
	for _, r := range a.Repos {
		s.Insert(r.Repo.Name)
	}
	return s
}

func met(alignment map[string]bool) sets.Set[string] {
	s := sets.New[string]()
	for k, ok := range alignment {
		if ok {
			s.Insert(k)
		}
	}
	return s
}

// A finding is identified by check and subject; a status change between
// failed and warning is not treated as new.
func findingSet(findings []model.Finding) map[string]model.Finding {
	m := make(map[string]model.Finding, len(findings))
	for _, f := range findings {
		m[f.CheckID+"|"+f.Subject] = f
	}
	return m
}

func sortFindings(fs []model.Finding) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].CheckID != fs[j].CheckID {
			return fs[i].CheckID < fs[j].CheckID
		}
		return fs[i].Subject < fs[j].Subject
	})
}
