package output

import (
	"encoding/json"
	"os"
	"time"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/analyze"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
)

// BuildSummary condenses a into the one-line record printed in CI mode.
func BuildSummary(a *model.Assessment, minScore float64, trendLabel string, delta float64) model.ScanSummary {
	s := model.ScanSummary{
		ScanID:       a.Scan.ScanID,
		TimestampUtc: time.Now().UTC().Format(time.RFC3339),
		Overall:      a.Overall,
		Maturity:     a.Maturity,
		Status:       StatusPassed,
		MinScore:     minScore,
		Profile:      a.Metadata.Profile,
		DORALevel:    a.Benchmarks.DORA.Level,
		SLSALevel:    a.Benchmarks.SLSA.Level,
		Repos:        len(a.Repos),
		Categories:   analyze.BuildCategories(a.Categories),
		Trend:        trendLabel,
		Delta:        delta,
	}
	if a.Overall < minScore {
		s.Status = StatusFailed
	}
	return s
}

// WriteSummary writes s as a single JSON document.
func WriteSummary(path string, s model.ScanSummary) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
