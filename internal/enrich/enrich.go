// Package enrich layers history, trend, risk and profile views over a
// finished assessment.
package enrich

import (
	"path/filepath"
	"time"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/analyze"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/compare"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/history"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/profile"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/risk"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/trend"
)

const SchemaVersion = "v1"

type HistoryEntry struct {
	TimestampUtc string  `json:"timestampUtc"`
	ScanID       string  `json:"scanId"`
	Overall      float64 `json:"overall"`
	Maturity     string  `json:"maturity"`
}

// ProfileScore is the overall score the assessment would have under another
// weighting profile.
type ProfileScore struct {
	Profile  string       `json:"profile"`
	Overall  float64      `json:"overall"`
	Maturity string       `json:"maturity"`
	Posture  risk.Posture `json:"posture"`
}

type Enriched struct {
	SchemaVersion string        `json:"schemaVersion"`
	GeneratedUtc  string        `json:"generatedUtc"`
	Profile       string        `json:"profile"`
	Current       HistoryEntry  `json:"current"`
	Previous      *HistoryEntry `json:"previous,omitempty"`
	Trend         *trend.Trend  `json:"trend,omitempty"`
	Risk          risk.Rating   `json:"risk"`
	LastN         []float64     `json:"lastN"`

	Profiles       []ProfileScore        `json:"profiles"`
	CategoryDeltas []model.CategoryDelta `json:"categoryDeltas,omitempty"`
}

type Options struct {
	OutDir     string
	LastNCount int
}

// Run enriches a using the history index under opts.OutDir. The index may or
// may not already contain a; either way the entry before it is the previous run.
func Run(a *model.Assessment, opts Options) (*Enriched, error) {
	if opts.OutDir == "" {
		opts.OutDir = "out"
	}
	if opts.LastNCount <= 0 {
		opts.LastNCount = 10
	}

	en := &Enriched{
		SchemaVersion: SchemaVersion,
		GeneratedUtc:  time.Now().UTC().Format(time.RFC3339),
		Profile:       a.Metadata.Profile,
		Current: HistoryEntry{
			TimestampUtc: a.Metadata.GeneratedAt,
			ScanID:       a.Scan.ScanID,
			Overall:      a.Overall,
			Maturity:     a.Maturity,
		},
		Risk:     risk.FromAssessment(a),
		LastN:    []float64{},
		Profiles: ProfileScores(a.Categories),
	}
	if en.Profile == "" {
		en.Profile = string(profile.Standard)
	}

	idx, err := history.Load(opts.OutDir)
	if err != nil {
		return nil, err
	}

	entries := idx.Entries
	if n := len(entries); n > 0 && entries[n-1].ScanID == a.Scan.ScanID {
		entries = entries[:n-1]
	}

	if len(entries) > 0 {
		p := entries[len(entries)-1]
		en.Previous = &HistoryEntry{
			TimestampUtc: p.TimestampUTC,
			ScanID:       p.ScanID,
			Overall:      p.Overall,
			Maturity:     p.Maturity,
		}
		t := trend.Compute(p.Overall, a.Overall)
		en.Trend = &t

		if prev, err := compare.Load(filepath.Join(opts.OutDir, filepath.FromSlash(p.JSONFile))); err == nil {
			en.CategoryDeltas = trend.Categories(prev.Categories, a.Categories)
		}
	}

	start := 0
	if len(entries) >= opts.LastNCount {
		start = len(entries) - opts.LastNCount + 1
	}
	for _, e := range entries[start:] {
		en.LastN = append(en.LastN, e.Overall)
	}
	en.LastN = append(en.LastN, a.Overall)

	return en, nil
}

// ProfileScores re-weights cats under every known profile.
func ProfileScores(cats map[model.Category]model.CategoryScore) []ProfileScore {
	out := make([]ProfileScore, 0, len(profile.Names()))
	for _, p := range profile.Names() {
		w := profile.Weights(p)
		reweighted := make(map[model.Category]model.CategoryScore, len(cats))
		for c, s := range cats {
			s.Weight = w[c]
			reweighted[c] = s
		}
		overall := analyze.OverallScore(reweighted)
		out = append(out, ProfileScore{
			Profile:  string(p),
			Overall:  overall,
			Maturity: analyze.Maturity(overall),
			Posture:  risk.PostureFor(overall),
		})
	}
	return out
}
