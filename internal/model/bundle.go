package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SchemaVersion = "1.0.0"
	ToolName      = "devops-maturity-scan"
	ToolVersion   = "0.3.0"
)

// Assessment is the complete result of one scan: every verdict, the
// aggregated scores and the benchmark alignment.
type Assessment struct {
	Checks        []Check  `json:"checks,omitempty"`
	SchemaVersion string   `json:"schemaVersion"`
	Metadata      Metadata `json:"metadata"`
	Tool          Tool     `json:"tool"`
	Scan          Scan     `json:"scan"`

	Org   *OrgResult   `json:"org,omitempty"`
	Repos []RepoResult `json:"repos"`

	// Categories is keyed by category; the 16 weighted categories are always present.
	Categories map[Category]CategoryScore `json:"categories"`
	Overall    float64                    `json:"overall"`
	Maturity   string                     `json:"maturity"`
	Posture    string                     `json:"posture"`
	Benchmarks BenchmarkReport            `json:"benchmarks"`

	Findings         []Finding         `json:"findings"`
	RemediationSteps []RemediationStep `json:"remediationSteps,omitempty"`
	// DomainSkips records evaluators that panicked and were isolated.
	DomainSkips []DomainSkip `json:"domainSkips,omitempty"`
	// Comparison holds the diff against a previous assessment when --compare is used.
	Comparison *ComparisonSummary `json:"comparison,omitempty"`
	// TrendHistory holds the last N overall scores.
	TrendHistory []TrendPoint `json:"trendHistory,omitempty"`
}

// OrgResult holds the verdicts of the org-scoped domains.
type OrgResult struct {
	Name     string    `json:"name"`
	Verdicts []Verdict `json:"verdicts"`
}

// RepoResult holds the verdicts of the repo-scoped domains for one repository.
type RepoResult struct {
	Repo     Repository `json:"repo"`
	Verdicts []Verdict  `json:"verdicts"`
}

// TrendPoint is a single data point for the score trend.
type TrendPoint struct {
	TimestampUTC string  `json:"ts"`
	Overall      float64 `json:"score"`
	Maturity     string  `json:"maturity"`
}

// ComparisonSummary is the diff against a previous assessment. It is embedded
// here so writers can render it without importing internal/compare.
type ComparisonSummary struct {
	PreviousScanID    string  `json:"previousScanId"`
	PreviousScannedAt string  `json:"previousScannedAt"`
	PreviousScore     float64 `json:"previousScore"`
	PreviousMaturity  string  `json:"previousMaturity"`
	ScoreDelta        float64 `json:"scoreDelta"`

	ReposAdded   []string `json:"reposAdded,omitempty"`
	ReposRemoved []string `json:"reposRemoved,omitempty"`

	CategoryDeltas []CategoryDelta `json:"categoryDeltas,omitempty"`

	DORAPrevious string `json:"doraPrevious"`
	DORACurrent  string `json:"doraCurrent"`
	SLSAPrevious int    `json:"slsaPrevious"`
	SLSACurrent  int    `json:"slsaCurrent"`

	OpenSSFGained []string `json:"openssfGained,omitempty"`
	OpenSSFLost   []string `json:"openssfLost,omitempty"`

	FindingsNew      []Finding `json:"findingsNew,omitempty"`
	FindingsResolved []Finding `json:"findingsResolved,omitempty"`
}

// CategoryDelta is the percentage movement of one category between two assessments.
type CategoryDelta struct {
	Category Category `json:"category"`
	From     float64  `json:"from"`
	To       float64  `json:"to"`
	Delta    float64  `json:"delta"`
}

type Metadata struct {
	OrgName     string `json:"orgName,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	Environment string `json:"environment,omitempty"`
	Profile     string `json:"profile,omitempty"`
	ToolVersion string `json:"toolVersion"`
	GeneratedAt string `json:"generatedAt"`
}

type Tool struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
}

type Scan struct {
	ScanID          string    `json:"scanId"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationSeconds int       `json:"durationSeconds"`
	Workers         int       `json:"workers"`
}

// NewUUID returns a random scan identifier.
func NewUUID() string {
	return uuid.NewString()
}

func NewAssessment(scanID string, started time.Time) Assessment {
	return Assessment{
		SchemaVersion: SchemaVersion,
		Metadata: Metadata{
			ToolVersion: ToolVersion,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Tool: Tool{
			Name:      ToolName,
			Version:   ToolVersion,
			BuildDate: time.Now().UTC().Format("2006-01-02"),
		},
		Scan: Scan{
			ScanID:    scanID,
			StartedAt: started,
		},
		Repos:      []RepoResult{},
		Categories: map[Category]CategoryScore{},
		Findings:   []Finding{},
	}
}

// Verdicts returns every verdict of the assessment, org first then repos in order.
func (a *Assessment) Verdicts() []Verdict {
	var out []Verdict
	if a.Org != nil {
		out = append(out, a.Org.Verdicts...)
	}
	for _, r := range a.Repos {
		out = append(out, r.Verdicts...)
	}
	return out
}
