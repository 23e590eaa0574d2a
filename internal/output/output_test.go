package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func sample() *model.Assessment {
	a := model.NewAssessment("scan-1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	a.Metadata.OrgName = "acme"
	a.Metadata.CustomerID = "cust-9"
	a.Metadata.Profile = "standard"

	check := model.CheckDescriptor{ID: "REPO-001", Name: "Branch protection", Category: model.CategoryRepoGovernance, Severity: model.SeverityHigh, Weight: 2}
	a.Org = &model.OrgResult{Name: "acme"}
	a.Repos = []model.RepoResult{
		{Repo: model.Repository{Name: "billing", URL: "https://example.com/acme/billing"}, Verdicts: []model.Verdict{{Check: check, Status: model.StatusFailed, Detail: "No branch protection"}}},
		{Repo: model.Repository{Name: "web"}, Verdicts: []model.Verdict{{Check: check, Status: model.StatusPassed}}},
	}
	a.Categories[model.CategoryRepoGovernance] = model.CategoryScore{
		Category: model.CategoryRepoGovernance, Score: 2, MaxScore: 4, Weight: 0.1, PassCount: 1, FailCount: 1, FindingCount: 2,
	}
	a.Overall = 50
	a.Maturity = "SILVER"
	a.Posture = "HIGH"
	a.Benchmarks = model.BenchmarkReport{
		DORA:    model.DORAResult{Level: "Medium", DeploymentFrequency: "Weekly"},
		OpenSSF: map[string]bool{"Branch-Protection": true, "Fuzzing": false},
		SLSA:    model.SLSAResult{Level: 1, Name: "Provenance exists"},
		CIS:     map[string]model.CISDomain{"source-code": {Description: "Source Code Management", Total: 4, Passed: 4, Percentage: 100, Compliant: true}},
	}
	a.Findings = []model.Finding{{CheckID: "REPO-001", Name: "Branch protection", Severity: model.SeverityHigh, Status: model.StatusFailed, Subject: "billing", Detail: "No branch protection"}}
	a.RemediationSteps = []model.RemediationStep{{Priority: 1, Title: "Protect default branches", Detail: "Enable protection.", Subjects: []string{"billing"}, Actions: []string{"gh api ..."}, CheckID: "REPO-001"}}
	a.Checks = []model.Check{{ID: "REPO-001", Title: "Branch protection", Passed: 1, Failed: 1, Earned: 2, Max: 4, Status: model.StatusFailed}}
	return &a
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessment.json")
	require.NoError(t, WriteJSON(path, sample()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 50.0, decoded["overall"])
	cats := decoded["categories"].(map[string]any)
	assert.Equal(t, 50.0, cats["repo_governance"].(map[string]any)["percentage"])
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	a := sample()
	a.Comparison = &model.ComparisonSummary{PreviousScanID: "scan-0", ScoreDelta: 5, ReposAdded: []string{"web"}}
	require.NoError(t, WriteMarkdown(path, a))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(raw)
	assert.Contains(t, md, "# DevOps Maturity Assessment: acme")
	assert.Contains(t, md, "## Overall Score: 50.00 / 100")
	assert.Contains(t, md, "| repo_governance | 2.00 | 4.00 | 50.0 |")
	assert.Contains(t, md, "### DORA: Medium")
	assert.Contains(t, md, "### OpenSSF Scorecard: 1 / 2")
	assert.Contains(t, md, "### SLSA: Level 1 (Provenance exists)")
	assert.Contains(t, md, "### CIS Supply Chain: 1 / 1 domains compliant")
	assert.Contains(t, md, "**[HIGH] REPO-001**")
	assert.Contains(t, md, "### P1 Protect default branches")
	assert.Contains(t, md, "## Comparison with scan-0")
	assert.Contains(t, md, "Repositories added: web")
}

func TestWriteMarkdownNoFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	a := sample()
	a.Findings = nil
	require.NoError(t, WriteMarkdown(path, a))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No failing checks detected.")
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")
	rows, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(dir, sample()))

	for _, name := range []string{"categories.csv", "checks.csv", "verdicts.csv", "findings.csv", "remediation.csv"} {
		assert.FileExists(t, filepath.Join(dir, "csv", name))
	}

	verdicts := readCSV(t, filepath.Join(dir, "csv", "verdicts.csv"))
	require.Len(t, verdicts, 3)
	assert.Equal(t, []string{"billing", "REPO-001", "Branch protection", "repo_governance", "high", "failed", "0.00", "No branch protection"}, verdicts[1])
	assert.Equal(t, "2.00", verdicts[2][6])

	cats := readCSV(t, filepath.Join(dir, "csv", "categories.csv"))
	assert.Equal(t, "overall", cats[len(cats)-1][0])
	// header, repo_governance, overall
	assert.Len(t, cats, 3)
}

func TestRedactedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redacted.json")
	a := sample()
	require.NoError(t, WriteRedactedJSON(path, a))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(raw)
	assert.NotContains(t, s, "billing")
	assert.NotContains(t, s, "acme")
	assert.NotContains(t, s, "cust-9")
	assert.NotContains(t, s, "example.com")
	assert.Contains(t, s, "repo-1")
	assert.Contains(t, s, "REPO-001")

	// the source assessment is untouched
	assert.Equal(t, "billing", a.Repos[0].Repo.Name)
	assert.Equal(t, "billing", a.Findings[0].Subject)
}

func TestBuildSummary(t *testing.T) {
	a := sample()
	s := BuildSummary(a, 90, "FIRST_RUN", 0)
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "Medium", s.DORALevel)
	assert.Equal(t, 2, s.Repos)
	assert.Len(t, s.Categories, 1)

	assert.Equal(t, StatusPassed, BuildSummary(a, 50, "SAME", 0).Status)

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, WriteSummary(path, s))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"status": "FAILED"`))
}

func TestWriteJSONLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON(filepath.Join(dir, "a.json"), sample()))
	require.NoError(t, WriteJSON(filepath.Join(dir, "a.json"), sample()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}
