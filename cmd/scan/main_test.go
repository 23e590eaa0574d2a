package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const evidenceYAML = `
org:
  orgName: acme
  members: {totalMembers: 10, adminCount: 1, mfaEnforced: true, ssoEnabled: true}
repos:
  - repo: {name: api, defaultBranch: main}
    branchProtection: {isProtected: true, requiredReviews: 2, enforceAdmins: true}
    hasLicense: true
    hasReadme: true
  - repo: {name: web}
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	ev := filepath.Join(dir, "acme.yaml")
	require.NoError(t, os.WriteFile(ev, []byte(evidenceYAML), 0o644))
	out := filepath.Join(dir, "out")

	stdout, err := execute(t, "scan", ev, "--out", out, "--min-score", "0",
		"--format", "json,markdown,csv", "--redact", "--metrics", "--log-level", "error")
	require.NoError(t, err, stdout)
	assert.Contains(t, stdout, "Status: PASSED")

	for _, name := range []string{jsonFile, markdownFile, redactedFile, summaryFile, "metrics.prom",
		"assessment-enriched.json", filepath.Join("csv", "checks.csv"), filepath.Join("history", "index.json")} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	raw, err := os.ReadFile(filepath.Join(out, jsonFile))
	require.NoError(t, err)
	var a model.Assessment
	require.NoError(t, json.Unmarshal(raw, &a))
	assert.Equal(t, "acme", a.Metadata.OrgName)
	assert.Len(t, a.Repos, 2)
	assert.Len(t, a.Checks, 189)
	assert.Len(t, a.TrendHistory, 1)
}

func TestScanCIModeFailsBelowMinScore(t *testing.T) {
	dir := t.TempDir()
	ev := filepath.Join(dir, "acme.yaml")
	require.NoError(t, os.WriteFile(ev, []byte(evidenceYAML), 0o644))

	stdout, err := execute(t, "scan", ev, "--out", filepath.Join(dir, "out"), "--ci", "--min-score", "100", "--log-level", "error")
	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.code)

	line := strings.TrimSpace(stdout)
	var s model.ScanSummary
	require.NoError(t, json.Unmarshal([]byte(line), &s), line)
	assert.Equal(t, "FAILED", s.Status)
	assert.Equal(t, "FIRST_RUN", s.Trend)
	assert.Equal(t, 2, s.Repos)
}

func TestScanRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	ev := filepath.Join(dir, "acme.yaml")
	require.NoError(t, os.WriteFile(ev, []byte(evidenceYAML), 0o644))

	_, err := execute(t, "scan", ev, "--out", filepath.Join(dir, "out"), "--workers", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Workers")
}

func TestScanConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	ev := filepath.Join(dir, "acme.yaml")
	require.NoError(t, os.WriteFile(ev, []byte(evidenceYAML), 0o644))
	cfgPath := filepath.Join(dir, "scan.yaml")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(cfgPath, []byte("profile: security\nminScore: 0\nformats: [json]\nhistory: false\noutDir: "+out+"\n"), 0o644))

	_, err := execute(t, "scan", ev, "--config", cfgPath, "--profile", "delivery", "--log-level", "error")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(out, jsonFile))
	require.NoError(t, err)
	var a model.Assessment
	require.NoError(t, json.Unmarshal(raw, &a))
	assert.Equal(t, "delivery", a.Metadata.Profile)
	assert.NoFileExists(t, filepath.Join(out, markdownFile))
	assert.NoFileExists(t, filepath.Join(out, "history", "index.json"))
}

func TestScanMissingEvidence(t *testing.T) {
	_, err := execute(t, "scan", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalogJSON(t *testing.T) {
	stdout, err := execute(t, "catalog", "--json")
	require.NoError(t, err)
	var domains []catalogDomain
	require.NoError(t, json.Unmarshal([]byte(stdout), &domains))
	assert.Len(t, domains, 18)
	total := 0
	for _, d := range domains {
		total += len(d.Checks)
	}
	assert.Equal(t, 189, total)
}

func TestCatalogSingleDomain(t *testing.T) {
	stdout, err := execute(t, "catalog", "--domain", "cicd")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CICD-001")
	assert.NotContains(t, stdout, "SEC-001")

	_, err = execute(t, "catalog", "--domain", "nope")
	assert.Error(t, err)
}

func TestBenchmarkScore(t *testing.T) {
	stdout, err := execute(t, "benchmark", "--score", "72")
	require.NoError(t, err)
	assert.Contains(t, stdout, "DORA: high")

	_, err = execute(t, "benchmark")
	assert.Error(t, err)
	_, err = execute(t, "benchmark", "--score", "120")
	assert.Error(t, err)
}

func TestBenchmarkAssessment(t *testing.T) {
	dir := t.TempDir()
	ev := filepath.Join(dir, "acme.yaml")
	require.NoError(t, os.WriteFile(ev, []byte(evidenceYAML), 0o644))
	out := filepath.Join(dir, "out")
	_, err := execute(t, "scan", ev, "--out", out, "--min-score", "0", "--log-level", "error")
	require.NoError(t, err)

	stdout, err := execute(t, "benchmark", "--assessment", filepath.Join(out, jsonFile))
	require.NoError(t, err)
	assert.Contains(t, stdout, "OpenSSF Scorecard:")
	assert.Contains(t, stdout, "CIS supply chain:")
}
