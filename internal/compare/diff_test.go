package compare

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func build(id string, overall float64, repos ...string) *model.Assessment {
	a := model.NewAssessment(id, time.Time{})
	a.Overall = overall
	for _, r := range repos {
		a.Repos = append(a.Repos, model.RepoResult{Repo: model.Repository{Name: r}})
	}
	return &a
}

func TestDiff(t *testing.T) {
	prev := build("prev", 60, "api", "web")
	prev.Benchmarks.DORA.Level = "Medium"
	prev.Benchmarks.OpenSSF = map[string]bool{"Branch-Protection": true, "License": true}
	prev.Categories[model.CategoryCICD] = model.CategoryScore{Score: 1, MaxScore: 2}
	prev.Findings = []model.Finding{
		{CheckID: "REPO-001", Subject: "api", Status: model.StatusFailed},
		{CheckID: "CICD-001", Subject: "web", Status: model.StatusFailed},
	}

	curr := build("curr", 72.5, "api", "cli")
	curr.Benchmarks.DORA.Level = "High"
	curr.Benchmarks.SLSA.Level = 1
	curr.Benchmarks.OpenSSF = map[string]bool{"Branch-Protection": true, "License": false, "Fuzzing": true}
	curr.Categories[model.CategoryCICD] = model.CategoryScore{Score: 2, MaxScore: 2}
	curr.Findings = []model.Finding{
		{CheckID: "REPO-001", Subject: "api", Status: model.StatusWarning},
		{CheckID: "SAST-001", Subject: "cli", Status: model.StatusFailed},
	}

	d := Diff(prev, curr)
	assert.Equal(t, "prev", d.PreviousScanID)
	assert.Equal(t, 12.5, d.ScoreDelta)
	assert.Equal(t, []string{"cli"}, d.ReposAdded)
	assert.Equal(t, []string{"web"}, d.ReposRemoved)
	assert.Equal(t, "Medium", d.DORAPrevious)
	assert.Equal(t, "High", d.DORACurrent)
	assert.Equal(t, 1, d.SLSACurrent)
	assert.Equal(t, []string{"Fuzzing"}, d.OpenSSFGained)
	assert.Equal(t, []string{"License"}, d.OpenSSFLost)

	require.Len(t, d.FindingsNew, 1)
	assert.Equal(t, "SAST-001", d.FindingsNew[0].CheckID)
	require.Len(t, d.FindingsResolved, 1)
	assert.Equal(t, "CICD-001", d.FindingsResolved[0].CheckID)

	require.Len(t, d.CategoryDeltas, 1)
	assert.Equal(t, 50.0, d.CategoryDeltas[0].Delta)
}

func TestDiffIdentical(t *testing.T) {
	a := build("same", 80, "api")
	d := Diff(a, a)
	assert.Zero(t, d.ScoreDelta)
	assert.Empty(t, d.ReposAdded)
	assert.Empty(t, d.FindingsNew)
	assert.Empty(t, d.CategoryDeltas)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prev.json")
	raw, err := json.Marshal(build("x", 42, "api"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "x", a.Scan.ScanID)
	assert.Equal(t, 42.0, a.Overall)

	require.NoError(t, os.WriteFile(path, []byte("nope"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
