package enrich

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/history"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/trend"
)

func assessment(id string, cicd float64) *model.Assessment {
	a := model.NewAssessment(id, time.Time{})
	a.Metadata.Profile = "standard"
	a.Categories[model.CategoryCICD] = model.CategoryScore{
		Category: model.CategoryCICD, Score: cicd, MaxScore: 10, Weight: model.DomainWeight(model.CategoryCICD),
	}
	a.Overall = cicd * 10
	a.Maturity = "SILVER"
	return &a
}

func TestRunFirstRun(t *testing.T) {
	dir := t.TempDir()
	a := assessment("one", 5)

	en, err := Run(a, Options{OutDir: dir})
	require.NoError(t, err)
	assert.Nil(t, en.Previous)
	assert.Nil(t, en.Trend)
	assert.Equal(t, []float64{50}, en.LastN)
	assert.Len(t, en.Profiles, 4)
}

func TestRunAgainstHistory(t *testing.T) {
	dir := t.TempDir()
	_, err := history.Record(dir, assessment("one", 5))
	require.NoError(t, err)

	curr := assessment("two", 8)
	_, err = history.Record(dir, curr)
	require.NoError(t, err)

	en, err := Run(curr, Options{OutDir: dir})
	require.NoError(t, err)
	require.NotNil(t, en.Previous)
	assert.Equal(t, "one", en.Previous.ScanID)
	require.NotNil(t, en.Trend)
	assert.Equal(t, trend.Up, en.Trend.Direction)
	assert.Equal(t, []float64{50, 80}, en.LastN)

	require.Len(t, en.CategoryDeltas, 1)
	assert.Equal(t, 30.0, en.CategoryDeltas[0].Delta)
}

func TestRunLastNCap(t *testing.T) {
	dir := t.TempDir()
	for i, id := range []string{"a", "b", "c", "d"} {
		_, err := history.Record(dir, assessment(id, float64(i+1)))
		require.NoError(t, err)
	}
	en, err := Run(assessment("e", 9), Options{OutDir: dir, LastNCount: 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 40, 90}, en.LastN)
}

func TestProfileScoresSingleCategory(t *testing.T) {
	cats := map[model.Category]model.CategoryScore{
		model.CategoryCICD: {Score: 3, MaxScore: 4},
	}
	for _, p := range ProfileScores(cats) {
		assert.Equal(t, 75.0, p.Overall, p.Profile)
		assert.Equal(t, "GOLD", p.Maturity)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, reportFile), []byte("# Report\n"), 0644))

	en, err := Run(assessment("one", 5), Options{OutDir: dir})
	require.NoError(t, err)
	require.NoError(t, WriteArtifacts(dir, en))

	assert.FileExists(t, filepath.Join(dir, enrichedFile))
	md, err := os.ReadFile(filepath.Join(dir, reportFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "FIRST RUN")
	assert.Contains(t, string(md), "| security |")
}
