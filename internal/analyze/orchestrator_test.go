package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/profile"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/scanner"
)

type panicky struct{}

func (panicky) Name() string                                 { return "panicky" }
func (panicky) Category() model.Category                     { return model.CategoryMigration }
func (panicky) Checks() []model.CheckDescriptor              { return nil }
func (panicky) Evaluate(*model.RepoEvidence) []model.Verdict { panic("boom") }

type countingObserver struct {
	domains int
	skipped []string
}

func (c *countingObserver) ObserveDomain(string, time.Duration) { c.domains++ }

func (c *countingObserver) DomainSkipped(d string) { c.skipped = append(c.skipped, d) }

func sampleRepo(name string) *model.RepoEvidence {
	return &model.RepoEvidence{
		Repo: model.Repository{Name: name},
		BranchProtection: &model.BranchProtection{
			IsProtected: true, RequiredReviews: 1, EnforceAdmins: true,
		},
		Security: &model.SecurityFeatures{DependabotEnabled: true, SecretScanningEnabled: true},
		Workflows: []model.Workflow{{
			Name: "ci", TriggerEvents: []string{"pull_request"}, HasTests: true,
			RecentRuns: []model.WorkflowRun{{Conclusion: ptr.To("success"), DurationSeconds: ptr.To(120.0)}},
		}},
		HasLicense: true,
		HasReadme:  true,
	}
}

func TestRunRepoScanCoversEveryCheck(t *testing.T) {
	o := New()
	vs, skips := o.RunRepoScan(sampleRepo("api"))
	assert.Empty(t, skips)

	want := 0
	for _, e := range scanner.RepoEvaluators() {
		want += len(e.Checks())
	}
	assert.Len(t, vs, want)
	assert.Equal(t, "REPO-001", vs[0].Check.ID)
	assert.Equal(t, "GOV-005", vs[len(vs)-1].Check.ID)
}

func TestRunOrgScanNilEvidence(t *testing.T) {
	vs, skips := New().RunOrgScan(nil)
	assert.Empty(t, skips)
	assert.Len(t, vs, 23)
}

func TestPanickingDomainIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	obs := &countingObserver{}
	o := New(
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithObserver(obs),
		WithRepoEvaluators(scanner.RepoEvaluators()[0], panicky{}, scanner.RepoEvaluators()[1]),
	)

	vs, skips := o.RunRepoScan(sampleRepo("api"))
	require.Len(t, skips, 1)
	assert.Equal(t, "panicky", skips[0].Domain)
	assert.Equal(t, "api", skips[0].Subject)
	assert.Contains(t, skips[0].Reason, "boom")
	assert.Len(t, vs, 12+14)
	assert.Equal(t, 3, obs.domains)
	assert.Equal(t, []string{"panicky"}, obs.skipped)
	assert.Contains(t, buf.String(), `"domain":"panicky"`)
}

func TestAssessIsDeterministic(t *testing.T) {
	in := Input{
		Org:   &model.OrgEvidence{OrgName: "acme", Members: &model.OrgMembers{TotalMembers: 10, AdminCount: 1}},
		Repos: []*model.RepoEvidence{sampleRepo("api"), sampleRepo("web"), {Repo: model.Repository{Name: "empty"}}},
	}
	o := New(WithWorkers(2))
	first, err := o.Assess(context.Background(), in)
	require.NoError(t, err)
	second, err := o.Assess(context.Background(), in)
	require.NoError(t, err)

	a, _ := json.Marshal(first.Verdicts())
	b, _ := json.Marshal(second.Verdicts())
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.Benchmarks, second.Benchmarks)
}

func TestAssessPoolsSubjects(t *testing.T) {
	in := Input{
		Org:   &model.OrgEvidence{OrgName: "acme"},
		Repos: []*model.RepoEvidence{sampleRepo("api"), {Repo: model.Repository{Name: "bare"}}},
	}
	a, err := New(WithWorkers(1)).Assess(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "acme", a.Metadata.OrgName)
	require.Len(t, a.Repos, 2)
	assert.Equal(t, "api", a.Repos[0].Repo.Name)
	assert.Equal(t, "bare", a.Repos[1].Repo.Name)
	assert.Len(t, a.Verdicts(), 23+2*166)

	cicd := a.Categories[model.CategoryCICD]
	assert.Equal(t, 28, cicd.FindingCount)
	assert.Equal(t, a.Overall, OverallScore(a.Categories))
	assert.Equal(t, Maturity(a.Overall), a.Maturity)

	// one repo passing CICD-001 is enough for the benchmark passed set
	assert.GreaterOrEqual(t, a.Benchmarks.SLSA.Level, 1)
	assert.NotEmpty(t, a.Findings)
	assert.NotEmpty(t, a.Checks)
	assert.Equal(t, "standard", a.Metadata.Profile)
}

func TestAssessHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Assess(ctx, Input{Repos: []*model.RepoEvidence{sampleRepo("api")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProfileChangesOverallWeights(t *testing.T) {
	o := New(WithProfile(profile.Security))
	got := o.Aggregate(nil)
	want := profile.Weights(profile.Security)
	for _, c := range model.Categories() {
		assert.Equal(t, want[c], got[c].Weight, string(c))
	}
	assert.Greater(t, got[model.CategoryIdentityAccess].Weight, model.DomainWeight(model.CategoryIdentityAccess))
}

func TestBuildFindingsOrdering(t *testing.T) {
	a := &model.Assessment{Repos: []model.RepoResult{{
		Repo: model.Repository{Name: "api"},
		Verdicts: []model.Verdict{
			{Check: model.CheckDescriptor{ID: "B-1", Severity: model.SeverityLow}, Status: model.StatusFailed},
			{Check: model.CheckDescriptor{ID: "A-1", Severity: model.SeverityCritical}, Status: model.StatusWarning},
			{Check: model.CheckDescriptor{ID: "A-2", Severity: model.SeverityCritical}, Status: model.StatusFailed},
			{Check: model.CheckDescriptor{ID: "C-1", Severity: model.SeverityHigh}, Status: model.StatusPassed},
			{Check: model.CheckDescriptor{ID: "C-2", Severity: model.SeverityHigh}, Status: model.StatusNotApplicable},
		},
	}}}
	got := BuildFindings(a)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"A-2", "A-1", "B-1"}, []string{got[0].CheckID, got[1].CheckID, got[2].CheckID})
	assert.Equal(t, "api", got[0].Subject)
}

func TestBuildCheckRowsRollsUpSubjects(t *testing.T) {
	d := model.CheckDescriptor{ID: "CICD-001", Name: "CI pipeline exists", Category: model.CategoryCICD, Weight: 2}
	a := &model.Assessment{Repos: []model.RepoResult{
		{Verdicts: []model.Verdict{{Check: d, Status: model.StatusPassed}}},
		{Verdicts: []model.Verdict{{Check: d, Status: model.StatusFailed}}},
	}}
	rows := BuildCheckRows(a)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Passed)
	assert.Equal(t, 1, rows[0].Failed)
	assert.Equal(t, 2.0, rows[0].Earned)
	assert.Equal(t, 4.0, rows[0].Max)
	assert.Equal(t, model.StatusFailed, rows[0].Status)
}
