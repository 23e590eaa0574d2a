package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func cicdWith(rs []model.WorkflowRun) map[string]model.Verdict {
	ev := &model.RepoEvidence{Workflows: []model.Workflow{{Name: "ci", RecentRuns: rs}}}
	return byID(newCICD().Evaluate(ev))
}

func TestPipelineSuccessRateBuckets(t *testing.T) {
	cases := []struct {
		name    string
		success int
		failure int
		want    model.Status
	}{
		{"all green", 20, 0, model.StatusPassed},
		{"exactly 95", 19, 1, model.StatusPassed},
		{"just under 95", 18, 1, model.StatusWarning},
		{"exactly 80", 4, 1, model.StatusWarning},
		{"under 80", 3, 1, model.StatusFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := runs(append(repeat("success", tc.success), repeat("failure", tc.failure)...)...)
			got := cicdWith(rs)["CICD-008"]
			assert.Equal(t, tc.want, got.Status, got.Detail)
			assert.Equal(t, tc.success+tc.failure, got.Evidence["total_runs"])
		})
	}
}

func TestPipelineSuccessRateIgnoresInProgressRuns(t *testing.T) {
	rs := append(runs("success", "success"), model.WorkflowRun{Status: "in_progress"})
	got := cicdWith(rs)["CICD-008"]
	assert.Equal(t, model.StatusPassed, got.Status)
	assert.Equal(t, model.Evidence{"total_runs": 2, "success_runs": 2, "success_rate_pct": 100.0}, got.Evidence)

	got = cicdWith([]model.WorkflowRun{{Status: "queued"}})["CICD-008"]
	assert.Equal(t, model.StatusNotApplicable, got.Status)
	assert.Equal(t, "No completed workflow runs found.", got.Detail)

	got = cicdWith(nil)["CICD-008"]
	assert.Equal(t, model.StatusNotApplicable, got.Status)
	assert.Equal(t, "No recent workflow runs available for analysis.", got.Detail)
}

func TestBuildTimeThreshold(t *testing.T) {
	timed := func(secs ...float64) []model.WorkflowRun {
		var out []model.WorkflowRun
		for _, s := range secs {
			out = append(out, model.WorkflowRun{Conclusion: ptr.To("success"), DurationSeconds: ptr.To(s)})
		}
		return out
	}
	assert.Equal(t, model.StatusPassed, cicdWith(timed(599.9))["CICD-009"].Status)
	assert.Equal(t, model.StatusFailed, cicdWith(timed(600))["CICD-009"].Status)

	got := cicdWith(timed(300, 900))["CICD-009"]
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Equal(t, 10.0, got.Evidence["average_duration_minutes"])

	untimed := cicdWith(runs("success"))["CICD-009"]
	assert.Equal(t, model.StatusNotApplicable, untimed.Status)
}

func mergedPRs(reviewed, unreviewed int) []model.PullRequest {
	var out []model.PullRequest
	for i := 0; i < reviewed; i++ {
		out = append(out, model.PullRequest{Number: i, Merged: true, ReviewCount: 1})
	}
	for i := 0; i < unreviewed; i++ {
		out = append(out, model.PullRequest{Number: reviewed + i, Merged: true})
	}
	return out
}

func TestReviewCoverageBuckets(t *testing.T) {
	sdlc := func(prs []model.PullRequest) model.Status {
		return byID(newSDLCProcess().Evaluate(&model.RepoEvidence{RecentPRs: prs}))["SDLC-003"].Status
	}
	collab := func(prs []model.PullRequest) model.Status {
		return byID(newCollaboration().Evaluate(&model.RepoEvidence{RecentPRs: prs}))["COLLAB-006"].Status
	}

	// thresholds are strict, so the boundary value falls to the lower bucket
	assert.Equal(t, model.StatusPassed, sdlc(mergedPRs(4, 1)))
	assert.Equal(t, model.StatusWarning, sdlc(mergedPRs(3, 1)))
	assert.Equal(t, model.StatusFailed, sdlc(mergedPRs(1, 1)))
	assert.Equal(t, model.StatusNotApplicable, sdlc(nil))
	assert.Equal(t, model.StatusNotApplicable, sdlc([]model.PullRequest{{Number: 1, ReviewCount: 3}}))

	assert.Equal(t, model.StatusPassed, collab(mergedPRs(19, 1)))
	assert.Equal(t, model.StatusWarning, collab(mergedPRs(9, 1)))
	assert.Equal(t, model.StatusFailed, collab(mergedPRs(3, 1)))
}

func TestReviewCoverageEvidence(t *testing.T) {
	prs := append(mergedPRs(2, 1), model.PullRequest{Number: 99, ReviewCount: 5})
	got := byID(newSDLCProcess().Evaluate(&model.RepoEvidence{RecentPRs: prs}))["SDLC-003"]
	assert.Equal(t, model.Evidence{
		"merged_pr_count":     3,
		"reviewed_pr_count":   2,
		"review_coverage_pct": 66.7,
	}, got.Evidence)
}

func TestPRSizeBuckets(t *testing.T) {
	size := func(lines ...int) model.Status {
		var prs []model.PullRequest
		for i, l := range lines {
			prs = append(prs, model.PullRequest{Number: i, Additions: l})
		}
		return byID(newSDLCProcess().Evaluate(&model.RepoEvidence{RecentPRs: prs}))["SDLC-004"].Status
	}
	assert.Equal(t, model.StatusPassed, size(499))
	assert.Equal(t, model.StatusWarning, size(500))
	assert.Equal(t, model.StatusWarning, size(999))
	assert.Equal(t, model.StatusFailed, size(1000))
	assert.Equal(t, model.StatusPassed, size(100, 800))
	assert.Equal(t, model.StatusNotApplicable, size())
}

func TestCoverageThreshold(t *testing.T) {
	cq := func(cov *float64) model.Verdict {
		return byID(newCodeQuality().Evaluate(&model.RepoEvidence{TestCoveragePercent: cov}))["CQ-004"]
	}
	assert.Equal(t, model.StatusPassed, cq(ptr.To(60.0)).Status)
	assert.Equal(t, model.StatusFailed, cq(ptr.To(59.9)).Status)
	none := cq(nil)
	assert.Equal(t, model.StatusNotApplicable, none.Status)
	assert.Equal(t, "Code coverage data not available.", none.Detail)
}

func TestAdminRatioThreshold(t *testing.T) {
	iam := func(m *model.OrgMembers) model.Verdict {
		return byID(newIdentityAccess().EvaluateOrg(&model.OrgEvidence{OrgName: "acme", Members: m}))["IAM-003"]
	}
	assert.Equal(t, model.StatusPassed, iam(&model.OrgMembers{TotalMembers: 100, AdminCount: 5}).Status)
	assert.Equal(t, model.StatusFailed, iam(&model.OrgMembers{TotalMembers: 100, AdminCount: 6}).Status)
	assert.Equal(t, model.StatusNotApplicable, iam(&model.OrgMembers{}).Status)
	assert.Equal(t, model.StatusNotApplicable, iam(nil).Status)

	got := iam(&model.OrgMembers{TotalMembers: 40, AdminCount: 2})
	assert.Equal(t, 5.0, got.Evidence["admin_ratio_pct"])
}
