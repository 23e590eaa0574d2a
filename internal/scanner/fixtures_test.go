package scanner

import (
	"k8s.io/utils/ptr"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func hardenedRepo() *model.RepoEvidence {
	return &model.RepoEvidence{
		Repo: model.Repository{Name: "payments", DefaultBranch: "main"},
		BranchProtection: &model.BranchProtection{
			IsProtected:          true,
			RequiredReviews:      2,
			DismissStaleReviews:  true,
			EnforceAdmins:        true,
			RequireSignedCommits: true,
		},
		Security: &model.SecurityFeatures{
			DependabotEnabled:     true,
			SecretScanningEnabled: true,
			CodeScanningEnabled:   true,
			HasSecurityPolicy:     true,
		},
		Workflows: []model.Workflow{{
			Name:            "ci",
			TriggerEvents:   []string{"push", "pull_request"},
			HasTests:        true,
			HasLint:         true,
			HasSecurityScan: true,
			HasDeploy:       true,
			RecentRuns: []model.WorkflowRun{
				{Status: "completed", Conclusion: ptr.To("success"), DurationSeconds: ptr.To(240.0)},
				{Status: "completed", Conclusion: ptr.To("success"), DurationSeconds: ptr.To(300.0)},
			},
		}},
		RecentPRs: []model.PullRequest{
			{Number: 1, Additions: 40, Deletions: 10, ReviewCount: 1, Merged: true},
			{Number: 2, Additions: 100, Deletions: 20, ReviewCount: 2, Merged: true},
		},
		HasCodeowners:   true,
		HasLicense:      true,
		HasReadme:       true,
		HasSBOM:         true,
		HasDockerfile:   true,
		HasIaCFiles:     true,
		IaCTool:         "terraform",
		HasEditorconfig: true,
	}
}

func fullOrg() *model.OrgEvidence {
	return &model.OrgEvidence{
		OrgName: "acme",
		Members: &model.OrgMembers{TotalMembers: 100, AdminCount: 3, MFAEnforced: true, SSOEnabled: true},
		SecuritySettings: &model.OrgSecuritySettings{
			DefaultRepoPermission:       ptr.To("read"),
			MembersCanCreatePublicRepos: ptr.To(false),
			IPAllowListEnabled:          true,
		},
		HasOrgLevelSecurityPolicy: true,
		BillingPlan:               ptr.To("Enterprise Cloud"),
	}
}

func byID(vs []model.Verdict) map[string]model.Verdict {
	out := make(map[string]model.Verdict, len(vs))
	for _, v := range vs {
		out[v.Check.ID] = v
	}
	return out
}

func runs(conclusions ...string) []model.WorkflowRun {
	out := make([]model.WorkflowRun, 0, len(conclusions))
	for _, c := range conclusions {
		out = append(out, model.WorkflowRun{Status: "completed", Conclusion: ptr.To(c)})
	}
	return out
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
