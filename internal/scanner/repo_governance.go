package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var repoGovernanceCatalog = catalog.NewBuilder(model.CategoryRepoGovernance).
	Add("REPO-001", "Default branch protected", model.SeverityCritical, 2,
		"The repository's default branch must have branch-protection rules enabled.").
	Add("REPO-002", "PR reviews required", model.SeverityHigh, 1.5,
		"At least one approving review must be required before merging a pull request.").
	Add("REPO-003", "Minimum 2 approvals required", model.SeverityMedium, 1,
		"Two or more approving reviews must be required before a pull request can be merged.").
	Add("REPO-004", "Stale reviews dismissed on push", model.SeverityMedium, 1,
		"Existing approvals must be invalidated when new commits are pushed to an open PR.").
	Add("REPO-005", "Admin enforcement enabled", model.SeverityHigh, 1.5,
		"Branch-protection rules must apply to repository administrators without exception.").
	Add("REPO-006", "Force push disabled", model.SeverityHigh, 1.5,
		"Force-pushing to the default branch must be prohibited to preserve commit history.").
	Add("REPO-007", "Signed commits required", model.SeverityLow, 0.5,
		"All commits merged to the default branch must be GPG-signed to verify authorship.").
	Add("REPO-008", "CODEOWNERS file present", model.SeverityMedium, 1,
		"A CODEOWNERS file must define explicit ownership for code areas to auto-assign reviewers.").
	Add("REPO-009", "Branch naming convention enforced", model.SeverityLow, 0.5,
		"Branch names must follow a documented convention (e.g. feat/, fix/, chore/) for traceability.").
	Add("REPO-010", "Tag protection rules configured", model.SeverityMedium, 1,
		"Tag protection rules must restrict who can create or delete version tags.").
	Add("REPO-011", "Auto-delete head branches enabled", model.SeverityLow, 0.5,
		"Merged PR branches must be deleted automatically to keep the branch list manageable.").
	Add("REPO-012", "Merge strategy restricted", model.SeverityLow, 0.5,
		"The allowed merge strategies (merge commit, squash, rebase) must be explicitly restricted to maintain a clean and auditable commit history.").
	Build()

type repoGovernanceScanner struct{ domain }

func newRepoGovernance() *repoGovernanceScanner {
	return &repoGovernanceScanner{domain{name: "repo_governance", reg: repoGovernanceCatalog}}
}

func (s *repoGovernanceScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	evalBranchProtection(r, branchProtectionIDs{
		protected:      "REPO-001",
		reviews:        "REPO-002",
		twoApprovals:   "REPO-003",
		staleDismissed: "REPO-004",
		adminEnforced:  "REPO-005",
		noForcePush:    "REPO-006",
		signed:         "REPO-007",
	}, ev.BranchProtection)

	r.boolCheck("REPO-008", ev.HasCodeowners,
		"A CODEOWNERS file is present.",
		"No CODEOWNERS file was found; reviewers are not assigned automatically.",
		model.Evidence{"has_codeowners": true})
	r.manualReview("REPO-009", "Branch naming convention enforcement")
	r.manualReview("REPO-010", "Tag protection rule configuration")
	r.manualReview("REPO-011", "Automatic head-branch deletion after merge")
	r.manualReview("REPO-012", "Allowed merge strategies (merge commit, squash, rebase)")

	return r.verdicts()
}
