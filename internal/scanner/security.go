package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var securityCatalog = catalog.NewBuilder(model.CategorySecurity).
	Add("SEC-001", "Default branch is protected", model.SeverityCritical, 2,
		"The repository default branch must have branch-protection rules enabled.").
	Add("SEC-002", "PR reviews required", model.SeverityHigh, 1.5,
		"At least one approving review must be required before merging.").
	Add("SEC-003", "Minimum 2 approvals required", model.SeverityMedium, 1,
		"Two or more approving reviews must be required before merging.").
	Add("SEC-004", "Stale reviews dismissed on push", model.SeverityMedium, 1,
		"Existing approvals must be dismissed when new commits are pushed.").
	Add("SEC-005", "Admin enforcement enabled", model.SeverityHigh, 1.5,
		"Branch-protection rules must also apply to repository administrators.").
	Add("SEC-006", "Force push disabled", model.SeverityHigh, 1.5,
		"Force-pushing to the default branch must be prohibited.").
	Add("SEC-007", "Signed commits required", model.SeverityLow, 0.5,
		"All commits merged to the default branch must be GPG-signed.").
	Add("SEC-010", "Dependency scanning enabled", model.SeverityCritical, 2,
		"Dependabot (or equivalent) must be enabled to surface known CVEs.").
	Add("SEC-011", "No critical vulnerabilities", model.SeverityCritical, 2,
		"The repository must have no open critical-severity vulnerability alerts.").
	Add("SEC-012", "No high vulnerabilities", model.SeverityHigh, 1.5,
		"The repository must have no open high-severity vulnerability alerts.").
	Add("SEC-013", "Secret scanning enabled", model.SeverityCritical, 2,
		"Secret scanning must be active to detect accidental credential exposure.").
	Add("SEC-014", "No exposed secrets", model.SeverityCritical, 2,
		"No open alerts indicating a secret or credential has been leaked.").
	Add("SEC-020", "SBOM available", model.SeverityMedium, 1,
		"A Software Bill of Materials must be generated and available.").
	Add("SEC-021", "Security policy present", model.SeverityMedium, 1,
		"A SECURITY.md (or equivalent) must document the vulnerability-disclosure process.").
	Add("SEC-022", "CI actions/images pinned", model.SeverityHigh, 1.5,
		"All referenced CI actions and container images should be pinned to an immutable digest rather than a mutable tag.").
	Build()

type securityScanner struct{ domain }

func newSecurity() *securityScanner {
	return &securityScanner{domain{name: "security", reg: securityCatalog}}
}

// Evaluate covers branch protection, dependency and secret alerts, SBOM and
// disclosure policy. Branch-protection checks fail without data; security
// feature checks are not applicable without data.
func (s *securityScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)
	sec := ev.Security

	evalBranchProtection(r, branchProtectionIDs{
		protected:      "SEC-001",
		reviews:        "SEC-002",
		twoApprovals:   "SEC-003",
		staleDismissed: "SEC-004",
		adminEnforced:  "SEC-005",
		noForcePush:    "SEC-006",
		signed:         "SEC-007",
	}, ev.BranchProtection)

	evalSecurityFlag(r, "SEC-010", sec, func(f *model.SecurityFeatures) bool { return f.DependabotEnabled },
		"Dependabot dependency scanning is enabled.",
		"Dependabot dependency scanning is not enabled.")
	evalSeverityAlerts(r, "SEC-011", "critical", sec)
	evalSeverityAlerts(r, "SEC-012", "high", sec)
	evalSecurityFlag(r, "SEC-013", sec, func(f *model.SecurityFeatures) bool { return f.SecretScanningEnabled },
		"Secret scanning is enabled.",
		"Secret scanning is not enabled.")
	evalExposedSecrets(r, "SEC-014", sec)

	r.boolCheck("SEC-020", ev.HasSBOM,
		"SBOM artefact is present.",
		"No SBOM artefact was detected.",
		nil)
	evalSecurityFlag(r, "SEC-021", sec, func(f *model.SecurityFeatures) bool { return f.HasSecurityPolicy },
		"A security policy file is present.",
		"No security policy file (e.g. SECURITY.md) was found.")

	// Pinning needs workflow and Dockerfile contents, which the evidence does not carry.
	r.manualReview("SEC-022", "CI action / container image pinning")

	return r.verdicts()
}
