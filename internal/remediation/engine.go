// Package remediation turns failing verdicts into prioritized improvement
// steps, one per failing check, naming every subject it failed for.
package remediation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

type playbook struct {
	title   string
	detail  string
	actions []string
}

// Generate produces a sorted list of remediation steps from the
// assessment's findings. Failed and error findings get a step per check;
// manual-review warnings are folded into a single optional step.
func Generate(a *model.Assessment) []model.RemediationStep {
	byCheck := map[string]*model.RemediationStep{}
	var order []string
	var review []string
	reviewSeen := map[string]bool{}

	for _, f := range a.Findings {
		if f.Status == model.StatusWarning {
			if !reviewSeen[f.CheckID] {
				reviewSeen[f.CheckID] = true
				review = append(review, f.CheckID)
			}
			continue
		}
		s, ok := byCheck[f.CheckID]
		if !ok {
			s = stepForFinding(f)
			byCheck[f.CheckID] = s
			order = append(order, f.CheckID)
		}
		if f.Subject != "" && !contains(s.Subjects, f.Subject) {
			s.Subjects = append(s.Subjects, f.Subject)
		}
	}

	steps := make([]model.RemediationStep, 0, len(order)+1)
	for _, id := range order {
		steps = append(steps, *byCheck[id])
	}
	if len(review) > 0 {
		sort.Strings(review)
		steps = append(steps, manualReviewStep(review))
	}

	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].Priority != steps[j].Priority {
			return steps[i].Priority < steps[j].Priority
		}
		return steps[i].CheckID < steps[j].CheckID
	})
	return steps
}

// priorityFor maps severity to 1=critical, 2=recommended, 3=optional.
func priorityFor(s model.Severity) int {
	switch s {
	case model.SeverityCritical, model.SeverityHigh:
		return 1
	case model.SeverityMedium:
		return 2
	default:
		return 3
	}
}

func stepForFinding(f model.Finding) *model.RemediationStep {
	p, ok := playbookFor(f.CheckID)
	if !ok {
		p = playbook{
			title:  fmt.Sprintf("Resolve %s: %s", f.CheckID, f.Name),
			detail: f.Detail,
		}
	}
	if p.detail == "" {
		p.detail = f.Detail
	}
	return &model.RemediationStep{
		Priority: priorityFor(f.Severity),
		Category: f.Category,
		Title:    p.title,
		Detail:   p.detail,
		Actions:  p.actions,
		CheckID:  f.CheckID,
	}
}

// playbookFor returns the tailored guidance for checks that share a fix.
func playbookFor(checkID string) (playbook, bool) {
	switch checkID {
	case "SEC-001", "REPO-001", "SEC-005", "REPO-005", "SEC-006", "REPO-006":
		return playbook{
			title:  "Protect the default branch",
			detail: "Unprotected default branches allow force pushes and unreviewed changes to reach production.",
			actions: []string{
				"gh api -X PUT repos/<owner>/<repo>/branches/<branch>/protection --input protection.json",
				`# protection.json: {"enforce_admins": true, "allow_force_pushes": false, "required_pull_request_reviews": {"required_approving_review_count": 2}}`,
			},
		}, true
	case "SEC-002", "REPO-002", "SEC-003", "REPO-003", "SEC-004", "REPO-004":
		return playbook{
			title:  "Require pull-request reviews before merge",
			detail: "At least two approvals with stale-review dismissal keep every change peer reviewed.",
			actions: []string{
				"# Settings > Branches > Require a pull request before merging",
				"# Set required approvals to 2 and enable 'Dismiss stale pull request approvals'",
			},
		}, true
	case "SEC-007", "REPO-007":
		return playbook{
			title:   "Require signed commits on the default branch",
			actions: []string{"gh api -X POST repos/<owner>/<repo>/branches/<branch>/protection/required_signatures"},
		}, true
	case "SEC-010", "DEP-001", "DEP-007":
		return playbook{
			title:  "Enable automated dependency updates",
			detail: "Dependabot or Renovate surfaces known CVEs and opens update pull requests automatically.",
			actions: []string{
				"gh api -X PUT repos/<owner>/<repo>/vulnerability-alerts",
				"# Commit .github/dependabot.yml with an entry per package ecosystem",
			},
		}, true
	case "SEC-011", "SEC-012", "DEP-002", "DEP-003":
		return playbook{
			title:   "Patch critical and high vulnerability alerts",
			actions: []string{"gh api repos/<owner>/<repo>/dependabot/alerts --jq '.[] | select(.state==\"open\")'"},
		}, true
	case "SEC-013", "SEC-014", "SECRET-001", "SECRET-002", "SECRET-007":
		return playbook{
			title:  "Enable secret scanning and rotate exposed credentials",
			detail: "Leaked credentials must be revoked at the issuer; deleting the commit is not enough.",
			actions: []string{
				"# Settings > Code security > Secret scanning > Enable (and push protection)",
				"gh api repos/<owner>/<repo>/secret-scanning/alerts --jq '.[] | select(.state==\"open\")'",
			},
		}, true
	case "SEC-020", "DEP-009":
		return playbook{
			title:   "Generate an SBOM during the build",
			actions: []string{"syft . -o cyclonedx-json > sbom.cdx.json", "# Publish the SBOM as a release asset"},
		}, true
	case "SEC-021", "COMP-004":
		return playbook{
			title:   "Publish a security policy",
			actions: []string{"# Add SECURITY.md describing supported versions and how to report vulnerabilities"},
		}, true
	case "GOV-004", "COMP-001":
		return playbook{
			title:   "Add a LICENSE file",
			actions: []string{"gh repo edit <owner>/<repo> --add-license <spdx-id>  # or commit LICENSE manually"},
		}, true
	case "CICD-001", "CICD-002", "CICD-003", "CICD-004", "CICD-005", "CQ-001", "CQ-002", "SAST-002":
		return playbook{
			title:  "Build a CI pipeline that gates pull requests",
			detail: "A workflow triggered on pull_request should run tests, linting and a security scan.",
			actions: []string{
				"# .github/workflows/ci.yml: on: [pull_request, push]",
				"# jobs: test, lint, codeql (github/codeql-action/analyze)",
			},
		}, true
	case "IAM-001":
		return playbook{
			title:   "Require two-factor authentication for the organisation",
			actions: []string{"# Organisation settings > Authentication security > Require two-factor authentication"},
		}, true
	case "IAM-011", "PLAT-004":
		return playbook{
			title:  "Restrict default repository access",
			detail: "Members should start with read access and must not create public repositories.",
			actions: []string{
				"gh api -X PATCH orgs/<org> -f default_repository_permission=read -F members_can_create_public_repositories=false",
			},
		}, true
	case "CNTR-006":
		return playbook{
			title:   "Scan container images in the pipeline",
			actions: []string{"trivy image --exit-code 1 --severity CRITICAL,HIGH <image>"},
		}, true
	}
	return playbook{}, false
}

func manualReviewStep(ids []string) model.RemediationStep {
	shown := ids
	if len(shown) > 10 {
		shown = shown[:10]
	}
	more := ""
	if len(ids) > len(shown) {
		more = fmt.Sprintf(" and %d more", len(ids)-len(shown))
	}
	return model.RemediationStep{
		Priority: 3,
		Title:    "Complete manual reviews for controls that cannot be verified automatically",
		Detail:   fmt.Sprintf("%d check(s) need a human decision: %s%s.", len(ids), strings.Join(shown, ", "), more),
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
