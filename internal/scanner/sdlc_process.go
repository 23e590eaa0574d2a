package scanner

import (
	"fmt"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var sdlcProcessCatalog = catalog.NewBuilder(model.CategorySDLCProcess).
	Add("SDLC-001", "PR template exists", model.SeverityLow, 0.5,
		"A pull-request template must guide contributors toward complete PR descriptions.").
	Add("SDLC-002", "Contributing guide exists", model.SeverityLow, 0.5,
		"A CONTRIBUTING guide must document how contributors should participate in the project.").
	Add("SDLC-003", "PRs have reviews before merge", model.SeverityHigh, 1.5,
		"More than 75% of recently merged pull requests must have received at least one review.").
	Add("SDLC-004", "Average PR size less than 500 lines", model.SeverityMedium, 1,
		"The average pull-request size (additions + deletions) should be below 500 lines.").
	Add("SDLC-005", "Branching strategy documented", model.SeverityLow, 0.5,
		"The repository branching strategy (e.g. GitFlow, trunk-based) must be documented.").
	Add("SDLC-006", "Release process defined", model.SeverityMedium, 1,
		"A documented release process must exist to ensure consistent and repeatable deployments.").
	Add("SDLC-007", "Semantic versioning used", model.SeverityLow, 0.5,
		"Releases must follow semantic versioning (MAJOR.MINOR.PATCH) to communicate change impact.").
	Add("SDLC-008", "Feature flags framework present", model.SeverityLow, 0.5,
		"A feature flag framework must be available to decouple deployment from feature release.").
	Add("SDLC-009", "Hotfix process documented", model.SeverityMedium, 1,
		"A documented hotfix process must exist for expedited patching of production issues.").
	Add("SDLC-010", "Definition of done documented", model.SeverityLow, 0.5,
		"A definition of done must be documented to align the team on completion criteria.").
	Add("SDLC-011", "Architecture Decision Records present", model.SeverityMedium, 1,
		"An ADR directory must exist to record significant architectural decisions and their rationale.").
	Add("SDLC-012", "API documentation maintained", model.SeverityMedium, 1,
		"Up-to-date API documentation (e.g. OpenAPI spec, generated docs) must be present.").
	Build()

type sdlcProcessScanner struct{ domain }

func newSDLCProcess() *sdlcProcessScanner {
	return &sdlcProcessScanner{domain{name: "sdlc_process", reg: sdlcProcessCatalog}}
}

func (s *sdlcProcessScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("SDLC-001", ev.HasPRTemplate,
		"A pull-request template is present.",
		"No pull-request template was found.", nil)
	r.boolCheck("SDLC-002", ev.HasContributingGuide,
		"A CONTRIBUTING guide is present.",
		"No CONTRIBUTING guide was found.", nil)
	evalReviewCoverage(ev.RecentPRs, r, "SDLC-003", 0.75, 0.50)
	evalPRSize(r, "SDLC-004", ev.RecentPRs)
	r.boolCheck("SDLC-005", ev.HasBranchingStrategyDoc,
		"The branching strategy is documented.",
		"No branching strategy documentation was found.", nil)
	r.boolCheck("SDLC-006", ev.HasReleaseProcessDoc,
		"A release process document is present.",
		"No release process documentation was found.", nil)
	r.manualReview("SDLC-007", "Semantic versioning of releases")
	r.boolCheck("SDLC-008", ev.HasFeatureFlags,
		"A feature flag framework is present.",
		"No feature flag framework was detected.", nil)
	r.boolCheck("SDLC-009", ev.HasHotfixProcessDoc,
		"A hotfix process document is present.",
		"No hotfix process documentation was found.", nil)
	r.boolCheck("SDLC-010", ev.HasDefinitionOfDone,
		"A definition of done is documented.",
		"No definition of done was found.", nil)
	r.boolCheck("SDLC-011", ev.HasADRDirectory,
		"An Architecture Decision Records directory is present.",
		"No Architecture Decision Records directory was found.", nil)
	r.boolCheck("SDLC-012", ev.HasAPIDocs,
		"API documentation is present.",
		"No API documentation was found.", nil)

	return r.verdicts()
}

// evalReviewCoverage buckets the share of merged PRs that had at least one
// review. Both thresholds are strict: coverage must exceed passAbove to pass
// and exceed warnAbove to warn.
func evalReviewCoverage(prs []model.PullRequest, r *results, id string, passAbove, warnAbove float64) {
	merged, reviewed := mergedReviewCoverage(prs)
	if merged == 0 {
		r.notApplicable(id, "No merged pull requests available for analysis.")
		return
	}

	coverage := float64(reviewed) / float64(merged)
	pct := round1(coverage * 100)
	ev := model.Evidence{
		"merged_pr_count":     merged,
		"reviewed_pr_count":   reviewed,
		"review_coverage_pct": pct,
	}
	detail := fmt.Sprintf("%d of %d merged PR(s) were reviewed (%v%%).", reviewed, merged, pct)
	switch {
	case coverage > passAbove:
		r.add(id, model.StatusPassed, detail, ev)
	case coverage > warnAbove:
		r.add(id, model.StatusWarning, detail, ev)
	default:
		r.add(id, model.StatusFailed, detail, ev)
	}
}

// evalPRSize averages additions plus deletions over every recent PR:
// under 500 passes, under 1000 warns.
func evalPRSize(r *results, id string, prs []model.PullRequest) {
	if len(prs) == 0 {
		r.notApplicable(id, "No recent pull requests available for analysis.")
		return
	}
	var total int
	for _, pr := range prs {
		total += pr.Additions + pr.Deletions
	}
	avg := float64(total) / float64(len(prs))
	ev := model.Evidence{
		"pr_count":              len(prs),
		"average_changed_lines": round1(avg),
	}
	switch {
	case avg < 500:
		r.add(id, model.StatusPassed, fmt.Sprintf("Average PR size is %v lines (threshold: 500).", round1(avg)), ev)
	case avg < 1000:
		r.add(id, model.StatusWarning, fmt.Sprintf("Average PR size is %v lines, above the 500-line target.", round1(avg)), ev)
	default:
		r.add(id, model.StatusFailed, fmt.Sprintf("Average PR size is %v lines, well above the 500-line target.", round1(avg)), ev)
	}
}
