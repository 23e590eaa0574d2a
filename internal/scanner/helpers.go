package scanner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const (
	noBranchProtection = "No branch-protection data found."
	noSecurityFeatures = "No security feature data available."
)

// results collects verdicts for one evaluation. Recording an id twice or
// finishing with an id unrecorded is a programming error and panics.
type results struct {
	reg  *catalog.Registry
	out  []model.Verdict
	seen map[string]bool
}

func newResults(reg *catalog.Registry) *results {
	return &results{reg: reg, seen: make(map[string]bool, reg.Len())}
}

func (r *results) add(id string, st model.Status, detail string, ev model.Evidence) {
	if r.seen[id] {
		panic(fmt.Sprintf("%s: verdict for %s recorded twice", r.reg.Category(), id))
	}
	r.seen[id] = true
	r.out = append(r.out, model.Verdict{
		Check:    r.reg.Lookup(id),
		Status:   st,
		Detail:   detail,
		Evidence: ev,
	})
}

func (r *results) pass(id, detail string) { r.add(id, model.StatusPassed, detail, nil) }
func (r *results) fail(id, detail string) { r.add(id, model.StatusFailed, detail, nil) }
func (r *results) warn(id, detail string) { r.add(id, model.StatusWarning, detail, nil) }

func (r *results) notApplicable(id, detail string) {
	r.add(id, model.StatusNotApplicable, detail, nil)
}

// boolCheck passes when ok; evidence is attached to the passing verdict only.
func (r *results) boolCheck(id string, ok bool, passDetail, failDetail string, ev model.Evidence) {
	if ok {
		r.add(id, model.StatusPassed, passDetail, ev)
		return
	}
	r.fail(id, failDetail)
}

// manualReview records the standard warning for controls that need a human.
func (r *results) manualReview(id, subject string) {
	r.warn(id, subject+" could not be verified automatically. Manual review recommended.")
}

func (r *results) verdicts() []model.Verdict {
	for _, id := range r.reg.IDs() {
		if !r.seen[id] {
			panic(fmt.Sprintf("%s: no verdict recorded for %s", r.reg.Category(), id))
		}
	}
	sort.SliceStable(r.out, func(i, j int) bool {
		return r.reg.Position(r.out[i].Check.ID) < r.reg.Position(r.out[j].Check.ID)
	})
	return r.out
}

// branchProtectionIDs names the seven checks shared by the legacy security
// domain and repo governance, in their catalog order.
type branchProtectionIDs struct {
	protected, reviews, twoApprovals, staleDismissed, adminEnforced, noForcePush, signed string
}

func evalBranchProtection(r *results, ids branchProtectionIDs, bp *model.BranchProtection) {
	if bp == nil {
		for _, id := range []string{ids.protected, ids.reviews, ids.twoApprovals, ids.staleDismissed, ids.adminEnforced, ids.noForcePush, ids.signed} {
			r.fail(id, noBranchProtection)
		}
		return
	}
	r.boolCheck(ids.protected, bp.IsProtected,
		"Default branch is protected.",
		"Default branch protection is not enabled.", nil)

	reviews := model.Evidence{"required_reviews": bp.RequiredReviews}
	if bp.RequiredReviews >= 1 {
		r.add(ids.reviews, model.StatusPassed, fmt.Sprintf("Required approvals: %d.", bp.RequiredReviews), reviews)
	} else {
		r.add(ids.reviews, model.StatusFailed, "No PR reviews are required before merging.", reviews)
	}
	if bp.RequiredReviews >= 2 {
		r.add(ids.twoApprovals, model.StatusPassed, fmt.Sprintf("Required approvals: %d.", bp.RequiredReviews), reviews)
	} else {
		r.add(ids.twoApprovals, model.StatusFailed,
			fmt.Sprintf("Only %d approval(s) required; minimum is 2.", bp.RequiredReviews), reviews)
	}

	r.boolCheck(ids.staleDismissed, bp.DismissStaleReviews,
		"Stale reviews are dismissed on new pushes.",
		"Stale reviews are not dismissed when new commits are pushed.", nil)
	r.boolCheck(ids.adminEnforced, bp.EnforceAdmins,
		"Branch-protection rules are enforced for admins.",
		"Branch-protection rules are not enforced for administrators.", nil)
	r.boolCheck(ids.noForcePush, !bp.AllowForcePushes,
		"Force pushes to the default branch are disabled.",
		"Force pushes to the default branch are permitted.", nil)
	r.boolCheck(ids.signed, bp.RequireSignedCommits,
		"Signed commits are required.",
		"Signed commits are not required.", nil)
}

// alertsWithSeverity matches case-insensitively and ignores alert state.
func alertsWithSeverity(alerts []model.VulnerabilityAlert, severity string) []model.VulnerabilityAlert {
	var out []model.VulnerabilityAlert
	for _, a := range alerts {
		if strings.EqualFold(a.Severity, severity) {
			out = append(out, a)
		}
	}
	return out
}

// secretAlerts returns open alerts whose title mentions a secret.
func secretAlerts(alerts []model.VulnerabilityAlert) []model.VulnerabilityAlert {
	var out []model.VulnerabilityAlert
	for _, a := range alerts {
		if strings.EqualFold(a.State, "open") && strings.Contains(strings.ToLower(a.Title), "secret") {
			out = append(out, a)
		}
	}
	return out
}

func alertPackages(alerts []model.VulnerabilityAlert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Package)
	}
	return out
}

func alertTitles(alerts []model.VulnerabilityAlert) []string {
	out := make([]string, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Title)
	}
	return out
}

// evalSeverityAlerts records the "no <severity> vulnerabilities" check shape.
func evalSeverityAlerts(r *results, id, severity string, sec *model.SecurityFeatures) {
	if sec == nil {
		r.notApplicable(id, noSecurityFeatures)
		return
	}
	matched := alertsWithSeverity(sec.VulnerabilityAlerts, severity)
	if len(matched) == 0 {
		r.pass(id, fmt.Sprintf("No open %s-severity vulnerability alerts.", severity))
		return
	}
	r.add(id, model.StatusFailed,
		fmt.Sprintf("%d open %s-severity vulnerability alert(s) found.", len(matched), severity),
		model.Evidence{
			severity + "_alert_count": len(matched),
			"packages":                alertPackages(matched),
		})
}

// evalExposedSecrets records the "no exposed secrets" check shape.
func evalExposedSecrets(r *results, id string, sec *model.SecurityFeatures) {
	if sec == nil {
		r.notApplicable(id, noSecurityFeatures)
		return
	}
	matched := secretAlerts(sec.VulnerabilityAlerts)
	if len(matched) == 0 {
		r.pass(id, "No open alerts indicating an exposed secret.")
		return
	}
	r.add(id, model.StatusFailed,
		fmt.Sprintf("%d open alert(s) referencing a potential secret exposure.", len(matched)),
		model.Evidence{
			"secret_alert_count": len(matched),
			"titles":             alertTitles(matched),
		})
}

// evalSecurityFlag is a feature toggle check that is not applicable without data.
func evalSecurityFlag(r *results, id string, sec *model.SecurityFeatures, get func(*model.SecurityFeatures) bool, passDetail, failDetail string) {
	if sec == nil {
		r.notApplicable(id, noSecurityFeatures)
		return
	}
	r.boolCheck(id, get(sec), passDetail, failDetail, nil)
}

func workflowsWhere(wfs []model.Workflow, keep func(model.Workflow) bool) []model.Workflow {
	var out []model.Workflow
	for _, w := range wfs {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func workflowNames(wfs []model.Workflow) []string {
	out := make([]string, 0, len(wfs))
	for _, w := range wfs {
		out = append(out, w.Name)
	}
	return out
}

func hasTrigger(w model.Workflow, event string) bool {
	for _, t := range w.TriggerEvents {
		if t == event {
			return true
		}
	}
	return false
}

// mergedReviewCoverage is the share of merged PRs with at least one review.
func mergedReviewCoverage(prs []model.PullRequest) (merged, reviewed int) {
	for _, pr := range prs {
		if !pr.Merged {
			continue
		}
		merged++
		if pr.ReviewCount >= 1 {
			reviewed++
		}
	}
	return merged, reviewed
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
