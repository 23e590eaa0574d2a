package scanner

import (
	"fmt"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var platformArchCatalog = catalog.NewBuilder(model.CategoryPlatformArch).
	Add("PLAT-001", "Platform type identified", model.SeverityInfo, 0.5,
		"The source control platform type must be identifiable for accurate assessment.").
	Add("PLAT-002", "API version supported", model.SeverityLow, 0.5,
		"The platform API version must be current and supported for complete data collection.").
	Add("PLAT-003", "Enterprise features available", model.SeverityLow, 0.5,
		"GitHub Enterprise features unlock advanced security controls required for production orgs.").
	Add("PLAT-004", "Default repository visibility is private", model.SeverityHigh, 1.5,
		"The organisation default repository permission must restrict public creation. Members should not be allowed to create public repositories by default.").
	Add("PLAT-005", "IP allow-listing enabled", model.SeverityMedium, 1,
		"IP allow-listing restricts platform access to known corporate network ranges.").
	Add("PLAT-006", "Org-level security policy exists", model.SeverityMedium, 1,
		"An organisation-level security policy must be defined and visible to all repositories.").
	Add("PLAT-007", "GitHub Advanced Security enabled", model.SeverityHigh, 1.5,
		"GitHub Advanced Security (GHAS) provides code scanning, secret scanning, and dependency review across all repositories in the organisation.").
	Add("PLAT-008", "Audit log streaming configured", model.SeverityMedium, 1,
		"Audit log streaming must forward platform events to a SIEM or log management system.").
	Add("PLAT-009", "Custom roles defined", model.SeverityLow, 0.5,
		"Custom roles allow fine-grained permission assignment beyond the built-in role set.").
	Add("PLAT-010", "Self-hosted runners available", model.SeverityLow, 0.5,
		"Self-hosted runners give the organisation control over CI build environments and secrets.").
	Add("PLAT-011", "Actions/runner restrictions configured", model.SeverityMedium, 1,
		"GitHub Actions permissions must be restricted to prevent use of arbitrary third-party actions without review.").
	Build()

type platformArchScanner struct{ domain }

func newPlatformArch() *platformArchScanner {
	return &platformArchScanner{domain{name: "platform_arch", reg: platformArchCatalog}}
}

func (s *platformArchScanner) EvaluateOrg(ev *model.OrgEvidence) []model.Verdict {
	ev = orgOrEmpty(ev)
	r := newResults(s.reg)
	settings := ev.SecuritySettings

	r.add("PLAT-001", model.StatusPassed, "Platform identified as GitHub.",
		model.Evidence{"org_name": ev.OrgName})
	r.pass("PLAT-002", "GitHub REST API v3 / GraphQL v4 is supported and in use.")

	plan := ptr.Deref(ev.BillingPlan, "")
	if strings.Contains(strings.ToLower(plan), "enterprise") {
		r.add("PLAT-003", model.StatusPassed,
			fmt.Sprintf("Enterprise plan detected: '%s'.", plan),
			model.Evidence{"billing_plan": plan})
	} else {
		r.add("PLAT-003", model.StatusFailed,
			fmt.Sprintf("Billing plan '%s' does not include enterprise features. "+
				"Upgrade to GitHub Enterprise to unlock advanced security controls.", plan),
			model.Evidence{"billing_plan": plan})
	}

	evalDefaultVisibility(r, "PLAT-004", settings)

	if settings == nil {
		r.notApplicable("PLAT-005", noOrgSettings)
	} else {
		r.boolCheck("PLAT-005", settings.IPAllowListEnabled,
			"IP allow-listing is enabled for the organisation.",
			"IP allow-listing is not enabled. Restrict platform access to known corporate network ranges.", nil)
	}
	r.boolCheck("PLAT-006", ev.HasOrgLevelSecurityPolicy,
		"An organisation-level security policy is in place.",
		"No organisation-level security policy was found. Add a SECURITY.md to the organisation's .github repository.", nil)

	r.manualReview("PLAT-007", "GitHub Advanced Security enablement")
	r.manualReview("PLAT-008", "Audit log streaming configuration")
	r.manualReview("PLAT-009", "Custom role definitions")
	r.manualReview("PLAT-010", "Self-hosted runner availability")
	r.manualReview("PLAT-011", "GitHub Actions permission restrictions")

	return r.verdicts()
}

// evalDefaultVisibility passes only when members cannot create public
// repositories and the default permission is not "none". An unset
// public-creation flag counts as allowed.
func evalDefaultVisibility(r *results, id string, settings *model.OrgSecuritySettings) {
	if settings == nil {
		r.notApplicable(id, noOrgSettings)
		return
	}
	allowsPublic := ptr.Deref(settings.MembersCanCreatePublicRepos, true)
	perm := ptr.Deref(settings.DefaultRepoPermission, "")
	ev := model.Evidence{
		"default_repo_permission":         perm,
		"members_can_create_public_repos": allowsPublic,
	}

	var reasons []string
	if allowsPublic {
		reasons = append(reasons, "members are allowed to create public repositories")
	}
	if strings.EqualFold(perm, "none") {
		reasons = append(reasons, "default repository permission is set to 'none'")
	}
	if len(reasons) == 0 {
		r.add(id, model.StatusPassed,
			fmt.Sprintf("Members cannot create public repositories and a non-permissive default repo permission is set ('%s').", perm),
			ev)
		return
	}
	r.add(id, model.StatusFailed,
		"Default repository visibility is not restricted: "+strings.Join(reasons, "; ")+".", ev)
}
