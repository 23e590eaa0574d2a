package scanner

import (
	"fmt"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var identityAccessCatalog = catalog.NewBuilder(model.CategoryIdentityAccess).
	Add("IAM-001", "MFA/2FA enforced org-wide", model.SeverityCritical, 2,
		"Multi-factor authentication must be required for every member of the organisation.").
	Add("IAM-002", "SSO configured", model.SeverityHigh, 1.5,
		"SAML or OIDC single sign-on must be configured to centralise identity management.").
	Add("IAM-003", "Admin count <= 5% of members", model.SeverityMedium, 1,
		"The proportion of organisation administrators must not exceed 5% of total membership to limit blast radius of compromised admin accounts.").
	Add("IAM-004", "No outside collaborators with admin access", model.SeverityHigh, 1.5,
		"External collaborators must not be granted administrator-level access to any repository.").
	Add("IAM-005", "Bot accounts use service tokens", model.SeverityMedium, 1,
		"Automated (bot) accounts must authenticate via scoped service tokens, not personal credentials.").
	Add("IAM-006", "Deploy keys are read-only", model.SeverityHigh, 1.5,
		"Repository deploy keys must be configured as read-only unless write access is explicitly required.").
	Add("IAM-007", "Personal access tokens have expiry", model.SeverityMedium, 1,
		"All personal access tokens must be issued with an expiration date to limit exposure.").
	Add("IAM-008", "RBAC roles properly scoped", model.SeverityHigh, 1.5,
		"Role-based access control assignments must be scoped to the minimum permissions required for each team or individual.").
	Add("IAM-009", "Team-based access (not individual)", model.SeverityMedium, 1,
		"Repository access must be granted to teams rather than individual users to simplify lifecycle management.").
	Add("IAM-010", "Inactive users reviewed", model.SeverityLow, 0.5,
		"Users who have not accessed the platform recently must be reviewed and removed or suspended as appropriate.").
	Add("IAM-011", "Least privilege verified", model.SeverityHigh, 1.5,
		"The default repository permission for organisation members must follow the principle of least privilege (read or none).").
	Add("IAM-012", "Emergency access procedure exists", model.SeverityMedium, 1,
		"A documented break-glass procedure must exist for regaining access during SSO or IdP outages.").
	Build()

const (
	noOrgMembers  = "No organisation membership data available."
	noOrgSettings = "No organisation security settings data available."
)

type identityAccessScanner struct{ domain }

func newIdentityAccess() *identityAccessScanner {
	return &identityAccessScanner{domain{name: "identity_access", reg: identityAccessCatalog}}
}

func (s *identityAccessScanner) EvaluateOrg(ev *model.OrgEvidence) []model.Verdict {
	ev = orgOrEmpty(ev)
	r := newResults(s.reg)
	members := ev.Members

	if members == nil {
		r.notApplicable("IAM-001", noOrgMembers)
		r.notApplicable("IAM-002", noOrgMembers)
	} else {
		r.boolCheck("IAM-001", members.MFAEnforced,
			"Multi-factor authentication is enforced for all organisation members.",
			"MFA/2FA is not enforced organisation-wide. Enable the 'Require two-factor "+
				"authentication' setting in the organisation's security settings.", nil)
		r.boolCheck("IAM-002", members.SSOEnabled,
			"SAML/OIDC single sign-on is configured for the organisation.",
			"Single sign-on is not configured. Configure SAML or OIDC SSO to "+
				"centralise identity management and enforce corporate authentication policies.", nil)
	}
	evalAdminRatio(r, "IAM-003", members)

	r.manualReview("IAM-004", "Outside collaborator permission levels")
	r.manualReview("IAM-005", "Bot account authentication methods")
	r.manualReview("IAM-006", "Deploy key permissions")
	r.manualReview("IAM-007", "Personal access token expiry policies")
	r.manualReview("IAM-008", "RBAC role scoping")
	r.manualReview("IAM-009", "Whether access is granted via teams or individuals")
	r.manualReview("IAM-010", "User activity data")

	if ev.SecuritySettings == nil {
		r.notApplicable("IAM-011", noOrgSettings)
	} else {
		perm := strings.ToLower(ptr.Deref(ev.SecuritySettings.DefaultRepoPermission, ""))
		evidence := model.Evidence{"default_repo_permission": perm}
		if perm == "read" || perm == "none" {
			r.add("IAM-011", model.StatusPassed,
				fmt.Sprintf("Default repository permission is '%s', satisfying the least-privilege requirement.", perm),
				evidence)
		} else {
			r.add("IAM-011", model.StatusFailed,
				fmt.Sprintf("Default repository permission is '%s'. Set this to 'read' or 'none' "+
					"to enforce least-privilege access for all organisation members.", perm),
				evidence)
		}
	}

	r.manualReview("IAM-012", "The existence of a documented emergency (break-glass) access procedure")

	return r.verdicts()
}

// evalAdminRatio passes when admins are at most 5% of members.
func evalAdminRatio(r *results, id string, members *model.OrgMembers) {
	if members == nil {
		r.notApplicable(id, noOrgMembers)
		return
	}
	if members.TotalMembers == 0 {
		r.notApplicable(id, "Organisation has no members; admin ratio cannot be calculated.")
		return
	}

	ratio := float64(members.AdminCount) / float64(members.TotalMembers)
	pct := round1(ratio * 100)
	ev := model.Evidence{
		"admin_count":     members.AdminCount,
		"total_members":   members.TotalMembers,
		"admin_ratio_pct": pct,
	}
	if ratio <= 0.05 {
		r.add(id, model.StatusPassed,
			fmt.Sprintf("Admin ratio is %v%% (%d/%d), within the 5%% threshold.", pct, members.AdminCount, members.TotalMembers), ev)
		return
	}
	r.add(id, model.StatusFailed,
		fmt.Sprintf("Admin ratio is %v%% (%d/%d), exceeding the 5%% threshold. "+
			"Review and reduce the number of organisation admins.", pct, members.AdminCount, members.TotalMembers), ev)
}
