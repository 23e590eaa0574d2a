package scanner

import (
	"fmt"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var secretsMgmtCatalog = catalog.NewBuilder(model.CategorySecretsMgmt).
	Add("SECRET-001", "Secret scanning enabled", model.SeverityCritical, 2,
		"GitHub secret scanning must be active to detect accidental credential exposure in commits.").
	Add("SECRET-002", "No exposed secrets detected", model.SeverityCritical, 2,
		"No open alerts indicating a secret or credential has been leaked into the repository.").
	Add("SECRET-003", "Push protection enabled", model.SeverityCritical, 2,
		"Secret scanning push protection must block commits containing known secret patterns before they land.").
	Add("SECRET-004", "Custom secret patterns defined", model.SeverityMedium, 1,
		"Custom secret scanning patterns must cover organisation-specific token formats not detected by default.").
	Add("SECRET-005", "Secrets stored in vault (not repository)", model.SeverityHigh, 1.5,
		"All runtime secrets must be stored in a dedicated secrets manager (e.g. HashiCorp Vault, AWS Secrets Manager).").
	Add("SECRET-006", "Environment secrets used for deployments", model.SeverityMedium, 1,
		"CI/CD secrets must be scoped to deployment environments rather than stored at the repository level.").
	Add("SECRET-007", "No hardcoded credentials in code", model.SeverityCritical, 2,
		"The codebase must contain no hardcoded passwords, API keys, or other credentials.").
	Add("SECRET-008", "API keys have rotation policy", model.SeverityMedium, 1,
		"All API keys and long-lived tokens must be subject to a documented rotation schedule.").
	Add("SECRET-009", "Service accounts use short-lived tokens", model.SeverityMedium, 1,
		"Service accounts must authenticate with short-lived, scoped tokens (e.g. OIDC) rather than long-lived keys.").
	Add("SECRET-010", "Secret audit trail available", model.SeverityLow, 0.5,
		"Access to secrets must generate an auditable trail of who retrieved what and when.").
	Build()

type secretsMgmtScanner struct{ domain }

func newSecretsMgmt() *secretsMgmtScanner {
	return &secretsMgmtScanner{domain{name: "secrets_mgmt", reg: secretsMgmtCatalog}}
}

func (s *secretsMgmtScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)
	sec := ev.Security

	evalSecurityFlag(r, "SECRET-001", sec, func(f *model.SecurityFeatures) bool { return f.SecretScanningEnabled },
		"Secret scanning is enabled.",
		"Secret scanning is not enabled.")
	evalExposedSecrets(r, "SECRET-002", sec)
	r.manualReview("SECRET-003", "Secret scanning push protection status")
	r.manualReview("SECRET-004", "Custom secret scanning pattern definitions")
	r.manualReview("SECRET-005", "Whether runtime secrets are stored in a dedicated vault")
	r.manualReview("SECRET-006", "CI/CD secret scoping to deployment environments")

	switch {
	case sec == nil:
		r.notApplicable("SECRET-007", noSecurityFeatures)
	case !sec.SecretScanningEnabled:
		r.fail("SECRET-007", "Secret scanning is disabled; hardcoded credentials cannot be detected. "+
			"Enable secret scanning and perform a full repository audit.")
	default:
		leaked := secretAlerts(sec.VulnerabilityAlerts)
		if len(leaked) == 0 {
			r.pass("SECRET-007", "Secret scanning is enabled and no open secret alerts were found, "+
				"suggesting no hardcoded credentials are present.")
			break
		}
		r.add("SECRET-007", model.StatusFailed,
			fmt.Sprintf("%d open secret alert(s) indicate potential hardcoded credentials. "+
				"Rotate the exposed secrets and remove them from the codebase.", len(leaked)),
			model.Evidence{"secret_alert_count": len(leaked), "titles": alertTitles(leaked)})
	}

	r.manualReview("SECRET-008", "API key rotation policy compliance")
	r.manualReview("SECRET-009", "Service account token lifetimes")
	r.manualReview("SECRET-010", "Secret access audit trail availability")

	return r.verdicts()
}
