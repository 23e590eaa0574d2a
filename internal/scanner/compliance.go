package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var complianceCatalog = catalog.NewBuilder(model.CategoryCompliance).
	Add("COMP-001", "LICENSE file present", model.SeverityLow, 0.5,
		"A LICENSE file must be present to declare the terms under which the software is distributed.").
	Add("COMP-002", "Audit logging available", model.SeverityMedium, 1,
		"Audit logging must be enabled or configured to capture significant system and user events.").
	Add("COMP-003", "Compliance frameworks assigned", model.SeverityMedium, 1,
		"Applicable compliance frameworks (e.g. SOC 2, ISO 27001, PCI DSS) must be documented.").
	Add("COMP-004", "Security policy present", model.SeverityMedium, 1,
		"A security policy file (e.g. SECURITY.md) must document the vulnerability disclosure process.").
	Add("COMP-005", "Data classification labels used", model.SeverityMedium, 1,
		"Data classification labels must be applied to repositories and artefacts to enforce handling controls.").
	Add("COMP-006", "Data retention policy defined", model.SeverityLow, 0.5,
		"A data retention policy must be defined and applied to logs, backups, and sensitive data.").
	Add("COMP-007", "Change management process documented", model.SeverityMedium, 1,
		"A changelog or change management document must record significant changes for audit traceability.").
	Add("COMP-008", "Vendor risk assessment available", model.SeverityLow, 0.5,
		"A vendor or third-party risk assessment must be available for all external dependencies.").
	Add("COMP-009", "Compliance scanning in pipeline", model.SeverityMedium, 1,
		"Automated compliance checks (e.g. licence scanning, policy-as-code) must run in the CI/CD pipeline.").
	Add("COMP-010", "Regulatory mapping documented", model.SeverityLow, 0.5,
		"Controls must be mapped to specific regulatory requirements to support audit evidence collection.").
	Add("COMP-011", "Evidence collection automated", model.SeverityMedium, 1,
		"Compliance evidence (logs, reports, artefacts) must be collected automatically as part of the pipeline.").
	Build()

type complianceScanner struct{ domain }

func newCompliance() *complianceScanner {
	return &complianceScanner{domain{name: "compliance", reg: complianceCatalog}}
}

func (s *complianceScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("COMP-001", ev.HasLicense,
		"A LICENSE file is present.",
		"No LICENSE file was found in the repository.", nil)
	r.warn("COMP-002", "Audit logging is configured at the platform level and could not be verified "+
		"for this repository. Manual review recommended.")
	r.warn("COMP-003", "Compliance framework assignment could not be verified automatically. "+
		"Document the frameworks that apply to this repository.")
	evalSecurityFlag(r, "COMP-004", ev.Security, func(f *model.SecurityFeatures) bool { return f.HasSecurityPolicy },
		"A security policy file is present.",
		"No security policy file (e.g. SECURITY.md) was found.")
	r.warn("COMP-005", "Data classification labels could not be verified automatically. Manual review recommended.")
	r.warn("COMP-006", "A data retention policy could not be verified automatically. Manual review recommended.")
	r.boolCheck("COMP-007", ev.HasChangelog,
		"A changelog is present.",
		"No changelog or change management document was found.", nil)
	r.warn("COMP-008", "Vendor risk assessments could not be verified automatically. Manual review recommended.")
	r.warn("COMP-009", "Compliance scanning in the pipeline could not be verified automatically. "+
		"Manual review recommended.")
	r.warn("COMP-010", "Regulatory control mapping could not be verified automatically. Manual review recommended.")
	r.warn("COMP-011", "Automated evidence collection could not be verified automatically. Manual review recommended.")

	return r.verdicts()
}
