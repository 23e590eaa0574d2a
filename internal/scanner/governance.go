package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var governanceCatalog = catalog.NewBuilder(model.CategoryGovernance).
	Add("GOV-001", "RBAC configured", model.SeverityHigh, 1.5,
		"Role-based access control must be configured to limit repository permissions.").
	Add("GOV-002", "Audit logging available", model.SeverityMedium, 1,
		"Platform audit logging must be enabled to provide an activity trail.").
	Add("GOV-003", "MFA enforced", model.SeverityHigh, 1.5,
		"Multi-factor authentication must be required for all organisation members.").
	Add("GOV-004", "LICENSE file present", model.SeverityLow, 0.5,
		"A LICENSE file must clearly state the terms under which the code may be used.").
	Add("GOV-005", "Compliance frameworks assigned", model.SeverityMedium, 1,
		"The repository should be tagged with the compliance frameworks it must satisfy.").
	Build()

type governanceScanner struct{ domain }

func newGovernance() *governanceScanner {
	return &governanceScanner{domain{name: "governance", reg: governanceCatalog}}
}

func (s *governanceScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.warn("GOV-001", "RBAC configuration could not be verified automatically via the repository API. "+
		"Manual review of team permissions and access levels is recommended.")
	r.warn("GOV-002", "Audit logging is a platform-level setting and cannot be verified at the "+
		"repository level. Manual review recommended.")
	r.warn("GOV-003", "MFA enforcement is an organisation-level setting and cannot be verified "+
		"via the repository API. Manual review recommended.")
	r.boolCheck("GOV-004", ev.HasLicense,
		"A LICENSE file is present.",
		"No LICENSE file was found in the repository.", nil)
	r.warn("GOV-005", "Compliance-framework assignment is platform-specific and could not be "+
		"verified automatically. Manual review recommended.")

	return r.verdicts()
}
