package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var disasterRecoveryCatalog = catalog.NewBuilder(model.CategoryDisasterRecovery).
	Add("DR-001", "Backup strategy documented", model.SeverityHigh, 1.5,
		"A backup configuration or strategy document must be present in the repository.").
	Add("DR-002", "Repository mirroring configured", model.SeverityMedium, 1,
		"Repository mirroring should be configured to ensure geo-redundant source code availability.").
	Add("DR-003", "DR runbook present", model.SeverityHigh, 1.5,
		"A disaster recovery runbook must be present describing steps to restore the system.").
	Add("DR-004", "Recovery time objective defined", model.SeverityMedium, 1,
		"The recovery time objective (RTO) must be documented, typically in an SLA or SLO document.").
	Add("DR-005", "Recovery point objective defined", model.SeverityMedium, 1,
		"The recovery point objective (RPO) must be documented, typically in an SLA or SLO document.").
	Add("DR-006", "Backup testing schedule documented", model.SeverityMedium, 1,
		"A schedule for regularly testing backups must be documented to verify recoverability.").
	Add("DR-007", "Infrastructure as Code present", model.SeverityHigh, 1.5,
		"Infrastructure must be defined as code (Terraform, Pulumi, etc.) to enable repeatable recovery.").
	Add("DR-008", "Multi-region deployment capable", model.SeverityMedium, 1,
		"Deployment configuration should support multi-region operation for high availability.").
	Add("DR-009", "Failover procedure documented", model.SeverityMedium, 1,
		"A documented failover procedure must be available for operators during an outage.").
	Add("DR-010", "Data restoration tested", model.SeverityLow, 0.5,
		"Evidence of successful data restoration tests should be recorded or referenced.").
	Build()

type disasterRecoveryScanner struct{ domain }

func newDisasterRecovery() *disasterRecoveryScanner {
	return &disasterRecoveryScanner{domain{name: "disaster_recovery", reg: disasterRecoveryCatalog}}
}

func (s *disasterRecoveryScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("DR-001", ev.HasBackupConfig,
		"A backup configuration or strategy document is present.",
		"No backup configuration or strategy document was found.", nil)
	r.warn("DR-002", "Repository mirroring is configured outside the repository and could not be verified. "+
		"Confirm that a geo-redundant mirror exists.")
	r.boolCheck("DR-003", ev.HasDRRunbook,
		"A disaster recovery runbook is present.",
		"No disaster recovery runbook was found.", nil)
	r.boolCheck("DR-004", ev.HasSLADocument,
		"An SLA/SLO document is present; confirm that it states the RTO.",
		"No SLA/SLO document defining the recovery time objective was found.", nil)
	r.boolCheck("DR-005", ev.HasSLADocument,
		"An SLA/SLO document is present; confirm that it states the RPO.",
		"No SLA/SLO document defining the recovery point objective was found.", nil)
	r.warn("DR-006", "A backup testing schedule could not be verified automatically. "+
		"Document how often backups are restored in a test environment.")

	iac := model.Evidence(nil)
	if ev.IaCTool != "" {
		iac = model.Evidence{"iac_tool": ev.IaCTool}
	}
	r.boolCheck("DR-007", ev.HasIaCFiles,
		"Infrastructure-as-code definitions are present.",
		"No infrastructure-as-code definitions were found.", iac)

	r.warn("DR-008", "Multi-region deployment capability could not be verified automatically. Manual review recommended.")
	r.warn("DR-009", "A failover procedure could not be verified automatically. "+
		"Document the failover steps in the DR runbook.")
	r.warn("DR-010", "Data restoration test records could not be verified automatically. Manual review recommended.")

	return r.verdicts()
}
