package scanner

import (
	"fmt"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var sastCatalog = catalog.NewBuilder(model.CategorySAST).
	Add("SAST-001", "SAST tool configured", model.SeverityHigh, 1.5,
		"A SAST configuration file (e.g. .semgrep.yml, .codeql, sonar-project.properties) must be present.").
	Add("SAST-002", "SAST runs in CI pipeline", model.SeverityHigh, 1.5,
		"At least one CI workflow must include a security scan step.").
	Add("SAST-003", "CodeQL or Semgrep analysis enabled", model.SeverityMedium, 1,
		"Platform-level code scanning (e.g. GitHub CodeQL) must be enabled for the repository.").
	Add("SAST-004", "No critical SAST findings", model.SeverityCritical, 2,
		"The repository must have no open critical-severity SAST findings.").
	Add("SAST-005", "No high SAST findings", model.SeverityHigh, 1.5,
		"The repository must have no open high-severity SAST findings.").
	Add("SAST-006", "Custom SAST rules defined", model.SeverityLow, 0.5,
		"Custom rule sets or policies should be defined to extend default SAST coverage.").
	Add("SAST-007", "SAST results block merge on critical findings", model.SeverityHigh, 1.5,
		"Critical SAST findings must be configured as required status checks that block pull request merges.").
	Add("SAST-008", "Incremental scanning enabled", model.SeverityLow, 0.5,
		"SAST should be configured to scan only changed files on pull requests for faster feedback.").
	Add("SAST-009", "Multi-language SAST coverage", model.SeverityMedium, 1,
		"SAST tooling should cover all primary languages used in the repository.").
	Add("SAST-010", "False positive management process", model.SeverityLow, 0.5,
		"A documented process or suppression mechanism must exist for managing SAST false positives.").
	Build()

type sastScanner struct{ domain }

func newSAST() *sastScanner {
	return &sastScanner{domain{name: "sast", reg: sastCatalog}}
}

func (s *sastScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("SAST-001", ev.HasSASTConfig,
		"A SAST tool configuration file is present.",
		"No SAST configuration file was found.", nil)

	scanning := workflowsWhere(ev.Workflows, func(w model.Workflow) bool { return w.HasSecurityScan })
	switch {
	case len(scanning) > 0:
		r.add("SAST-002", model.StatusPassed,
			fmt.Sprintf("%d CI workflow(s) include a security scan step.", len(scanning)),
			model.Evidence{"workflows": workflowNames(scanning)})
	case len(ev.Workflows) == 0:
		r.notApplicable("SAST-002", "No CI workflows found in the repository.")
	default:
		r.add("SAST-002", model.StatusFailed, "No CI workflow includes a security scan step.",
			model.Evidence{"workflow_count": len(ev.Workflows)})
	}

	evalSecurityFlag(r, "SAST-003", ev.Security, func(f *model.SecurityFeatures) bool { return f.CodeScanningEnabled },
		"Platform code scanning is enabled.",
		"Platform code scanning (e.g. CodeQL) is not enabled.")
	r.manualReview("SAST-004", "Critical SAST findings")
	r.manualReview("SAST-005", "High-severity SAST findings")
	r.manualReview("SAST-006", "Custom SAST rule definitions")
	r.manualReview("SAST-007", "Whether SAST results are configured as required status checks")
	r.manualReview("SAST-008", "Incremental SAST scanning configuration")
	r.manualReview("SAST-009", "SAST language coverage")
	r.manualReview("SAST-010", "False positive management processes")

	return r.verdicts()
}
