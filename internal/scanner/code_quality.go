package scanner

import (
	"fmt"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var codeQualityCatalog = catalog.NewBuilder(model.CategoryCodeQuality).
	Add("CQ-001", "Linter configuration present", model.SeverityMedium, 1,
		"A linter must be configured and executed in the CI pipeline.").
	Add("CQ-002", "Test framework configured", model.SeverityHigh, 1.5,
		"A test framework must be configured and executed in the CI pipeline.").
	Add("CQ-003", "Code coverage tool present", model.SeverityMedium, 1,
		"A code-coverage measurement tool should be configured and reporting results.").
	Add("CQ-004", "Code coverage > 60%", model.SeverityMedium, 1,
		"Code coverage should exceed 60% to ensure adequate test coverage.").
	Add("CQ-005", "README exists and non-empty", model.SeverityLow, 0.5,
		"The repository must contain a README file with meaningful content.").
	Add("CQ-006", "EditorConfig/Prettier consistent", model.SeverityLow, 0.5,
		"An EditorConfig or Prettier configuration should enforce consistent formatting.").
	Add("CQ-007", "Type checking configured", model.SeverityMedium, 1,
		"A type-checking tool (mypy, pyright, tsc) should be configured.").
	Add("CQ-008", "Code complexity below threshold", model.SeverityMedium, 1,
		"Code complexity should be measured and kept below acceptable thresholds.").
	Add("CQ-009", "Technical debt tracking", model.SeverityLow, 0.5,
		"Technical debt should be tracked and managed systematically.").
	Build()

type codeQualityScanner struct{ domain }

func newCodeQuality() *codeQualityScanner {
	return &codeQualityScanner{domain{name: "code_quality", reg: codeQualityCatalog}}
}

func (s *codeQualityScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	lint := workflowsWhere(ev.Workflows, func(w model.Workflow) bool { return w.HasLint })
	r.boolCheck("CQ-001", len(lint) > 0,
		fmt.Sprintf("%d workflow(s) run a linter.", len(lint)),
		"No CI workflow runs a linter.",
		model.Evidence{"lint_workflow_names": workflowNames(lint)})

	tests := workflowsWhere(ev.Workflows, func(w model.Workflow) bool { return w.HasTests })
	r.boolCheck("CQ-002", len(tests) > 0,
		fmt.Sprintf("%d workflow(s) execute a test suite.", len(tests)),
		"No CI workflow executes a test suite.",
		model.Evidence{"test_workflow_names": workflowNames(tests)})

	r.manualReview("CQ-003", "Code coverage tooling")

	switch cov := ev.TestCoveragePercent; {
	case cov == nil:
		r.notApplicable("CQ-004", "Code coverage data not available.")
	case *cov >= 60:
		r.add("CQ-004", model.StatusPassed,
			fmt.Sprintf("Code coverage is %v%% (threshold: 60%%).", round1(*cov)),
			model.Evidence{"coverage_pct": *cov})
	default:
		r.add("CQ-004", model.StatusFailed,
			fmt.Sprintf("Code coverage is %v%%, below the 60%% threshold.", round1(*cov)),
			model.Evidence{"coverage_pct": *cov})
	}

	r.boolCheck("CQ-005", ev.HasReadme,
		"A README file is present.",
		"No README file was found.", nil)
	r.boolCheck("CQ-006", ev.HasEditorconfig,
		"An EditorConfig or Prettier configuration is present.",
		"No EditorConfig or Prettier configuration was found.", nil)
	r.boolCheck("CQ-007", ev.HasTypeChecking,
		"Type checking is configured.",
		"No type-checking configuration was found.", nil)
	r.manualReview("CQ-008", "Code complexity")
	r.manualReview("CQ-009", "Technical debt tracking")

	return r.verdicts()
}
