package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var dependenciesCatalog = catalog.NewBuilder(model.CategoryDependencies).
	Add("DEP-001", "Dependabot/Renovate enabled", model.SeverityCritical, 2,
		"Dependabot or Renovate must be configured to surface and auto-PR known CVEs.").
	Add("DEP-002", "No critical vulnerabilities", model.SeverityCritical, 2,
		"The repository must have no open critical-severity dependency vulnerability alerts.").
	Add("DEP-003", "No high vulnerabilities", model.SeverityHigh, 1.5,
		"The repository must have no open high-severity dependency vulnerability alerts.").
	Add("DEP-004", "Lock file present", model.SeverityHigh, 1.5,
		"A dependency lock file (e.g. package-lock.json, Pipfile.lock, Gemfile.lock) must be committed to ensure reproducible builds.").
	Add("DEP-005", "Dependencies pinned to specific versions", model.SeverityMedium, 1,
		"All direct dependencies must be pinned to exact or narrow version ranges to prevent unexpected upstream changes.").
	Add("DEP-006", "Licence compliance checked", model.SeverityMedium, 1,
		"Dependency licences must be reviewed to ensure compatibility with the project's licence.").
	Add("DEP-007", "Dependency update PRs auto-created", model.SeverityMedium, 1,
		"Automated tooling must open pull requests for dependency updates without manual intervention.").
	Add("DEP-008", "Outdated dependencies addressed within 30 days", model.SeverityMedium, 1,
		"Open dependency update pull requests must be merged or dismissed within 30 days of creation.").
	Add("DEP-009", "SBOM generated", model.SeverityMedium, 1,
		"A Software Bill of Materials (SBOM) must be generated and published to enable supply-chain risk assessment.").
	Add("DEP-010", "No deprecated dependencies", model.SeverityLow, 0.5,
		"Dependencies that have been officially deprecated or abandoned must be replaced.").
	Add("DEP-011", "Private registry used for internal packages", model.SeverityLow, 0.5,
		"Internal or proprietary packages must be served from a private registry to prevent dependency confusion attacks.").
	Build()

type dependenciesScanner struct{ domain }

func newDependencies() *dependenciesScanner {
	return &dependenciesScanner{domain{name: "dependencies", reg: dependenciesCatalog}}
}

func (s *dependenciesScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)
	sec := ev.Security
	dependabot := func(f *model.SecurityFeatures) bool { return f.DependabotEnabled }

	evalSecurityFlag(r, "DEP-001", sec, dependabot,
		"Dependabot dependency scanning and update automation is enabled.",
		"Neither Dependabot nor Renovate appears to be enabled. Known CVEs will not be surfaced automatically.")
	evalSeverityAlerts(r, "DEP-002", "critical", sec)
	evalSeverityAlerts(r, "DEP-003", "high", sec)
	r.warn("DEP-004", "Lock file presence could not be verified automatically. "+
		"Confirm that a lock file is committed for every package manager in use.")
	r.warn("DEP-005", "Version pinning of direct dependencies could not be verified automatically. "+
		"Review manifests for open-ended version ranges.")
	r.warn("DEP-006", "Dependency licence compliance could not be verified automatically. "+
		"Run a licence scanner as part of the pipeline.")
	evalSecurityFlag(r, "DEP-007", sec, dependabot,
		"Dependabot is enabled and will automatically open pull requests for dependency updates.",
		"No automated dependency update tooling detected. Enable Dependabot or Renovate to open update PRs automatically.")
	r.warn("DEP-008", "The age of open dependency update PRs could not be verified automatically. "+
		"Review the open update backlog.")
	r.boolCheck("DEP-009", ev.HasSBOM,
		"An SBOM artefact is present in the repository.",
		"No SBOM artefact was detected. Generate one (e.g. CycloneDX or SPDX) as part of the build.",
		nil)
	r.warn("DEP-010", "Deprecated dependencies could not be detected automatically. Manual review recommended.")
	r.warn("DEP-011", "Private registry usage for internal packages could not be verified automatically. "+
		"Manual review recommended.")

	return r.verdicts()
}
