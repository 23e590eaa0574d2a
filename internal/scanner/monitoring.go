package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var monitoringCatalog = catalog.NewBuilder(model.CategoryMonitoring).
	Add("MON-001", "Monitoring configuration present", model.SeverityHigh, 1.5,
		"A monitoring configuration file (e.g. Prometheus, Datadog, CloudWatch) must be present.").
	Add("MON-002", "Alerting rules defined", model.SeverityHigh, 1.5,
		"Alerting rules must be defined to notify operators of production issues.").
	Add("MON-003", "Logging framework configured", model.SeverityMedium, 1,
		"A structured logging framework must be configured and documented.").
	Add("MON-004", "Distributed tracing enabled", model.SeverityMedium, 1,
		"Distributed tracing (e.g. OpenTelemetry, Jaeger, Zipkin) should be enabled for request tracking.").
	Add("MON-005", "Health check endpoints defined", model.SeverityMedium, 1,
		"Health check endpoints must be defined to enable liveness and readiness probing.").
	Add("MON-006", "SLO/SLA documentation present", model.SeverityMedium, 1,
		"Service Level Objectives or Service Level Agreements must be documented.").
	Add("MON-007", "Error tracking tool integrated", model.SeverityMedium, 1,
		"An error tracking tool (e.g. Sentry, Rollbar, Bugsnag) should be integrated.").
	Add("MON-008", "Performance benchmarks defined", model.SeverityLow, 0.5,
		"Performance benchmarks or baseline metrics should be defined and tracked.").
	Add("MON-009", "Dashboards as code present", model.SeverityLow, 0.5,
		"Monitoring dashboards should be defined as code (e.g. Grafana JSON, Terraform) for reproducibility.").
	Add("MON-010", "On-call rotation documented", model.SeverityMedium, 1,
		"An on-call rotation schedule or policy must be documented for operational coverage.").
	Add("MON-011", "Incident response playbook present", model.SeverityHigh, 1.5,
		"An incident response playbook must be present to guide operators during production incidents.").
	Build()

type monitoringScanner struct{ domain }

func newMonitoring() *monitoringScanner {
	return &monitoringScanner{domain{name: "monitoring", reg: monitoringCatalog}}
}

func (s *monitoringScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("MON-001", ev.HasMonitoringConfig,
		"A monitoring configuration file is present.",
		"No monitoring configuration file was found.", nil)
	r.warn("MON-002", "Alerting rules could not be verified automatically. "+
		"Confirm that production alerts are defined and routed to an on-call channel.")
	r.manualReview("MON-003", "Logging framework configuration")
	r.manualReview("MON-004", "Distributed tracing")
	r.boolCheck("MON-005", ev.HasRunbook,
		"An operational runbook describing health endpoints is present.",
		"No runbook describing health check endpoints was found.", nil)
	r.boolCheck("MON-006", ev.HasSLADocument,
		"An SLO/SLA document is present.",
		"No SLO/SLA documentation was found.", nil)
	r.manualReview("MON-007", "Error tracking integration")
	r.manualReview("MON-008", "Performance benchmarks")
	r.boolCheck("MON-009", ev.HasDashboardsAsCode,
		"Dashboards are defined as code.",
		"No dashboards-as-code definitions were found.", nil)
	r.boolCheck("MON-010", ev.HasOnCallDoc,
		"An on-call rotation is documented.",
		"No on-call rotation documentation was found.", nil)
	r.boolCheck("MON-011", ev.HasIncidentResponsePlaybook,
		"An incident response playbook is present.",
		"No incident response playbook was found.", nil)

	return r.verdicts()
}
