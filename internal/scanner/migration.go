package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var migrationCatalog = catalog.NewBuilder(model.CategoryMigration).
	Add("MIG-001", "Migration guide present", model.SeverityMedium, 1,
		"A migration guide must be present to assist consumers when upgrading between versions.").
	Add("MIG-002", "API versioning implemented", model.SeverityMedium, 1,
		"API versioning should be implemented and documented to support gradual migration.").
	Add("MIG-003", "Deprecation policy documented", model.SeverityMedium, 1,
		"A deprecation policy must be documented to communicate breaking-change timelines.").
	Add("MIG-004", "Database migration tool configured", model.SeverityMedium, 1,
		"A database migration tool (e.g. Alembic, Flyway, Liquibase) must be configured.").
	Add("MIG-005", "Feature parity documentation", model.SeverityLow, 0.5,
		"Feature parity documentation should describe equivalent capabilities between versions or platforms.").
	Add("MIG-006", "Data export capability", model.SeverityMedium, 1,
		"The system must provide data export capability to prevent vendor lock-in.").
	Add("MIG-007", "Backwards compatibility testing", model.SeverityMedium, 1,
		"Backwards compatibility tests must be present to catch breaking changes before release.").
	Add("MIG-008", "Environment parity (dev/staging/prod)", model.SeverityMedium, 1,
		"Development, staging, and production environments should maintain parity to reduce migration surprises.").
	Add("MIG-009", "Platform abstraction layer present", model.SeverityLow, 0.5,
		"A platform abstraction layer should be present to reduce coupling and ease future migrations.").
	Build()

type migrationScanner struct{ domain }

func newMigration() *migrationScanner {
	return &migrationScanner{domain{name: "migration", reg: migrationCatalog}}
}

func (s *migrationScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("MIG-001", ev.HasMigrationGuide,
		"A migration guide is present.",
		"No migration guide was found.", nil)
	r.boolCheck("MIG-002", ev.HasAPIDocs,
		"API documentation is present; confirm that it describes versioning.",
		"No API documentation was found, so API versioning could not be confirmed.", nil)
	r.boolCheck("MIG-003", ev.HasDeprecationPolicy,
		"A deprecation policy is documented.",
		"No deprecation policy was found.", nil)
	r.manualReview("MIG-004", "Database migration tooling")
	r.manualReview("MIG-005", "Feature parity documentation")
	r.manualReview("MIG-006", "Data export capability")
	r.manualReview("MIG-007", "Backwards compatibility testing")
	r.manualReview("MIG-008", "Environment parity")
	r.manualReview("MIG-009", "Platform abstraction layer")

	return r.verdicts()
}
