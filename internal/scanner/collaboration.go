package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var collaborationCatalog = catalog.NewBuilder(model.CategoryCollaboration).
	Add("COLLAB-001", "Issue templates configured", model.SeverityLow, 0.5,
		"Issue templates should be configured to guide contributors.").
	Add("COLLAB-002", "Discussion board enabled", model.SeverityLow, 0.5,
		"GitHub Discussions or equivalent should be enabled for community engagement.").
	Add("COLLAB-003", "Team notifications configured", model.SeverityLow, 0.5,
		"Team notification settings should be configured for timely communication.").
	Add("COLLAB-004", "Project boards used", model.SeverityLow, 0.5,
		"Project boards should be used for work tracking and visibility.").
	Add("COLLAB-005", "Wiki or documentation site", model.SeverityLow, 0.5,
		"A wiki or documentation site should be available for knowledge sharing.").
	Add("COLLAB-006", "Response time to PRs < 24h", model.SeverityMedium, 1,
		"Pull requests should receive initial review within 24 hours.").
	Add("COLLAB-007", "Stale issue/PR management", model.SeverityLow, 0.5,
		"A process for managing stale issues and PRs should be in place.").
	Build()

type collaborationScanner struct{ domain }

func newCollaboration() *collaborationScanner {
	return &collaborationScanner{domain{name: "collaboration", reg: collaborationCatalog}}
}

func (s *collaborationScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	r.boolCheck("COLLAB-001", ev.HasIssueTemplates,
		"Issue templates are configured.",
		"No issue templates were found.", nil)
	passOrReview(r, "COLLAB-002", ev.HasDiscussionsEnabled, "Discussions are enabled.", "Discussion board usage")
	r.manualReview("COLLAB-003", "Team notification settings")
	passOrReview(r, "COLLAB-004", ev.HasProjectBoards, "Project boards are in use.", "Project board usage")
	passOrReview(r, "COLLAB-005", ev.HasWiki, "A wiki or documentation site is available.", "Wiki or documentation site availability")
	evalReviewCoverage(ev.RecentPRs, r, "COLLAB-006", 0.90, 0.75)
	r.manualReview("COLLAB-007", "Stale issue and PR management")

	return r.verdicts()
}

// passOrReview passes on a positive signal; its absence only warrants review.
func passOrReview(r *results, id string, ok bool, passDetail, subject string) {
	if ok {
		r.pass(id, passDetail)
		return
	}
	r.manualReview(id, subject)
}
