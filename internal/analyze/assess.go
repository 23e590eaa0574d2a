package analyze

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/benchmark"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/remediation"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/risk"
)

// Input is everything one assessment is computed from.
type Input struct {
	Org      *model.OrgEvidence
	Repos    []*model.RepoEvidence
	Metadata model.Metadata
}

type repoRun struct {
	verdicts []model.Verdict
	skips    []model.DomainSkip
}

// Assess evaluates the org and every repository, pools all verdicts into
// one category map and classifies the result. Repositories are evaluated
// concurrently but appear in input order.
func (o *Orchestrator) Assess(ctx context.Context, in Input) (*model.Assessment, error) {
	started := o.now().UTC()
	a := model.NewAssessment(model.NewUUID(), started)
	a.Metadata.OrgName = in.Metadata.OrgName
	a.Metadata.CustomerID = in.Metadata.CustomerID
	a.Metadata.Environment = in.Metadata.Environment
	a.Metadata.Profile = string(o.profile)
	if a.Metadata.OrgName == "" && in.Org != nil {
		a.Metadata.OrgName = in.Org.OrgName
	}

	o.log.Info("assessment started", "scan_id", a.Scan.ScanID, "repos", len(in.Repos),
		"org", in.Org != nil, "profile", o.profile, "workers", o.workers)

	if in.Org != nil {
		vs, skips := o.RunOrgScan(in.Org)
		a.Org = &model.OrgResult{Name: in.Org.OrgName, Verdicts: vs}
		a.DomainSkips = append(a.DomainSkips, skips...)
	}

	runs := make([]repoRun, len(in.Repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, ev := range in.Repos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vs, skips := o.RunRepoScan(ev)
			runs[i] = repoRun{verdicts: vs, skips: skips}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assess repositories: %w", err)
	}

	for i, ev := range in.Repos {
		repo := model.Repository{}
		if ev != nil {
			repo = ev.Repo
		}
		a.Repos = append(a.Repos, model.RepoResult{Repo: repo, Verdicts: runs[i].verdicts})
		a.DomainSkips = append(a.DomainSkips, runs[i].skips...)
	}

	verdicts := a.Verdicts()
	a.Categories = o.Aggregate(verdicts)
	a.Overall = OverallScore(a.Categories)
	a.Maturity = Maturity(a.Overall)
	a.Posture = string(risk.PostureFor(a.Overall))
	a.Benchmarks = benchmark.Evaluate(a.Overall, benchmark.PassedIDs(verdicts))
	a.Findings = BuildFindings(&a)
	a.RemediationSteps = remediation.Generate(&a)
	a.Checks = BuildCheckRows(&a)

	ended := o.now().UTC()
	a.Scan.EndedAt = ended
	a.Scan.DurationSeconds = int(ended.Sub(started).Seconds())
	a.Scan.Workers = o.workers

	o.log.Info("assessment finished", "scan_id", a.Scan.ScanID, "overall", a.Overall,
		"maturity", a.Maturity, "verdicts", len(verdicts), "domain_skips", len(a.DomainSkips))
	return &a, nil
}
