package analyze

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/logging"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/profile"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/scanner"
)

// Observer receives per-domain timings and isolation events. The metrics
// package provides the Prometheus implementation.
type Observer interface {
	ObserveDomain(domain string, elapsed time.Duration)
	DomainSkipped(domain string)
}

type nopObserver struct{}

func (nopObserver) ObserveDomain(string, time.Duration) {}
func (nopObserver) DomainSkipped(string)                {}

// Orchestrator runs the domain evaluators over evidence and aggregates the
// verdicts. It holds no per-run state and is safe for concurrent use.
type Orchestrator struct {
	log      *slog.Logger
	observer Observer
	profile  profile.Name
	weights  map[model.Category]float64
	repo     []scanner.RepoEvaluator
	org      []scanner.OrgEvaluator
	workers  int
	now      func() time.Time
}

type Option func(*Orchestrator)

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithProfile selects the category weighting used for the overall score.
func WithProfile(p profile.Name) Option {
	return func(o *Orchestrator) { o.profile = p }
}

func WithRepoEvaluators(evs ...scanner.RepoEvaluator) Option {
	return func(o *Orchestrator) { o.repo = evs }
}

func WithOrgEvaluators(evs ...scanner.OrgEvaluator) Option {
	return func(o *Orchestrator) { o.org = evs }
}

// WithWorkers bounds how many repositories are evaluated at once.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) { o.workers = n }
}

func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:      logging.Discard(),
		observer: nopObserver{},
		profile:  profile.Standard,
		repo:     scanner.RepoEvaluators(),
		org:      scanner.OrgEvaluators(),
		workers:  4,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	o.weights = profile.Weights(o.profile)
	return o
}

// Profile is the active weighting profile.
func (o *Orchestrator) Profile() profile.Name { return o.profile }

// RunRepoScan evaluates every repo domain in order. A domain that panics is
// logged and skipped; the remaining domains still run.
func (o *Orchestrator) RunRepoScan(ev *model.RepoEvidence) ([]model.Verdict, []model.DomainSkip) {
	subject := ""
	if ev != nil {
		subject = ev.Repo.Name
	}
	var out []model.Verdict
	var skips []model.DomainSkip
	for _, e := range o.repo {
		vs, err := o.guard(e, subject, func() []model.Verdict { return e.Evaluate(ev) })
		if err != nil {
			skips = append(skips, model.DomainSkip{Domain: e.Name(), Subject: subject, Reason: err.Error()})
			continue
		}
		out = append(out, vs...)
	}
	return out, skips
}

// RunOrgScan is RunRepoScan for the org-scoped domains.
func (o *Orchestrator) RunOrgScan(ev *model.OrgEvidence) ([]model.Verdict, []model.DomainSkip) {
	subject := ""
	if ev != nil {
		subject = ev.OrgName
	}
	var out []model.Verdict
	var skips []model.DomainSkip
	for _, e := range o.org {
		vs, err := o.guard(e, subject, func() []model.Verdict { return e.EvaluateOrg(ev) })
		if err != nil {
			skips = append(skips, model.DomainSkip{Domain: e.Name(), Subject: subject, Reason: err.Error()})
			continue
		}
		out = append(out, vs...)
	}
	return out, skips
}

func (o *Orchestrator) guard(e scanner.Evaluator, subject string, run func() []model.Verdict) (vs []model.Verdict, err error) {
	start := o.now()
	defer func() {
		o.observer.ObserveDomain(e.Name(), o.now().Sub(start))
		if r := recover(); r != nil {
			vs = nil
			err = fmt.Errorf("domain %s panicked: %v", e.Name(), r)
			o.observer.DomainSkipped(e.Name())
			o.log.Error("domain evaluator failed; continuing with remaining domains",
				"domain", e.Name(), "subject", subject, "panic", r)
		}
	}()
	return run(), nil
}
