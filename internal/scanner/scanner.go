// Package scanner holds the domain evaluators. Each evaluator owns one
// catalog of checks and turns a snapshot of evidence into exactly one
// verdict per declared check, in catalog order.
package scanner

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// Evaluator is the part of a domain shared by repo and org scopes.
type Evaluator interface {
	Name() string
	Category() model.Category
	Checks() []model.CheckDescriptor
}

// RepoEvaluator evaluates one repository snapshot.
type RepoEvaluator interface {
	Evaluator
	Evaluate(ev *model.RepoEvidence) []model.Verdict
}

// OrgEvaluator evaluates one organisation snapshot.
type OrgEvaluator interface {
	Evaluator
	EvaluateOrg(ev *model.OrgEvidence) []model.Verdict
}

type domain struct {
	name string
	reg  *catalog.Registry
}

func (d domain) Name() string                    { return d.name }
func (d domain) Category() model.Category        { return d.reg.Category() }
func (d domain) Checks() []model.CheckDescriptor { return d.reg.Checks() }

// RepoEvaluators returns the repo-scoped domains in run order.
func RepoEvaluators() []RepoEvaluator {
	return []RepoEvaluator{
		newRepoGovernance(),
		newCICD(),
		newSecretsMgmt(),
		newDependencies(),
		newSAST(),
		newDAST(),
		newContainerSecurity(),
		newCodeQuality(),
		newSDLCProcess(),
		newCompliance(),
		newCollaboration(),
		newDisasterRecovery(),
		newMonitoring(),
		newMigration(),
		newSecurity(),
		newGovernance(),
	}
}

// OrgEvaluators returns the org-scoped domains in run order.
func OrgEvaluators() []OrgEvaluator {
	return []OrgEvaluator{
		newPlatformArch(),
		newIdentityAccess(),
	}
}

// All returns every domain, org first, in run order.
func All() []Evaluator {
	var out []Evaluator
	for _, e := range OrgEvaluators() {
		out = append(out, e)
	}
	for _, e := range RepoEvaluators() {
		out = append(out, e)
	}
	return out
}

// Descriptors returns the check descriptors of every domain in run order.
func Descriptors() []model.CheckDescriptor {
	var out []model.CheckDescriptor
	for _, e := range All() {
		out = append(out, e.Checks()...)
	}
	return out
}

func repoOrEmpty(ev *model.RepoEvidence) *model.RepoEvidence {
	if ev == nil {
		return &model.RepoEvidence{}
	}
	return ev
}

func orgOrEmpty(ev *model.OrgEvidence) *model.OrgEvidence {
	if ev == nil {
		return &model.OrgEvidence{}
	}
	return ev
}
