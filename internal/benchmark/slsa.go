package benchmark

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

type slsaLevel struct {
	level    int
	name     string
	desc     string
	required []string
}

// Level 4 needs hermetic, reproducible builds, which repository metadata
// cannot show, so the model stops at 3.
var slsaLevels = []slsaLevel{
	{1, "Build L1", "Provenance exists", []string{"CICD-001"}},
	{2, "Build L2", "Hosted build platform", []string{"CICD-001", "CICD-002"}},
	{3, "Build L3", "Hardened builds", []string{"CICD-001", "CICD-002", "SEC-022", "SEC-005"}},
}

// SLSALevel returns the highest build level whose required checks all
// passed, or 0. Every level is tested on its own.
func SLSALevel(passed sets.Set[string]) int {
	highest := 0
	for _, l := range slsaLevels {
		if passed.HasAll(l.required...) && l.level > highest {
			highest = l.level
		}
	}
	return highest
}

// SLSAProfile describes level; level 0 has no framework name.
func SLSAProfile(level int) model.SLSAResult {
	for _, l := range slsaLevels {
		if l.level == level {
			return model.SLSAResult{Level: l.level, Name: l.name, Description: l.desc}
		}
	}
	return model.SLSAResult{Level: 0, Name: "Build L0", Description: "No build integrity guarantees"}
}

// SLSALevels describes every defined level, lowest first.
func SLSALevels() []model.SLSAResult {
	out := make([]model.SLSAResult, 0, len(slsaLevels))
	for _, l := range slsaLevels {
		out = append(out, model.SLSAResult{Level: l.level, Name: l.name, Description: l.desc})
	}
	return out
}
