package benchmark

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// openSSFMapping links each Scorecard category to the check ids that must
// all pass for the category to be satisfied.
var openSSFMapping = map[string][]string{
	"Branch-Protection":      {"REPO-001", "REPO-002", "REPO-003", "REPO-005", "REPO-006"},
	"Code-Review":            {"SDLC-003", "REPO-002"},
	"CI-Tests":               {"CICD-001", "CICD-003"},
	"Vulnerabilities":        {"DEP-002", "DEP-003"},
	"Dependency-Update-Tool": {"DEP-001"},
	"Security-Policy":        {"COMP-004"},
	"Signed-Releases":        {"REPO-007"},
	"Token-Permissions":      {"IAM-008"},
	"SAST":                   {"CICD-005", "SAST-001"},
	"License":                {"COMP-001"},
}

// OpenSSFAlignment reports, per Scorecard category, whether every mapped
// check passed. There is no partial credit.
func OpenSSFAlignment(passed sets.Set[string]) map[string]bool {
	out := make(map[string]bool, len(openSSFMapping))
	for category, ids := range openSSFMapping {
		out[category] = passed.HasAll(ids...)
	}
	return out
}

// OpenSSFCategories returns the Scorecard category names, sorted.
func OpenSSFCategories() []string {
	out := make([]string, 0, len(openSSFMapping))
	for c := range openSSFMapping {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// OpenSSFRequirements returns the check ids required by category.
func OpenSSFRequirements(category string) []string {
	return slices.Clone(openSSFMapping[category])
}
