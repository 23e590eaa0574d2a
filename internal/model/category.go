package model

import "encoding/json"

// Category is one of the weighted groupings verdicts are aggregated into.
type Category string

const (
	CategoryPlatformArch      Category = "platform_arch"
	CategoryIdentityAccess    Category = "identity_access"
	CategoryRepoGovernance    Category = "repo_governance"
	CategoryCICD              Category = "cicd"
	CategorySecretsMgmt       Category = "secrets_mgmt"
	CategoryDependencies      Category = "dependencies"
	CategorySAST              Category = "sast"
	CategoryDAST              Category = "dast"
	CategoryContainerSecurity Category = "container_security"
	CategoryCodeQuality       Category = "code_quality"
	CategorySDLCProcess       Category = "sdlc_process"
	CategoryCompliance        Category = "compliance"
	CategoryCollaboration     Category = "collaboration"
	CategoryDisasterRecovery  Category = "disaster_recovery"
	CategoryMonitoring        Category = "monitoring"
	CategoryMigration         Category = "migration"
)

// Supplementary categories hold the cross-cutting security and governance
// domains. They carry no domain weight and never move the overall score.
const (
	CategorySecurity   Category = "security"
	CategoryGovernance Category = "governance"
)

var domainWeights = map[Category]float64{
	CategoryPlatformArch:      0.06,
	CategoryIdentityAccess:    0.10,
	CategoryRepoGovernance:    0.10,
	CategoryCICD:              0.10,
	CategorySecretsMgmt:       0.08,
	CategoryDependencies:      0.08,
	CategorySAST:              0.06,
	CategoryDAST:              0.04,
	CategoryContainerSecurity: 0.06,
	CategoryCodeQuality:       0.06,
	CategorySDLCProcess:       0.06,
	CategoryCompliance:        0.06,
	CategoryCollaboration:     0.04,
	CategoryDisasterRecovery:  0.04,
	CategoryMonitoring:        0.04,
	CategoryMigration:         0.02,
}

var categoryOrder = []Category{
	CategoryPlatformArch,
	CategoryIdentityAccess,
	CategoryRepoGovernance,
	CategoryCICD,
	CategorySecretsMgmt,
	CategoryDependencies,
	CategorySAST,
	CategoryDAST,
	CategoryContainerSecurity,
	CategoryCodeQuality,
	CategorySDLCProcess,
	CategoryCompliance,
	CategoryCollaboration,
	CategoryDisasterRecovery,
	CategoryMonitoring,
	CategoryMigration,
}

// Categories returns the 16 weighted categories in report order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// DomainWeights returns a copy of the standard category weights.
func DomainWeights() map[Category]float64 {
	out := make(map[Category]float64, len(domainWeights))
	for k, v := range domainWeights {
		out[k] = v
	}
	return out
}

// DomainWeight returns the standard weight of c, 0 for supplementary categories.
func DomainWeight(c Category) float64 {
	return domainWeights[c]
}

// Weighted reports whether c is one of the 16 weighted categories.
func (c Category) Weighted() bool {
	_, ok := domainWeights[c]
	return ok
}

func (c Category) String() string { return string(c) }

// CategoryScore aggregates the verdicts of a single category.
type CategoryScore struct {
	Category     Category `json:"category"`
	Score        float64  `json:"score"`
	MaxScore     float64  `json:"maxScore"`
	Weight       float64  `json:"weight"`
	FindingCount int      `json:"findingCount"`
	PassCount    int      `json:"passCount"`
	FailCount    int      `json:"failCount"`
}

// Percentage is 100 * Score / MaxScore, or 0 when nothing in the category was scorable.
func (s CategoryScore) Percentage() float64 {
	if s.MaxScore == 0 {
		return 0
	}
	return s.Score / s.MaxScore * 100
}

// MarshalJSON adds the derived percentage.
func (s CategoryScore) MarshalJSON() ([]byte, error) {
	type plain CategoryScore
	return json.Marshal(struct {
		plain
		Percentage float64 `json:"percentage"`
	}{plain(s), s.Percentage()})
}
