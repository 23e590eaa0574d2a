package model

// Severity ranks how much a failing check matters.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank orders severities, critical highest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Status is the outcome of evaluating one check.
type Status string

const (
	StatusPassed        Status = "passed"
	StatusFailed        Status = "failed"
	StatusWarning       Status = "warning"
	StatusNotApplicable Status = "not_applicable"
	StatusError         Status = "error"
)

// CheckDescriptor is a catalog entry. Descriptors are created once and never mutated.
type CheckDescriptor struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Weight      float64  `json:"weight" yaml:"weight"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Check is a per-check summary row across every evaluated subject.
// It is meant to be shown directly in reports.
type Check struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Weight   float64  `json:"weight"`
	Passed   int      `json:"passed"`
	Warning  int      `json:"warning"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"notApplicable"`
	Earned   float64  `json:"earned"`
	Max      float64  `json:"max"`
	Status   Status   `json:"status"`
}
