package model

// Finding is a verdict that needs attention (failed, warning or error),
// flattened with the subject it was raised against.
type Finding struct {
	CheckID  string   `json:"checkId"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Status   Status   `json:"status"`
	Subject  string   `json:"subject"`
	Detail   string   `json:"detail,omitempty"`
}

// RemediationStep is one prioritized improvement action.
type RemediationStep struct {
	Priority int      `json:"priority"` // 1=critical, 2=recommended, 3=optional
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Actions  []string `json:"actions,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
	CheckID  string   `json:"checkId,omitempty"`
}

// DomainSkip records a domain evaluator that could not complete for a subject.
type DomainSkip struct {
	Domain  string `json:"domain"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
}
