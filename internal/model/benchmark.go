package model

// BenchmarkReport holds the alignment of one assessment against the external
// frameworks. It lives here so the assessment bundle can carry it without the
// benchmark package importing back into model consumers.
type BenchmarkReport struct {
	DORA    DORAResult           `json:"dora"`
	OpenSSF map[string]bool      `json:"openssf"`
	SLSA    SLSAResult           `json:"slsa"`
	CIS     map[string]CISDomain `json:"cis"`
}

type DORAResult struct {
	Level               string  `json:"level"`
	DeploymentFrequency string  `json:"deploymentFrequency"`
	LeadTime            string  `json:"leadTime"`
	ChangeFailureRate   string  `json:"changeFailureRate"`
	MTTR                string  `json:"mttr"`
	ScoreThreshold      float64 `json:"scoreThreshold"`
}

type SLSAResult struct {
	Level       int    `json:"level"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CISDomain is the compliance breakdown of one CIS supply-chain domain.
type CISDomain struct {
	Description string  `json:"description"`
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Percentage  float64 `json:"percentage"`
	Compliant   bool    `json:"compliant"`
}
