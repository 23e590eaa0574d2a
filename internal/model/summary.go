package model

type ScanSummary struct {
	ScanID       string          `json:"scanId"`
	TimestampUtc string          `json:"timestampUtc"`
	Overall      float64         `json:"overall"`
	Maturity     string          `json:"maturity"`
	Status       string          `json:"status"` // PASSED/FAILED
	MinScore     float64         `json:"minScore"`
	Profile      string          `json:"profile"`
	DORALevel    string          `json:"doraLevel"`
	SLSALevel    int             `json:"slsaLevel"`
	Repos        int             `json:"repos"`
	Categories   []CategoryScore `json:"categories"`
	Trend        string          `json:"trend"`
	Delta        float64         `json:"delta"`
}
