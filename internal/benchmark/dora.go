// Package benchmark classifies an assessment against external maturity
// frameworks: DORA, OpenSSF Scorecard, SLSA and CIS supply chain.
package benchmark

import "github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"

const (
	DORAElite  = "elite"
	DORAHigh   = "high"
	DORAMedium = "medium"
	DORALow    = "low"
)

// doraLevels is ordered from the highest threshold down; the first level
// whose threshold the score reaches wins.
var doraLevels = []model.DORAResult{
	{
		Level:               DORAElite,
		DeploymentFrequency: "On-demand (multiple deploys per day)",
		LeadTime:            "Less than one hour",
		ChangeFailureRate:   "0-15%",
		MTTR:                "Less than one hour",
		ScoreThreshold:      85,
	},
	{
		Level:               DORAHigh,
		DeploymentFrequency: "Between once per day and once per week",
		LeadTime:            "Between one day and one week",
		ChangeFailureRate:   "16-30%",
		MTTR:                "Less than one day",
		ScoreThreshold:      70,
	},
	{
		Level:               DORAMedium,
		DeploymentFrequency: "Between once per week and once per month",
		LeadTime:            "Between one week and one month",
		ChangeFailureRate:   "31-45%",
		MTTR:                "Between one day and one week",
		ScoreThreshold:      50,
	},
	{
		Level:               DORALow,
		DeploymentFrequency: "Between once per month and once per six months",
		LeadTime:            "Between one month and six months",
		ChangeFailureRate:   "46-60%",
		MTTR:                "More than one week",
		ScoreThreshold:      0,
	},
}

// DORALevel maps an overall score to a DORA performance level.
func DORALevel(score float64) string {
	for _, l := range doraLevels {
		if score >= l.ScoreThreshold {
			return l.Level
		}
	}
	return DORALow
}

// DORAProfile returns the descriptive metrics for level. Unknown levels
// resolve to the low profile.
func DORAProfile(level string) model.DORAResult {
	for _, l := range doraLevels {
		if l.Level == level {
			return l
		}
	}
	return doraLevels[len(doraLevels)-1]
}

// DORALevels returns every level, highest first.
func DORALevels() []model.DORAResult {
	out := make([]model.DORAResult, len(doraLevels))
	copy(out, doraLevels)
	return out
}
