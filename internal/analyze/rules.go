package analyze

import (
	"math"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const (
	MaturityPlatinum = "PLATINUM"
	MaturityGold     = "GOLD"
	MaturitySilver   = "SILVER"
	MaturityBronze   = "BRONZE"
)

// AggregateByCategory folds verdicts into category scores using the
// standard weights.
func AggregateByCategory(verdicts []model.Verdict) map[model.Category]model.CategoryScore {
	return aggregate(verdicts, model.DomainWeights())
}

// Aggregate is AggregateByCategory with the orchestrator's profile weights.
func (o *Orchestrator) Aggregate(verdicts []model.Verdict) map[model.Category]model.CategoryScore {
	return aggregate(verdicts, o.weights)
}

// aggregate always returns the 16 weighted categories. Supplementary
// categories appear only when they have verdicts, with weight 0.
// Not-applicable verdicts count as findings but never towards score or max.
func aggregate(verdicts []model.Verdict, weights map[model.Category]float64) map[model.Category]model.CategoryScore {
	out := make(map[model.Category]model.CategoryScore, len(weights)+2)
	for _, c := range model.Categories() {
		out[c] = model.CategoryScore{Category: c, Weight: weights[c]}
	}

	for _, v := range verdicts {
		c := v.Check.Category
		cs, ok := out[c]
		if !ok {
			cs = model.CategoryScore{Category: c, Weight: weights[c]}
		}
		cs.FindingCount++
		switch v.Status {
		case model.StatusNotApplicable:
			out[c] = cs
			continue
		case model.StatusPassed:
			cs.PassCount++
		case model.StatusFailed, model.StatusError:
			cs.FailCount++
		}
		cs.Score += v.Score()
		cs.MaxScore += v.Check.Weight
		out[c] = cs
	}
	return out
}

// OverallScore is the weight-averaged category percentage, rounded to two
// decimals. Categories with nothing scorable are left out of both sums.
// Sums run in report order so identical input always rounds the same way.
func OverallScore(scores map[model.Category]model.CategoryScore) float64 {
	var num, den float64
	for _, cs := range BuildCategories(scores) {
		if cs.MaxScore == 0 {
			continue
		}
		num += cs.Percentage() * cs.Weight
		den += cs.Weight
	}
	if den == 0 {
		return 0
	}
	return round2(num / den)
}

func Maturity(overall float64) string {
	switch {
	case overall >= 90:
		return MaturityPlatinum
	case overall >= 75:
		return MaturityGold
	case overall >= 50:
		return MaturitySilver
	default:
		return MaturityBronze
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
