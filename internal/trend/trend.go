// Package trend measures how an assessment moved relative to a previous one.
package trend

import (
	"math"
	"sort"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

const epsilon = 0.00001

type Trend struct {
	DeltaScore   float64   `json:"deltaScore"`
	DeltaPercent float64   `json:"deltaPercent"`
	Direction    Direction `json:"direction"`
	From         float64   `json:"from"`
	To           float64   `json:"to"`
}

func Compute(prev, curr float64) Trend {
	d := curr - prev

	dir := Flat
	if d > epsilon {
		dir = Up
	} else if d < -epsilon {
		dir = Down
	}

	dp := 0.0
	if math.Abs(prev) > epsilon {
		dp = (d / prev) * 100.0
	}

	return Trend{
		DeltaScore:   round(d, 2),
		DeltaPercent: round(dp, 2),
		Direction:    dir,
		From:         round(prev, 2),
		To:           round(curr, 2),
	}
}

// Categories returns the percentage movement of every category present in
// either assessment that changed, largest absolute movement first.
func Categories(prev, curr map[model.Category]model.CategoryScore) []model.CategoryDelta {
	seen := map[model.Category]bool{}
	var out []model.CategoryDelta
	add := func(c model.Category) {
		if seen[c] {
			return
		}
		seen[c] = true
		from := prev[c].Percentage()
		to := curr[c].Percentage()
		if math.Abs(to-from) <= epsilon {
			return
		}
		out = append(out, model.CategoryDelta{
			Category: c,
			From:     round(from, 2),
			To:       round(to, 2),
			Delta:    round(to-from, 2),
		})
	}
	for c := range curr {
		add(c)
	}
	for c := range prev {
		add(c)
	}

	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].Delta), math.Abs(out[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
