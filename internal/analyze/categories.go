package analyze

import (
	"sort"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// BuildCategories flattens the category map in report order: the weighted
// categories first in their standard order, then supplementary ones by name.
func BuildCategories(scores map[model.Category]model.CategoryScore) []model.CategoryScore {
	out := make([]model.CategoryScore, 0, len(scores))
	for _, c := range model.Categories() {
		if cs, ok := scores[c]; ok {
			out = append(out, cs)
		}
	}
	var extra []model.CategoryScore
	for c, cs := range scores {
		if !c.Weighted() {
			extra = append(extra, cs)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Category < extra[j].Category })
	return append(out, extra...)
}
