package analyze

import (
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/scanner"
)

// statusFromCounts rolls up one check over every subject: any failure
// fails the row, then any warning, then any pass; all N/A stays N/A.
func statusFromCounts(c model.Check) model.Status {
	switch {
	case c.Failed > 0:
		return model.StatusFailed
	case c.Warning > 0:
		return model.StatusWarning
	case c.Passed > 0:
		return model.StatusPassed
	default:
		return model.StatusNotApplicable
	}
}

// BuildCheckRows summarises every catalog check across the assessment's
// subjects, in catalog order. Checks no subject evaluated are omitted.
func BuildCheckRows(a *model.Assessment) []model.Check {
	rows := map[string]*model.Check{}
	for _, v := range a.Verdicts() {
		r, ok := rows[v.Check.ID]
		if !ok {
			r = &model.Check{
				ID:       v.Check.ID,
				Title:    v.Check.Name,
				Category: v.Check.Category,
				Severity: v.Check.Severity,
				Weight:   v.Check.Weight,
			}
			rows[v.Check.ID] = r
		}
		switch v.Status {
		case model.StatusPassed:
			r.Passed++
		case model.StatusWarning:
			r.Warning++
		case model.StatusFailed, model.StatusError:
			r.Failed++
		default:
			r.Skipped++
			continue
		}
		r.Earned += v.Score()
		r.Max += v.Check.Weight
	}

	out := make([]model.Check, 0, len(rows))
	for _, d := range scanner.Descriptors() {
		r, ok := rows[d.ID]
		if !ok {
			continue
		}
		r.Earned = round2(r.Earned)
		r.Status = statusFromCounts(*r)
		out = append(out, *r)
	}
	return out
}
