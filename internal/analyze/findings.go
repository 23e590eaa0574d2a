package analyze

import (
	"sort"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func needsAttention(s model.Status) bool {
	return s == model.StatusFailed || s == model.StatusWarning || s == model.StatusError
}

func statusRank(s model.Status) int {
	if s == model.StatusWarning {
		return 1
	}
	return 0
}

// BuildFindings lists every failed, warning or error verdict with its
// subject, most severe first. Hard failures sort ahead of warnings of the
// same severity.
func BuildFindings(a *model.Assessment) []model.Finding {
	out := []model.Finding{}
	add := func(subject string, vs []model.Verdict) {
		for _, v := range vs {
			if !needsAttention(v.Status) {
				continue
			}
			out = append(out, model.Finding{
				CheckID:  v.Check.ID,
				Name:     v.Check.Name,
				Category: v.Check.Category,
				Severity: v.Check.Severity,
				Status:   v.Status,
				Subject:  subject,
				Detail:   v.Detail,
			})
		}
	}
	if a.Org != nil {
		add(a.Org.Name, a.Org.Verdicts)
	}
	for _, r := range a.Repos {
		add(r.Repo.Name, r.Verdicts)
	}

	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := out[i], out[j]
		if fi.Severity.Rank() != fj.Severity.Rank() {
			return fi.Severity.Rank() > fj.Severity.Rank()
		}
		if statusRank(fi.Status) != statusRank(fj.Status) {
			return statusRank(fi.Status) < statusRank(fj.Status)
		}
		if fi.CheckID != fj.CheckID {
			return fi.CheckID < fj.CheckID
		}
		return fi.Subject < fj.Subject
	})
	return out
}
