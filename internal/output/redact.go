package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const redacted = "[redacted]"

// WriteRedactedJSON writes a copy of the assessment with identifying names replaced.
func WriteRedactedJSON(path string, a *model.Assessment) error {
	r, err := redact(a)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// redact returns a deep copy of the assessment with sensitive fields replaced.
// Repository names become repo-N tokens in input order and the organization
// becomes a fixed token. Check ids, scores and benchmark results are kept.
func redact(a *model.Assessment) (*model.Assessment, error) {
	// Deep copy via JSON round-trip
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var r model.Assessment
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(r.Repos)+1)
	for i := range r.Repos {
		repo := &r.Repos[i].Repo
		token := fmt.Sprintf("repo-%d", i+1)
		names[repo.Name] = token
		repo.Name = token
		repo.ExternalID = ""
		repo.URL = ""
		repo.Description = nil
		repo.Topics = nil
	}
	if r.Org != nil {
		names[r.Org.Name] = "org"
		r.Org.Name = "org"
	}
	if r.Metadata.OrgName != "" {
		names[r.Metadata.OrgName] = "org"
		r.Metadata.OrgName = redacted
	}
	if r.Metadata.CustomerID != "" {
		r.Metadata.CustomerID = redacted
	}
	if r.Metadata.Environment != "" {
		r.Metadata.Environment = redacted
	}

	subject := func(s string) string {
		if v, ok := names[s]; ok {
			return v
		}
		return s
	}

	for i := range r.Findings {
		r.Findings[i].Subject = subject(r.Findings[i].Subject)
	}
	for i := range r.RemediationSteps {
		for j, s := range r.RemediationSteps[i].Subjects {
			r.RemediationSteps[i].Subjects[j] = subject(s)
		}
	}
	for i := range r.DomainSkips {
		r.DomainSkips[i].Subject = subject(r.DomainSkips[i].Subject)
	}

	if c := r.Comparison; c != nil {
		// previous repos have no token mapping; only counts survive
		c.ReposAdded = tokens("added", len(c.ReposAdded))
		c.ReposRemoved = tokens("removed", len(c.ReposRemoved))
		for i := range c.FindingsNew {
			c.FindingsNew[i].Subject = subject(c.FindingsNew[i].Subject)
		}
		for i := range c.FindingsResolved {
			c.FindingsResolved[i].Subject = redacted
		}
	}

	return &r, nil
}

func tokens(prefix string, n int) []string {
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i+1)
	}
	return out
}
