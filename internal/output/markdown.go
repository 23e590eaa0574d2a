package output

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/analyze"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/benchmark"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// maxMarkdownFindings caps the findings section; the CSV export has them all.
const maxMarkdownFindings = 50

func WriteMarkdown(path string, a *model.Assessment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	renderMarkdown(w, a)
	return w.Flush()
}

func renderMarkdown(w *bufio.Writer, a *model.Assessment) {
	title := "DevOps Maturity Assessment"
	if a.Metadata.OrgName != "" {
		title += ": " + a.Metadata.OrgName
	}
	fmt.Fprintf(w, "# %s\n\n", title)
	fmt.Fprintf(w, "- Scan: `%s`\n- Generated: %s\n- Profile: %s\n- Repositories: %d\n\n",
		a.Scan.ScanID, a.Metadata.GeneratedAt, a.Metadata.Profile, len(a.Repos))

	fmt.Fprintf(w, "## Overall Score: %0.2f / 100\n\n**Maturity Level: %s** (risk posture %s)\n\n",
		a.Overall, a.Maturity, a.Posture)

	fmt.Fprintf(w, "### Category Breakdown\n\n")
	fmt.Fprintf(w, "| Category | Score | Max | %% | Weight | Pass | Fail | Findings |\n")
	fmt.Fprintf(w, "|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, c := range analyze.BuildCategories(a.Categories) {
		fmt.Fprintf(w, "| %s | %0.2f | %0.2f | %0.1f | %0.2f | %d | %d | %d |\n",
			c.Category, c.Score, c.MaxScore, c.Percentage(), c.Weight, c.PassCount, c.FailCount, c.FindingCount)
	}
	w.WriteString("\n")

	renderBenchmarks(w, a.Benchmarks)

	fmt.Fprintf(w, "## Findings\n\n")
	if len(a.Findings) == 0 {
		fmt.Fprintf(w, "No failing checks detected.\n\n")
	} else {
		shown := a.Findings
		if len(shown) > maxMarkdownFindings {
			shown = shown[:maxMarkdownFindings]
		}
		for _, f := range shown {
			fmt.Fprintf(w, "- **[%s] %s** %s (%s, %s)", strings.ToUpper(string(f.Severity)), f.CheckID, f.Name, f.Subject, f.Status)
			if f.Detail != "" {
				fmt.Fprintf(w, ": %s", f.Detail)
			}
			w.WriteString("\n")
		}
		if rest := len(a.Findings) - len(shown); rest > 0 {
			fmt.Fprintf(w, "\n_%d more findings in csv/findings.csv_\n", rest)
		}
		w.WriteString("\n")
	}

	if len(a.RemediationSteps) > 0 {
		fmt.Fprintf(w, "## Remediation\n\n")
		for _, s := range a.RemediationSteps {
			fmt.Fprintf(w, "### P%d %s\n\n%s\n", s.Priority, s.Title, s.Detail)
			if len(s.Subjects) > 0 {
				fmt.Fprintf(w, "\nAffects: %s\n", strings.Join(s.Subjects, ", "))
			}
			for _, act := range s.Actions {
				fmt.Fprintf(w, "\n    %s", act)
			}
			w.WriteString("\n\n")
		}
	}

	if len(a.DomainSkips) > 0 {
		fmt.Fprintf(w, "## Skipped Domains\n\n")
		for _, s := range a.DomainSkips {
			fmt.Fprintf(w, "- %s on %s: %s\n", s.Domain, s.Subject, s.Reason)
		}
		w.WriteString("\n")
	}

	if c := a.Comparison; c != nil {
		renderComparison(w, c)
	}
}

func renderBenchmarks(w *bufio.Writer, b model.BenchmarkReport) {
	fmt.Fprintf(w, "## Benchmarks\n\n")

	fmt.Fprintf(w, "### DORA: %s\n\n", b.DORA.Level)
	fmt.Fprintf(w, "- Deployment frequency: %s\n", b.DORA.DeploymentFrequency)
	fmt.Fprintf(w, "- Lead time for changes: %s\n", b.DORA.LeadTime)
	fmt.Fprintf(w, "- Change failure rate: %s\n", b.DORA.ChangeFailureRate)
	fmt.Fprintf(w, "- Time to restore: %s\n\n", b.DORA.MTTR)

	met := 0
	for _, ok := range b.OpenSSF {
		if ok {
			met++
		}
	}
	fmt.Fprintf(w, "### OpenSSF Scorecard: %d / %d\n\n", met, len(b.OpenSSF))
	for _, name := range benchmark.OpenSSFCategories() {
		ok, known := b.OpenSSF[name]
		if !known {
			continue
		}
		mark := "✗"
		if ok {
			mark = "✓"
		}
		fmt.Fprintf(w, "- %s %s\n", mark, name)
	}
	w.WriteString("\n")

	fmt.Fprintf(w, "### SLSA: Level %d", b.SLSA.Level)
	if b.SLSA.Name != "" {
		fmt.Fprintf(w, " (%s)", b.SLSA.Name)
	}
	w.WriteString("\n\n")
	if b.SLSA.Description != "" {
		fmt.Fprintf(w, "%s\n\n", b.SLSA.Description)
	}

	ids := make([]string, 0, len(b.CIS))
	compliant := 0
	for id, d := range b.CIS {
		ids = append(ids, id)
		if d.Compliant {
			compliant++
		}
	}
	sort.Strings(ids)
	fmt.Fprintf(w, "### CIS Supply Chain: %d / %d domains compliant\n\n", compliant, len(ids))
	for _, id := range ids {
		d := b.CIS[id]
		fmt.Fprintf(w, "- %s: %d/%d (%0.0f%%)\n", d.Description, d.Passed, d.Total, d.Percentage)
	}
	w.WriteString("\n")
}

func renderComparison(w *bufio.Writer, c *model.ComparisonSummary) {
	fmt.Fprintf(w, "## Comparison with %s\n\n", c.PreviousScanID)
	fmt.Fprintf(w, "- Previous score: %0.2f (%s)\n", c.PreviousScore, c.PreviousMaturity)
	fmt.Fprintf(w, "- Score delta: %+0.2f\n", c.ScoreDelta)
	if c.DORAPrevious != c.DORACurrent {
		fmt.Fprintf(w, "- DORA: %s → %s\n", c.DORAPrevious, c.DORACurrent)
	}
	if c.SLSAPrevious != c.SLSACurrent {
		fmt.Fprintf(w, "- SLSA: %d → %d\n", c.SLSAPrevious, c.SLSACurrent)
	}
	list := func(label string, items []string) {
		if len(items) > 0 {
			fmt.Fprintf(w, "- %s: %s\n", label, strings.Join(items, ", "))
		}
	}
	list("Repositories added", c.ReposAdded)
	list("Repositories removed", c.ReposRemoved)
	list("OpenSSF gained", c.OpenSSFGained)
	list("OpenSSF lost", c.OpenSSFLost)
	fmt.Fprintf(w, "- New findings: %d\n- Resolved findings: %d\n\n", len(c.FindingsNew), len(c.FindingsResolved))
}
