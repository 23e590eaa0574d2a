package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/analyze"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// WriteCSV writes one CSV file per assessment section to outDir/csv/.
// Files are UTF-8 with BOM for clean Excel opening on Windows.
func WriteCSV(outDir string, a *model.Assessment) error {
	dir := filepath.Join(outDir, "csv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csv: mkdir: %w", err)
	}
	writers := []func(string, *model.Assessment) error{
		writeCategoriesCSV,
		writeChecksCSV,
		writeVerdictsCSV,
		writeFindingsCSV,
		writeRemediationCSV,
	}
	for _, fn := range writers {
		if err := fn(dir, a); err != nil {
			return err
		}
	}
	return nil
}

func csvFile(dir, name string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, err
	}
	// UTF-8 BOM for Excel
	_, _ = f.Write([]byte{0xEF, 0xBB, 0xBF})
	return f, csv.NewWriter(f), nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func writeCategoriesCSV(dir string, a *model.Assessment) error {
	f, w, err := csvFile(dir, "categories.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Category", "Score", "Max", "Percentage", "Weight", "Pass", "Fail", "Findings"})
	for _, c := range analyze.BuildCategories(a.Categories) {
		_ = w.Write([]string{
			string(c.Category), num(c.Score), num(c.MaxScore), num(c.Percentage()), num(c.Weight),
			strconv.Itoa(c.PassCount), strconv.Itoa(c.FailCount), strconv.Itoa(c.FindingCount),
		})
	}
	_ = w.Write([]string{"overall", num(a.Overall), "100", num(a.Overall), "1.00", "", "", ""})
	w.Flush()
	return w.Error()
}

func writeChecksCSV(dir string, a *model.Assessment) error {
	f, w, err := csvFile(dir, "checks.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"ID", "Title", "Category", "Severity", "Weight", "Passed", "Warning", "Failed", "Not Applicable", "Earned", "Max", "Status"})
	for _, c := range a.Checks {
		_ = w.Write([]string{
			c.ID, c.Title, string(c.Category), string(c.Severity), num(c.Weight),
			strconv.Itoa(c.Passed), strconv.Itoa(c.Warning), strconv.Itoa(c.Failed), strconv.Itoa(c.Skipped),
			num(c.Earned), num(c.Max), string(c.Status),
		})
	}
	w.Flush()
	return w.Error()
}

func writeVerdictsCSV(dir string, a *model.Assessment) error {
	f, w, err := csvFile(dir, "verdicts.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Subject", "Check ID", "Name", "Category", "Severity", "Status", "Score", "Detail"})
	row := func(subject string, v model.Verdict) {
		_ = w.Write([]string{
			subject, v.Check.ID, v.Check.Name, string(v.Check.Category), string(v.Check.Severity),
			string(v.Status), num(v.Score()), v.Detail,
		})
	}
	if a.Org != nil {
		for _, v := range a.Org.Verdicts {
			row(a.Org.Name, v)
		}
	}
	for _, r := range a.Repos {
		for _, v := range r.Verdicts {
			row(r.Repo.Name, v)
		}
	}
	w.Flush()
	return w.Error()
}

func writeFindingsCSV(dir string, a *model.Assessment) error {
	f, w, err := csvFile(dir, "findings.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Severity", "Status", "Check ID", "Name", "Category", "Subject", "Detail"})
	for _, fd := range a.Findings {
		_ = w.Write([]string{string(fd.Severity), string(fd.Status), fd.CheckID, fd.Name, string(fd.Category), fd.Subject, fd.Detail})
	}
	w.Flush()
	return w.Error()
}

func writeRemediationCSV(dir string, a *model.Assessment) error {
	f, w, err := csvFile(dir, "remediation.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = w.Write([]string{"Priority", "Category", "Title", "Detail", "Subjects", "Actions", "Check ID"})
	for _, s := range a.RemediationSteps {
		_ = w.Write([]string{
			strconv.Itoa(s.Priority),
			string(s.Category),
			s.Title,
			s.Detail,
			strings.Join(s.Subjects, ";"),
			strings.Join(s.Actions, " | "),
			s.CheckID,
		})
	}
	w.Flush()
	return w.Error()
}
