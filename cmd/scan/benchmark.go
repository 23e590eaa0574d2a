package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/benchmark"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/compare"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func benchmarkCmd() *cobra.Command {
	var (
		assessmentPath string
		score          float64
		asJSON         bool
	)
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Classify a stored assessment, or a bare score, against DORA, OpenSSF, SLSA and CIS",
		RunE: func(cmd *cobra.Command, args []string) error {
			hasScore := cmd.Flags().Changed("score")
			if (assessmentPath == "") == !hasScore {
				return errors.New("exactly one of --assessment or --score is required")
			}

			var report model.BenchmarkReport
			if assessmentPath != "" {
				a, err := compare.Load(assessmentPath)
				if err != nil {
					return err
				}
				report = benchmark.Evaluate(a.Overall, benchmark.PassedIDs(a.Verdicts()))
			} else {
				if score < 0 || score > 100 {
					return fmt.Errorf("score %0.2f outside 0-100", score)
				}
				report = model.BenchmarkReport{DORA: benchmark.DORAProfile(benchmark.DORALevel(score))}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printBenchmarks(cmd.OutOrStdout(), report, assessmentPath != "")
			return nil
		},
	}
	cmd.Flags().StringVar(&assessmentPath, "assessment", "", "Path to an assessment.json")
	cmd.Flags().Float64Var(&score, "score", 0, "Overall score to classify (DORA only)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func printBenchmarks(w io.Writer, r model.BenchmarkReport, full bool) {
	fmt.Fprintf(w, "DORA: %s\n", r.DORA.Level)
	fmt.Fprintf(w, "  deployment frequency: %s\n", r.DORA.DeploymentFrequency)
	fmt.Fprintf(w, "  lead time:            %s\n", r.DORA.LeadTime)
	fmt.Fprintf(w, "  change failure rate:  %s\n", r.DORA.ChangeFailureRate)
	fmt.Fprintf(w, "  time to restore:      %s\n", r.DORA.MTTR)
	if !full {
		return
	}

	fmt.Fprintln(w, "OpenSSF Scorecard:")
	for _, name := range benchmark.OpenSSFCategories() {
		mark := "no"
		if r.OpenSSF[name] {
			mark = "yes"
		}
		fmt.Fprintf(w, "  %-20s %s\n", name, mark)
	}

	fmt.Fprintf(w, "SLSA: level %d", r.SLSA.Level)
	if r.SLSA.Name != "" {
		fmt.Fprintf(w, " (%s: %s)", r.SLSA.Name, r.SLSA.Description)
	}
	fmt.Fprintln(w)

	ids := make([]string, 0, len(r.CIS))
	for id := range r.CIS {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	fmt.Fprintln(w, "CIS supply chain:")
	for _, id := range ids {
		d := r.CIS[id]
		fmt.Fprintf(w, "  %-16s %d/%d compliant=%t\n", id, d.Passed, d.Total, d.Compliant)
	}
}
