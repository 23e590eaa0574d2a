package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/analyze"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/compare"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/config"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/enrich"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/evidence"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/history"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/metrics"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/output"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/profile"
)

const (
	jsonFile     = "assessment.json"
	markdownFile = "assessment-report.md"
	redactedFile = "assessment-redacted.json"
	summaryFile  = "summary.json"
)

func scanCmd(g *globalFlags) *cobra.Command {
	var configPath string
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "scan [evidence files or directories...]",
		Short: "Assess evidence and write the report outputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			merged := overlayFlags(cmd, fileCfg, cfg)
			if err := merged.Validate(); err != nil {
				return err
			}
			log, err := g.logger(merged.Log.Level, merged.Log.Format)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScan(ctx, cmd.OutOrStdout(), log, merged, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	f.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory")
	f.Float64Var(&cfg.MinScore, "min-score", cfg.MinScore, "Minimum acceptable overall score")
	f.StringVar(&cfg.Profile, "profile", cfg.Profile, "Scoring profile: standard|security|delivery|compliance")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "Repositories evaluated concurrently (1-64)")
	f.StringSliceVar(&cfg.Formats, "format", cfg.Formats, "Output formats: json, markdown, csv")
	f.BoolVar(&cfg.CI, "ci", cfg.CI, "CI mode (machine-readable output)")
	f.BoolVar(&cfg.Redact, "redact", cfg.Redact, "Also write redacted JSON with masked identifiers")
	f.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "Write Prometheus textfile metrics")
	f.StringVar(&cfg.Compare, "compare", cfg.Compare, "Path to a previous assessment.json to diff against")
	f.BoolVar(&cfg.History, "history", cfg.History, "Record the run in the output history index")
	f.IntVar(&cfg.LastN, "last", cfg.LastN, "Runs kept in the score trend")
	f.StringVar(&cfg.Metadata.OrgName, "org", "", "Organization name (defaults to the evidence)")
	f.StringVar(&cfg.Metadata.CustomerID, "customer", "", "Customer identifier (optional)")
	f.StringVar(&cfg.Metadata.Environment, "env", "", "Environment (prod/staging/dev/test) (optional)")
	return cmd
}

// overlayFlags applies every flag the user set explicitly on top of the file config.
func overlayFlags(cmd *cobra.Command, base, flags config.Config) config.Config {
	out := base
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("out", func() { out.OutDir = flags.OutDir })
	set("min-score", func() { out.MinScore = flags.MinScore })
	set("profile", func() { out.Profile = flags.Profile })
	set("workers", func() { out.Workers = flags.Workers })
	set("format", func() { out.Formats = flags.Formats })
	set("ci", func() { out.CI = flags.CI })
	set("redact", func() { out.Redact = flags.Redact })
	set("metrics", func() { out.Metrics = flags.Metrics })
	set("compare", func() { out.Compare = flags.Compare })
	set("history", func() { out.History = flags.History })
	set("last", func() { out.LastN = flags.LastN })
	set("org", func() { out.Metadata.OrgName = flags.Metadata.OrgName })
	set("customer", func() { out.Metadata.CustomerID = flags.Metadata.CustomerID })
	set("env", func() { out.Metadata.Environment = flags.Metadata.Environment })
	return out
}

func runScan(ctx context.Context, stdout io.Writer, log *slog.Logger, cfg config.Config, paths []string) error {
	quiet := cfg.CI
	say := func(format string, args ...any) {
		if !quiet {
			fmt.Fprintf(stdout, format+"\n", args...)
		}
	}

	doc, err := evidence.Load(paths...)
	if err != nil {
		return fmt.Errorf("load evidence: %w", err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", cfg.OutDir, err)
	}

	opts := []analyze.Option{
		analyze.WithLogger(log),
		analyze.WithProfile(profile.Name(cfg.Profile)),
		analyze.WithWorkers(cfg.Workers),
	}
	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New()
		opts = append(opts, analyze.WithObserver(m))
	}

	say("Profile: %s", cfg.Profile)
	a, err := analyze.New(opts...).Assess(ctx, analyze.Input{
		Org:   doc.Org,
		Repos: doc.RepoEvidence(),
		Metadata: model.Metadata{
			OrgName:     cfg.Metadata.OrgName,
			CustomerID:  cfg.Metadata.CustomerID,
			Environment: cfg.Metadata.Environment,
		},
	})
	if err != nil {
		return err
	}
	for _, s := range a.DomainSkips {
		log.Warn("domain skipped", "domain", s.Domain, "subject", s.Subject, "reason", s.Reason)
	}

	applyComparison(log, a, cfg.Compare)

	idx, err := history.Load(cfg.OutDir)
	if err != nil {
		log.Warn("history index unreadable", "err", err)
	}
	var points []model.TrendPoint
	if cfg.LastN > 1 {
		points = idx.Points(cfg.LastN - 1)
	}
	a.TrendHistory = append(points, model.TrendPoint{
		TimestampUTC: a.Metadata.GeneratedAt,
		Overall:      a.Overall,
		Maturity:     a.Maturity,
	})

	if err := writeOutputs(cfg, a); err != nil {
		return err
	}

	trendLabel, trendDelta := "HISTORY_SKIPPED", 0.0
	if cfg.History {
		if tr, err := history.Record(cfg.OutDir, a); err != nil {
			log.Warn("history not recorded", "err", err)
		} else {
			trendLabel, trendDelta = tr.Label, tr.Delta
			if tr.Label == "FIRST_RUN" {
				say("Trend: FIRST RUN (no previous scan found)")
			} else {
				say("Trend: %s (%+0.2f) Previous: %0.2f, Current: %0.2f", tr.Label, tr.Delta, tr.Previous, tr.Current)
			}
		}

		if en, err := enrich.Run(a, enrich.Options{OutDir: cfg.OutDir, LastNCount: cfg.LastN}); err != nil {
			log.Warn("enrich failed", "err", err)
		} else if err := enrich.WriteArtifacts(cfg.OutDir, en); err != nil {
			log.Warn("enrich artifacts not written", "err", err)
		}
	}

	if m != nil {
		m.RecordAssessment(a)
		path, err := m.WriteTextfile(cfg.OutDir)
		if err != nil {
			log.Warn("metrics not written", "err", err)
		} else {
			say("Metrics: %s", path)
		}
	}

	summary := output.BuildSummary(a, cfg.MinScore, trendLabel, trendDelta)
	if err := output.WriteSummary(filepath.Join(cfg.OutDir, summaryFile), summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if quiet {
		raw, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(raw))
	} else {
		say("Scan complete.")
		say("Final Score: %0.2f", a.Overall)
		say("Maturity: %s", a.Maturity)
		say("DORA: %s, SLSA: L%d", a.Benchmarks.DORA.Level, a.Benchmarks.SLSA.Level)
	}

	if summary.Status == output.StatusFailed {
		say("Status: FAILED (score below %0.2f)", cfg.MinScore)
		return &exitError{code: 2, msg: fmt.Sprintf("score %0.2f below %0.2f", a.Overall, cfg.MinScore)}
	}
	say("Status: PASSED")
	return nil
}

func writeOutputs(cfg config.Config, a *model.Assessment) error {
	if cfg.Wants(config.FormatJSON) {
		if err := output.WriteJSON(filepath.Join(cfg.OutDir, jsonFile), a); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if cfg.Wants(config.FormatMarkdown) {
		if err := output.WriteMarkdown(filepath.Join(cfg.OutDir, markdownFile), a); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	}
	if cfg.Wants(config.FormatCSV) {
		if err := output.WriteCSV(cfg.OutDir, a); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if cfg.Redact {
		if err := output.WriteRedactedJSON(filepath.Join(cfg.OutDir, redactedFile), a); err != nil {
			return fmt.Errorf("write redacted json: %w", err)
		}
	}
	return nil
}

// applyComparison loads a previous assessment and attaches the diff to a.
func applyComparison(log *slog.Logger, a *model.Assessment, path string) {
	if path == "" {
		return
	}
	prev, err := compare.Load(path)
	if err != nil {
		log.Warn("comparison skipped", "path", path, "err", err)
		return
	}
	diff := compare.Diff(prev, a)
	a.Comparison = &diff
}
