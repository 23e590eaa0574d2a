package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/logging"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "devops-scan",
		Short: "Score DevOps and security maturity from collected repository evidence",
		Long: `devops-scan evaluates organization and repository evidence against 189
checks in 18 domains, produces a weighted maturity score and aligns the
result with DORA, OpenSSF Scorecard, SLSA and CIS supply chain benchmarks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(
		scanCmd(g),
		catalogCmd(),
		benchmarkCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", model.ToolName, model.ToolVersion)
			},
		},
	)
	return cmd
}

// logger builds the process logger; flags win over the config file values.
func (g *globalFlags) logger(level, format string) (*slog.Logger, error) {
	if g.logLevel != "" {
		level = g.logLevel
	}
	if g.logFormat != "" {
		format = g.logFormat
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:   lvl,
		Format:  logging.Format(format),
		Output:  os.Stderr,
		Service: model.ToolName,
	}), nil
}
