package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	enrichedFile = "assessment-enriched.json"
	reportFile   = "assessment-report.md"
)

// WriteArtifacts writes the enriched JSON and appends a trend section to the
// markdown report when one exists.
func WriteArtifacts(outDir string, en *Enriched) error {
	if outDir == "" {
		outDir = "out"
	}

	jb, err := json.MarshalIndent(en, "", "  ")
	if err != nil {
		return fmt.Errorf("encode enriched json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, enrichedFile), jb, 0644); err != nil {
		return fmt.Errorf("write enriched json: %w", err)
	}

	mdPath := filepath.Join(outDir, reportFile)
	if b, err := os.ReadFile(mdPath); err == nil {
		aug := string(b) + "\n\n" + renderMarkdown(en) + "\n"
		if err := os.WriteFile(mdPath, []byte(aug), 0644); err != nil {
			return fmt.Errorf("append md report: %w", err)
		}
	}

	return nil
}

func renderMarkdown(en *Enriched) string {
	var sb strings.Builder
	sb.WriteString("## Trend, Risk, Profiles\n\n")
	sb.WriteString(fmt.Sprintf("- **Schema:** %s\n", en.SchemaVersion))
	sb.WriteString(fmt.Sprintf("- **Profile:** %s\n", en.Profile))
	sb.WriteString(fmt.Sprintf("- **Risk Posture:** %s\n", en.Risk.Posture))

	if en.Trend == nil || en.Previous == nil {
		sb.WriteString("\n- **Trend:** FIRST RUN (no previous scan found)\n")
	} else {
		arrow := "→"
		switch en.Trend.Direction {
		case "up":
			arrow = "↑"
		case "down":
			arrow = "↓"
		}
		sb.WriteString(fmt.Sprintf("\n- **Trend:** %s %+0.2f (%+0.2f%%) since %s\n",
			arrow, en.Trend.DeltaScore, en.Trend.DeltaPercent, en.Previous.TimestampUtc))
	}

	if len(en.LastN) > 1 {
		parts := make([]string, len(en.LastN))
		for i, v := range en.LastN {
			parts[i] = fmt.Sprintf("%0.2f", v)
		}
		sb.WriteString(fmt.Sprintf("- **Last %d runs:** %s\n", len(en.LastN), strings.Join(parts, ", ")))
	}

	if len(en.Profiles) > 0 {
		sb.WriteString("\n### Profiles\n\n")
		sb.WriteString("| Profile | Score | Maturity | Posture |\n|---|---:|---|---|\n")
		for _, p := range en.Profiles {
			sb.WriteString(fmt.Sprintf("| %s | %0.2f | %s | %s |\n", p.Profile, p.Overall, p.Maturity, p.Posture))
		}
	}

	if len(en.CategoryDeltas) > 0 {
		sb.WriteString("\n### Category Deltas\n\n")
		for _, d := range en.CategoryDeltas {
			sb.WriteString(fmt.Sprintf("- %s: %0.2f%% → %0.2f%% (%+0.2f)\n", d.Category, d.From, d.To, d.Delta))
		}
	}

	return sb.String()
}
