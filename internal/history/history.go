package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

const maxEntries = 200

type IndexEntry struct {
	TimestampUTC string  `json:"timestampUtc"`
	ScanID       string  `json:"scanId"`
	OrgName      string  `json:"orgName,omitempty"`
	Profile      string  `json:"profile,omitempty"`
	Overall      float64 `json:"overall"`
	Maturity     string  `json:"maturity"`
	Repos        int     `json:"repos"`
	DORALevel    string  `json:"doraLevel"`
	SLSALevel    int     `json:"slsaLevel"`
	JSONFile     string  `json:"jsonFile"`
	MDFile       string  `json:"mdFile,omitempty"`
}

type Index struct {
	Entries []IndexEntry `json:"entries"`
}

type Trend struct {
	Previous float64
	Current  float64
	Delta    float64
	Label    string // IMPROVING / DECLINING / SAME / FIRST_RUN
}

// Load reads <outDir>/history/index.json. A missing index is an empty one.
func Load(outDir string) (Index, error) {
	var idx Index
	raw, err := os.ReadFile(filepath.Join(outDir, "history", "index.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return idx, err
	}
	if len(raw) == 0 {
		return idx, nil
	}
	if err := json.Unmarshal(raw, &idx); err != nil {
		return idx, fmt.Errorf("parse history index: %w", err)
	}
	return idx, nil
}

// Last returns up to n of the most recent entries, oldest first.
func (idx Index) Last(n int) []IndexEntry {
	if n <= 0 || len(idx.Entries) <= n {
		return idx.Entries
	}
	return idx.Entries[len(idx.Entries)-n:]
}

// Points converts the most recent n entries into trend points.
func (idx Index) Points(n int) []model.TrendPoint {
	last := idx.Last(n)
	out := make([]model.TrendPoint, 0, len(last))
	for _, e := range last {
		out = append(out, model.TrendPoint{TimestampUTC: e.TimestampUTC, Overall: e.Overall, Maturity: e.Maturity})
	}
	return out
}

// Record snapshots a into <outDir>/history and appends it to the index.
func Record(outDir string, a *model.Assessment) (Trend, error) {
	historyDir := filepath.Join(outDir, "history")
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return Trend{}, err
	}

	idx, err := Load(outDir)
	if err != nil {
		// a corrupt index is replaced rather than blocking the run
		idx = Index{}
	}

	hasPrev := len(idx.Entries) > 0
	prev := 0.0
	if hasPrev {
		prev = idx.Entries[len(idx.Entries)-1].Overall
	}

	now := time.Now().UTC()
	// runs within the same second are told apart by scan id
	ts := now.Format("20060102-150405") + "-" + shortID(a.Scan.ScanID)

	jsonName := fmt.Sprintf("assessment-%s.json", ts)
	mdName := fmt.Sprintf("assessment-report-%s.md", ts)

	if err := writeJSON(filepath.Join(historyDir, jsonName), a); err != nil {
		return Trend{}, err
	}

	entry := IndexEntry{
		TimestampUTC: now.Format(time.RFC3339),
		ScanID:       a.Scan.ScanID,
		OrgName:      a.Metadata.OrgName,
		Profile:      a.Metadata.Profile,
		Overall:      a.Overall,
		Maturity:     a.Maturity,
		Repos:        len(a.Repos),
		DORALevel:    a.Benchmarks.DORA.Level,
		SLSALevel:    a.Benchmarks.SLSA.Level,
		JSONFile:     filepath.ToSlash(filepath.Join("history", jsonName)),
	}
	if copied, _ := copyIfExists(filepath.Join(outDir, "assessment-report.md"), filepath.Join(historyDir, mdName)); copied {
		entry.MDFile = filepath.ToSlash(filepath.Join("history", mdName))
	}

	idx.Entries = append(idx.Entries, entry)

	if len(idx.Entries) > maxEntries {
		idx.Entries = idx.Entries[len(idx.Entries)-maxEntries:]
	}

	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return Trend{}, err
	}
	if err := os.WriteFile(filepath.Join(historyDir, "index.json"), raw, 0644); err != nil {
		return Trend{}, err
	}

	tr := Trend{Current: a.Overall, Label: "FIRST_RUN"}

	if hasPrev {
		tr.Previous = prev
		tr.Delta = a.Overall - prev
		if tr.Delta > 0 {
			tr.Label = "IMPROVING"
		} else if tr.Delta < 0 {
			tr.Label = "DECLINING"
		} else {
			tr.Label = "SAME"
		}
	}

	return tr, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeJSON(path string, a *model.Assessment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

func copyIfExists(src, dst string) (bool, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return false, nil
	}
	if err := os.WriteFile(dst, raw, 0644); err != nil {
		return false, err
	}
	return true, nil
}
