package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// WriteJSON writes a to path through a temporary file in the same directory,
// so a reader never sees a half-written assessment.
func WriteJSON(path string, a *model.Assessment) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".assessment-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		tmp.Close()
		return fmt.Errorf("encode assessment: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
