// Package evidence loads collected repository and organization evidence from
// YAML or JSON documents and validates it before evaluation.
package evidence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// ErrUnknownFormat is returned for files that are neither YAML nor JSON.
var ErrUnknownFormat = errors.New("unknown evidence format")

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is one evidence file: an optional organization and any number of
// repositories.
type Document struct {
	Org   *model.OrgEvidence   `json:"org,omitempty" yaml:"org,omitempty"`
	Repos []model.RepoEvidence `json:"repos" yaml:"repos" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFor picks the decoder from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Decode reads a single document from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	return &doc, nil
}

// LoadFile reads and validates one evidence file.
func LoadFile(path string) (*Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(raw), f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return doc, nil
}

// Load reads every path and merges the documents in argument order.
// Directories are expanded to the evidence files they contain, sorted by name.
// All load and merge failures are reported together.
func Load(paths ...string) (*Document, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}

	merged := &Document{}
	var errs []error
	for _, p := range files {
		doc, err := LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := merged.merge(doc); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	if agg := utilerrors.NewAggregate(errs); agg != nil {
		return nil, agg
	}
	return merged, nil
}

func expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", p, err)
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatFor(e.Name()); err == nil {
				names = append(names, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(names)
		out = append(out, names...)
	}
	return out, nil
}

func (d *Document) merge(other *Document) error {
	if other.Org != nil {
		if d.Org != nil && d.Org.OrgName != other.Org.OrgName {
			return fmt.Errorf("second organization %q, already loaded %q", other.Org.OrgName, d.Org.OrgName)
		}
		d.Org = other.Org
	}
	seen := make(map[string]bool, len(d.Repos))
	for _, r := range d.Repos {
		seen[r.Repo.Name] = true
	}
	for _, r := range other.Repos {
		if seen[r.Repo.Name] {
			return fmt.Errorf("duplicate repository %q", r.Repo.Name)
		}
		seen[r.Repo.Name] = true
		d.Repos = append(d.Repos, r)
	}
	return nil
}

// Validate checks struct tags and cross-record rules, returning every problem.
func (d *Document) Validate() error {
	var errs []error
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	names := map[string]int{}
	for i, r := range d.Repos {
		if prev, ok := names[r.Repo.Name]; ok && r.Repo.Name != "" {
			errs = append(errs, fmt.Errorf("repos[%d]: duplicate repository %q (first at repos[%d])", i, r.Repo.Name, prev))
			continue
		}
		names[r.Repo.Name] = i
	}
	if len(d.Repos) == 0 && d.Org == nil {
		errs = append(errs, errors.New("document has neither org nor repos"))
	}
	return utilerrors.NewAggregate(errs)
}

// RepoEvidence returns pointers to the loaded repositories in document order.
func (d *Document) RepoEvidence() []*model.RepoEvidence {
	out := make([]*model.RepoEvidence, len(d.Repos))
	for i := range d.Repos {
		out[i] = &d.Repos[i]
	}
	return out
}
