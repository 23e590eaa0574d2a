// Package catalog holds the immutable check registries each domain evaluator
// is built on: an ordered descriptor list plus an id index, constructed once.
package catalog

import (
	"fmt"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

// Registry is a domain's ordered, read-only list of checks.
type Registry struct {
	category model.Category
	checks   []model.CheckDescriptor
	index    map[string]int
}

// Builder accumulates descriptors for one category.
type Builder struct {
	category model.Category
	checks   []model.CheckDescriptor
}

// NewBuilder starts a registry whose checks all belong to category c.
func NewBuilder(c model.Category) *Builder {
	return &Builder{category: c}
}

// Add appends a check; order of Add calls is the catalog order.
func (b *Builder) Add(id, name string, sev model.Severity, weight float64, description string) *Builder {
	b.checks = append(b.checks, model.CheckDescriptor{
		ID:          id,
		Name:        name,
		Category:    b.category,
		Severity:    sev,
		Weight:      weight,
		Description: description,
	})
	return b
}

// Build freezes the catalog. Duplicate ids and non-positive weights are
// programming errors and panic.
func (b *Builder) Build() *Registry {
	r := &Registry{
		category: b.category,
		checks:   make([]model.CheckDescriptor, len(b.checks)),
		index:    make(map[string]int, len(b.checks)),
	}
	copy(r.checks, b.checks)
	for i, c := range r.checks {
		if _, dup := r.index[c.ID]; dup {
			panic(fmt.Sprintf("catalog %s: duplicate check id %q", b.category, c.ID))
		}
		if c.Weight <= 0 {
			panic(fmt.Sprintf("catalog %s: check %q has non-positive weight %v", b.category, c.ID, c.Weight))
		}
		r.index[c.ID] = i
	}
	return r
}

// Category is the category every check of the registry belongs to.
func (r *Registry) Category() model.Category { return r.category }

// Len is the number of declared checks.
func (r *Registry) Len() int { return len(r.checks) }

// Checks returns a copy of the descriptors in catalog order.
func (r *Registry) Checks() []model.CheckDescriptor {
	out := make([]model.CheckDescriptor, len(r.checks))
	copy(out, r.checks)
	return out
}

// IDs returns the check ids in catalog order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.checks))
	for i, c := range r.checks {
		out[i] = c.ID
	}
	return out
}

// Has reports whether id is declared.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Position returns the catalog index of id. It panics for undeclared ids.
func (r *Registry) Position(id string) int {
	i, ok := r.index[id]
	if !ok {
		panic(fmt.Sprintf("catalog %s: undeclared check id %q", r.category, id))
	}
	return i
}

// Lookup returns the descriptor for id. It panics for undeclared ids.
func (r *Registry) Lookup(id string) model.CheckDescriptor {
	return r.checks[r.Position(id)]
}
