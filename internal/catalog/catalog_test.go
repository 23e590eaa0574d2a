package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func sample() *Registry {
	return NewBuilder(model.CategoryCICD).
		Add("X-001", "First", model.SeverityHigh, 1.5, "first check").
		Add("X-002", "Second", model.SeverityLow, 0.5, "").
		Build()
}

func TestRegistryOrderAndIndex(t *testing.T) {
	r := sample()
	require.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"X-001", "X-002"}, r.IDs())
	assert.Equal(t, 1, r.Position("X-002"))

	d := r.Lookup("X-001")
	assert.Equal(t, model.CategoryCICD, d.Category)
	assert.Equal(t, 1.5, d.Weight)
	assert.True(t, r.Has("X-002"))
	assert.False(t, r.Has("X-003"))
}

func TestChecksReturnsCopy(t *testing.T) {
	r := sample()
	c := r.Checks()
	c[0].Name = "mutated"
	assert.Equal(t, "First", r.Lookup("X-001").Name)
}

func TestLookupUndeclaredPanics(t *testing.T) {
	r := sample()
	assert.Panics(t, func() { r.Lookup("NOPE-001") })
}

func TestBuildRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder(model.CategoryDAST).
			Add("D-1", "a", model.SeverityLow, 1, "").
			Add("D-1", "b", model.SeverityLow, 1, "").
			Build()
	})
}

func TestBuildRejectsNonPositiveWeight(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder(model.CategoryDAST).Add("D-1", "a", model.SeverityLow, 0, "").Build()
	})
}
