package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "./out", cfg.OutDir)
	assert.Equal(t, 90.0, cfg.MinScore)
	assert.Equal(t, "standard", cfg.Profile)
	assert.True(t, cfg.Wants(FormatJSON))
	assert.False(t, cfg.Wants(FormatCSV))
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scan.yaml")
	require.NoError(t, os.WriteFile(p, []byte("minScore: 70\nprofile: Security\nformats: [json, csv]\nmetadata:\n  orgName: acme\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 70.0, cfg.MinScore)
	assert.Equal(t, "security", cfg.Profile)
	assert.Equal(t, "acme", cfg.Metadata.OrgName)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Wants(FormatCSV))
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"empty out dir", func(c *Config) { c.OutDir = "" }, "OutDir"},
		{"min score above 100", func(c *Config) { c.MinScore = 101 }, "MinScore"},
		{"unknown profile", func(c *Config) { c.Profile = "enterprise" }, "Profile"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "Workers"},
		{"too many workers", func(c *Config) { c.Workers = 65 }, "Workers"},
		{"unknown format", func(c *Config) { c.Formats = []string{"html"} }, "Formats"},
		{"no formats", func(c *Config) { c.Formats = nil }, "Formats"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "Level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	cfg := Default()
	cfg.OutDir = ""
	cfg.Workers = 0
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "OutDir")
	assert.Contains(t, err.Error(), "Workers")
}
