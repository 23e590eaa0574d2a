// Package config holds the scan settings read from an optional YAML file and
// overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/profile"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

type Config struct {
	OutDir   string   `yaml:"outDir" validate:"required"`
	MinScore float64  `yaml:"minScore" validate:"gte=0,lte=100"`
	Profile  string   `yaml:"profile" validate:"oneof=standard security delivery compliance"`
	Workers  int      `yaml:"workers" validate:"gte=1,lte=64"`
	Formats  []string `yaml:"formats" validate:"min=1,dive,oneof=json markdown csv"`

	CI      bool   `yaml:"ci"`
	Redact  bool   `yaml:"redact"`
	Metrics bool   `yaml:"metrics"`
	Compare string `yaml:"compare,omitempty"`
	// History disables the on-disk history index when false.
	History bool `yaml:"history"`
	LastN   int  `yaml:"lastN" validate:"gte=1,lte=200"`

	Metadata Metadata `yaml:"metadata"`
	Log      Log      `yaml:"log"`
}

type Metadata struct {
	OrgName     string `yaml:"orgName,omitempty"`
	CustomerID  string `yaml:"customerId,omitempty"`
	Environment string `yaml:"environment,omitempty" validate:"omitempty,oneof=prod staging dev test"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func Default() Config {
	return Config{
		OutDir:   "./out",
		MinScore: 90,
		Profile:  string(profile.Standard),
		Workers:  4,
		Formats:  []string{FormatJSON, FormatMarkdown},
		History:  true,
		LastN:    10,
		Log:      Log{Level: "info", Format: "text"},
	}
}

// Load overlays the YAML file at path on the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate lower-cases the profile name and reports every invalid field.
func (c *Config) Validate() error {
	c.Profile = strings.ToLower(strings.TrimSpace(c.Profile))
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("%s: %q must satisfy %s %s", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %w", ErrInvalid, utilerrors.NewAggregate(errs))
}

// Wants reports whether format f is enabled.
func (c Config) Wants(f string) bool {
	for _, x := range c.Formats {
		if x == f {
			return true
		}
	}
	return false
}
