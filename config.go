package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the package directory when no explicit
// config path is given.
const DefaultConfigFile = ".testablegen.yaml"

var ErrInvalidConfig = errors.New("invalid config")

// Scope names who consumes the generated accessors.
type Scope string

const (
	// ScopeExternal accessors are used from the <pkg>_test package.
	ScopeExternal Scope = "external"
	// ScopePackage accessors are used from tests inside the package.
	ScopePackage Scope = "package"
)

// UnreachablePolicy controls how members that cannot be exposed are reported.
type UnreachablePolicy string

const (
	UnreachableIgnore UnreachablePolicy = "ignore"
	UnreachableWarn   UnreachablePolicy = "warn"
	UnreachableError  UnreachablePolicy = "error"
)

// Config holds generator settings, read from YAML and overridden by flags.
type Config struct {
	Output      string            `yaml:"output" default:"testable_generated_test.go"`
	Prefix      string            `yaml:"prefix" default:"Testable"`
	Scope       Scope             `yaml:"scope" default:"external"`
	Unreachable UnreachablePolicy `yaml:"unreachable" default:"warn"`
	TagKey      string            `yaml:"tag" default:"testable"`
	Directive   string            `yaml:"directive" default:"testable:generate"`
	Verify      bool              `yaml:"verify"`
}

// NewConfig returns a Config with all defaults applied.
func NewConfig() *Config {
	c := &Config{}
	defaults.MustSet(c)
	return c
}

// LoadConfig reads the YAML file at path on top of the defaults. If path is
// empty, DefaultConfigFile in dir is used when it exists. The result is not
// validated; flags may still override it.
func LoadConfig(path, dir string) (*Config, error) {
	c := NewConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	// fields cleared by the file fall back to their defaults
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	return c, nil
}

// Validate checks enum-like settings and names.
func (c *Config) Validate() error {
	switch c.Scope {
	case ScopeExternal, ScopePackage:
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidConfig, c.Scope)
	}

	switch c.Unreachable {
	case UnreachableIgnore, UnreachableWarn, UnreachableError:
	default:
		return fmt.Errorf("%w: unknown unreachable policy %q", ErrInvalidConfig, c.Unreachable)
	}

	if c.Prefix == "" || !isExportedName(c.Prefix) {
		return fmt.Errorf("%w: prefix %q must be an exported identifier", ErrInvalidConfig, c.Prefix)
	}

	if !strings.HasSuffix(c.Output, ".go") {
		return fmt.Errorf("%w: output %q must be a .go file", ErrInvalidConfig, c.Output)
	}

	if c.TagKey == "" || c.Directive == "" {
		return fmt.Errorf("%w: tag and directive must not be empty", ErrInvalidConfig)
	}
	return nil
}
