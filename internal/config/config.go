// Package config loads rxguard.toml: per-rule overrides, the signature
// catalog location, and output defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"rxguard/internal/rules"
	"rxguard/internal/sym"
)

// FileName is the manifest rxguard looks for when no --config is given.
const FileName = "rxguard.toml"

// RuleConfig overrides one rule's enabled state and severity.
// Nil / empty fields leave the default untouched.
type RuleConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

// OutputConfig holds output defaults overridable from the command line.
type OutputConfig struct {
	Format string `toml:"format"` // "pretty" or "json"
	Color  string `toml:"color"`  // "auto", "always", "never"
}

// Config is the parsed manifest.
type Config struct {
	// Catalog points at a TOML signature catalog merged over the built-in
	// one. Relative paths resolve against the manifest's directory.
	Catalog string `toml:"catalog"`

	Rules  map[string]RuleConfig `toml:"rules"`
	Output OutputConfig          `toml:"output"`

	dir string
}

// Load parses the manifest at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Discover looks for the manifest in dir and returns nil without error when
// there is none.
func Discover(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Load(path)
}

// ApplyRules overlays the manifest's per-rule settings on the given set.
func (c *Config) ApplyRules(set *rules.Set) error {
	for name, rc := range c.Rules {
		if err := set.Override(name, rc.Enabled, rc.Severity); err != nil {
			return err
		}
	}
	return nil
}

// LoadCatalog returns the built-in catalog merged with the manifest's
// catalog file, when one is configured.
func (c *Config) LoadCatalog() (*sym.Catalog, error) {
	catalog := sym.DefaultCatalog()
	if c == nil || c.Catalog == "" {
		return catalog, nil
	}
	path := c.Catalog
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	extra, err := sym.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	catalog.Merge(extra)
	return catalog, nil
}
