package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rxguard/internal/config"
	"rxguard/internal/driver"
	"rxguard/internal/rules"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on", "always":
		return colorModeOn, nil
	case "off", "never":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// resolveColor decides whether output is colorized and syncs the fatih/color
// global, which the version banner reads implicitly.
func resolveColor(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := readColorMode(value)
	if err != nil {
		return false, err
	}
	var enabled bool
	switch mode {
	case colorModeOn:
		enabled = true
	case colorModeOff:
		enabled = false
	default:
		enabled = isTerminal(os.Stdout)
	}
	color.NoColor = !enabled
	return enabled, nil
}

// loadRunConfig assembles driver options from the manifest (explicit via
// --config, or discovered next to the target) and the persistent flags.
func loadRunConfig(cmd *cobra.Command, targetPath string) (*config.Config, driver.Options, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, driver.Options{}, err
	}

	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, driver.Options{}, err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		dir := targetPath
		if info, statErr := os.Stat(targetPath); statErr == nil && !info.IsDir() {
			dir = filepath.Dir(targetPath)
		}
		cfg, err = config.Discover(dir)
	}
	if err != nil {
		return nil, driver.Options{}, err
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics}
	if cfg != nil {
		set := rules.DefaultSet()
		if err := cfg.ApplyRules(set); err != nil {
			return nil, driver.Options{}, err
		}
		opts.Rules = set
		catalog, err := cfg.LoadCatalog()
		if err != nil {
			return nil, driver.Options{}, err
		}
		opts.Catalog = catalog
	}
	return cfg, opts, nil
}
