package config

import (
	"os"
	"path/filepath"
	"testing"

	"rxguard/internal/diag"
	"rxguard/internal/rules"
	"rxguard/internal/source"
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadAppliesRuleOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[rules.rx-subscribe-error-handling]
severity = "error"

[rules.tech-debt-expiry]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	set := rules.DefaultSet()
	if err := cfg.ApplyRules(set); err != nil {
		t.Fatalf("ApplyRules: %v", err)
	}
	if set.SeverityFor(diag.RxsMissingErrorHandler) != diag.SevError {
		t.Fatalf("severity override not applied")
	}
	if set.EnabledFor(diag.DbtExpired) {
		t.Fatalf("disable override not applied")
	}
}

func TestApplyRulesUnknownRule(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[rules.no-such-rule]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.ApplyRules(rules.DefaultSet()); err == nil {
		t.Fatalf("unknown rule accepted")
	}
}

func TestDiscoverMissingManifest(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg != nil {
		t.Fatalf("phantom manifest: %+v", cfg)
	}
}

func TestLoadCatalogMergesOverBuiltin(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "extra.toml")
	if err := os.WriteFile(catalogPath, []byte(`
[[signature]]
owner = "App.BusExtensions"
method = "Listen"
extension = true
typeparams = 1

[signature.returns]
name = "System.IDisposable"
kind = "interface"

[[signature.params]]
name = "onMessage"
type = "System.Action"
typeargs = ["T"]
callback = true
`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	path := writeManifest(t, dir, `catalog = "extra.toml"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	fs := source.NewFileSet()
	resolveFirst := func(name, src string) (*sym.Signature, bool) {
		id := fs.AddVirtual(name, []byte(src))
		calls := syntax.Parse(fs.Get(id)).Calls()
		if len(calls) == 0 {
			t.Fatalf("%s: no calls parsed", name)
		}
		return catalog.Resolve(calls[0])
	}

	sig, ok := resolveFirst("bus.cs", "bus.Listen(handler);")
	if !ok {
		t.Fatalf("merged signature not resolvable")
	}
	if sig.Owner.Name != "App.BusExtensions" {
		t.Fatalf("owner = %q", sig.Owner.Name)
	}
	if _, ok := resolveFirst("sub.cs", "stream.Subscribe(x => Use(x));"); !ok {
		t.Fatalf("builtin signatures lost after merge")
	}
}

func TestLoadOutputSection(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[output]
format = "json"
color = "never"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "never" {
		t.Fatalf("output = %+v", cfg.Output)
	}
}
