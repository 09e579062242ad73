// Package driver orchestrates analysis runs: loading files, parsing them,
// running the enabled rules, and wiring findings to the fix engine.
package driver

import (
	"time"

	"rxguard/internal/diag"
	"rxguard/internal/fix"
	"rxguard/internal/rules"
	"rxguard/internal/rules/rxsub"
	"rxguard/internal/rules/techdebt"
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
)

// Options carries everything a run is configured with.
type Options struct {
	// Catalog resolves call sites to declared signatures. Nil means the
	// built-in catalog.
	Catalog *sym.Catalog

	// Rules is the rule table for the run. Nil means the default table.
	Rules *rules.Set

	// MaxDiagnostics caps the per-file bag; 0 means unlimited.
	MaxDiagnostics int

	// Now anchors date-based rules; the zero value means wall-clock time.
	Now time.Time

	// Jobs bounds directory-walk parallelism; 0 means GOMAXPROCS.
	Jobs int
}

func (o Options) catalog() *sym.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return sym.DefaultCatalog()
}

func (o Options) ruleSet() *rules.Set {
	if o.Rules != nil {
		return o.Rules
	}
	return rules.DefaultSet()
}

func (o Options) now() time.Time {
	if !o.Now.IsZero() {
		return o.Now
	}
	return time.Now()
}

// AnalyzeFile runs every enabled rule over one parsed document and returns
// the sorted, deduplicated bag of findings.
func AnalyzeFile(tree *syntax.Tree, opts Options) *diag.Bag {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	set := opts.ruleSet()

	if set.EnabledFor(diag.RxsMissingErrorHandler) {
		rxsub.Analyze(tree, opts.catalog(), set.SeverityFor(diag.RxsMissingErrorHandler), reporter)
	}
	if set.EnabledFor(diag.DbtExpired) {
		techdebt.Analyze(tree, set.SeverityFor(diag.DbtExpired), opts.now(), reporter)
	}

	bag.Sort()
	return bag
}

// Synthesizers returns the fix-synthesizer table for the enabled rules,
// closed over the run's catalog.
func Synthesizers(opts Options) fix.Synthesizers {
	catalog := opts.catalog()
	return fix.Synthesizers{
		diag.RxsMissingErrorHandler: func(finding diag.Diagnostic, tree *syntax.Tree) (diag.TextEdit, error) {
			patch, err := rxsub.SynthesizePatch(finding, tree, catalog)
			if err != nil {
				return diag.TextEdit{}, err
			}
			return patch.Edit(), nil
		},
	}
}
