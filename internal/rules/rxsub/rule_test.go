package rxsub

import (
	"testing"

	"rxguard/internal/diag"
	"rxguard/internal/sym"
)

func TestAnalyzeFindingShape(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `stream.Subscribe(x => Use(x));`)

	finding := analyzeOne(t, tree, catalog)

	if finding.Code != diag.RxsMissingErrorHandler {
		t.Fatalf("code = %v", finding.Code)
	}
	if finding.Severity != diag.SevWarning {
		t.Fatalf("severity = %v", finding.Severity)
	}
	call := tree.Calls()[0]
	if finding.Primary != call.Span {
		t.Fatalf("primary span = %v, want call span %v", finding.Primary, call.Span)
	}
	if len(finding.Fixes) != 1 {
		t.Fatalf("fix count = %d", len(finding.Fixes))
	}
	fix := finding.Fixes[0]
	if fix.Title != FixTitle || !fix.IsPreferred {
		t.Fatalf("fix = %+v", fix)
	}
	if fix.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Fatalf("applicability = %v", fix.Applicability)
	}
	if fix.ID != FixID(call.Span) {
		t.Fatalf("fix id = %q", fix.ID)
	}
}

func TestAnalyzeIgnoresHandledAndForeignCalls(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `
stream.Subscribe(x => Use(x), ex => Log(ex));
list.Add(42);
other.Subscribe(x => Use(x), ex => Log(ex), () => Done());
`)
	bag := diag.NewBag(0)
	Analyze(tree, catalog, diag.SevWarning, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("handled calls flagged: %+v", bag.Items())
	}
}

func TestAnalyzeSeverityIsCallerChosen(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `stream.Subscribe(x => Use(x));`)
	bag := diag.NewBag(0)
	Analyze(tree, catalog, diag.SevError, diag.BagReporter{Bag: bag})
	if items := bag.Items(); len(items) != 1 || items[0].Severity != diag.SevError {
		t.Fatalf("items = %+v", items)
	}
}
