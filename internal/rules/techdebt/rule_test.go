package techdebt

import (
	"testing"
	"time"

	"rxguard/internal/diag"
	"rxguard/internal/source"
	"rxguard/internal/syntax"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func analyzeSrc(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	tree := syntax.Parse(fs.Get(id))
	bag := diag.NewBag(0)
	Analyze(tree, diag.SevWarning, now, diag.BagReporter{Bag: bag})
	return bag.Items()
}

func TestTechDebtExpired(t *testing.T) {
	items := analyzeSrc(t, `[TechDebt("drop legacy path", "2025-11-30")]
class Legacy { }`)
	if len(items) != 1 {
		t.Fatalf("finding count = %d", len(items))
	}
	if items[0].Code != diag.DbtExpired {
		t.Fatalf("code = %v", items[0].Code)
	}
}

func TestTechDebtNotYetDue(t *testing.T) {
	items := analyzeSrc(t, `[TechDebt("drop legacy path", "2030-01-01")]
class Legacy { }`)
	if len(items) != 0 {
		t.Fatalf("future deadline flagged: %+v", items)
	}
}

func TestTechDebtMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			"empty reason",
			`[TechDebt("", "2030-01-01")] class A { }`,
			diag.DbtMalformedReason,
		},
		{
			"bad date",
			`[TechDebt("cleanup", "next sprint")] class A { }`,
			diag.DbtMalformedDate,
		},
	}
	for _, tt := range tests {
		items := analyzeSrc(t, tt.src)
		if len(items) != 1 {
			t.Fatalf("%s: finding count = %d", tt.name, len(items))
		}
		if items[0].Code != tt.code {
			t.Fatalf("%s: code = %v, want %v", tt.name, items[0].Code, tt.code)
		}
	}
}

func TestTechDebtSkipsNonConstantArguments(t *testing.T) {
	items := analyzeSrc(t, `[TechDebt(Reasons.Cleanup, Dates.Q1)] class A { }`)
	if len(items) != 0 {
		t.Fatalf("non-constant arguments evaluated: %+v", items)
	}
}

func TestTechDebtIgnoresOtherAttributes(t *testing.T) {
	items := analyzeSrc(t, `[Obsolete("use NewThing")] class A { }`)
	if len(items) != 0 {
		t.Fatalf("foreign attribute flagged: %+v", items)
	}
}
