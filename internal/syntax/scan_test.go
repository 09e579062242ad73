package syntax

import (
	"testing"

	"rxguard/internal/source"
	"rxguard/internal/token"
)

func parseSrc(t *testing.T, src string) *Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	return Parse(fs.Get(id))
}

func findCall(t *testing.T, tree *Tree, method string) *CallSite {
	t.Helper()
	for _, c := range tree.Calls() {
		if c.Method == method {
			return c
		}
	}
	t.Fatalf("no %s call found", method)
	return nil
}

func TestScanSimpleCall(t *testing.T) {
	tree := parseSrc(t, `var d = stream.Subscribe(x => Use(x), () => Done());`)
	call := findCall(t, tree, "Subscribe")

	if call.Receiver != "stream" {
		t.Fatalf("receiver = %q", call.Receiver)
	}
	if len(call.Args) != 2 {
		t.Fatalf("arg count = %d", len(call.Args))
	}
	if len(call.Seps) != 1 {
		t.Fatalf("separator count = %d", len(call.Seps))
	}
	if call.Args[0].Text != "x => Use(x)" {
		t.Fatalf("arg 0 text = %q", call.Args[0].Text)
	}
	if call.Args[0].LambdaArity != 1 {
		t.Fatalf("arg 0 arity = %d", call.Args[0].LambdaArity)
	}
	if call.Args[1].Text != "() => Done()" {
		t.Fatalf("arg 1 text = %q", call.Args[1].Text)
	}
	if call.Args[1].LambdaArity != 0 {
		t.Fatalf("arg 1 arity = %d", call.Args[1].LambdaArity)
	}
}

func TestScanNamedArguments(t *testing.T) {
	tree := parseSrc(t, `source.Subscribe(onNext: x => Handle(x));`)
	call := findCall(t, tree, "Subscribe")

	if !call.NamedConvention() {
		t.Fatalf("named convention not detected")
	}
	if call.Args[0].Name != "onNext" {
		t.Fatalf("arg name = %q", call.Args[0].Name)
	}
	if call.Args[0].LambdaArity != 1 {
		t.Fatalf("named lambda arity = %d", call.Args[0].LambdaArity)
	}
	if call.Args[0].Text != "onNext: x => Handle(x)" {
		t.Fatalf("arg text = %q", call.Args[0].Text)
	}
}

func TestScanExplicitGenericCall(t *testing.T) {
	tree := parseSrc(t, `obs.Subscribe<System.Int32>(x => Use(x));`)
	call := findCall(t, tree, "Subscribe")
	if call.TypeArgs != 1 {
		t.Fatalf("type args = %d", call.TypeArgs)
	}
}

func TestScanLessThanIsNotGenerics(t *testing.T) {
	tree := parseSrc(t, `var ok = a < b; Use(ok);`)
	for _, c := range tree.Calls() {
		if c.Method == "a" || c.Method == "b" {
			t.Fatalf("comparison misread as call: %q", c.Method)
		}
	}
	findCall(t, tree, "Use")
}

func TestScanNestedCalls(t *testing.T) {
	tree := parseSrc(t, `Outer(Inner(1), 2);`)
	findCall(t, tree, "Outer")
	findCall(t, tree, "Inner")

	outer := findCall(t, tree, "Outer")
	if len(outer.Args) != 2 {
		t.Fatalf("outer arg count = %d", len(outer.Args))
	}
	if outer.Args[0].Text != "Inner(1)" {
		t.Fatalf("outer arg 0 = %q", outer.Args[0].Text)
	}
}

func TestScanKeywordsAreNotCalls(t *testing.T) {
	tree := parseSrc(t, `if (x) { while (y) { Work(); } }`)
	for _, c := range tree.Calls() {
		if c.Method == "if" || c.Method == "while" {
			t.Fatalf("keyword misread as call: %q", c.Method)
		}
	}
	findCall(t, tree, "Work")
}

func TestScanMultilineCallFormatting(t *testing.T) {
	src := "stream.Subscribe(\n    x => Use(x),\n    () => Done());"
	tree := parseSrc(t, src)
	call := findCall(t, tree, "Subscribe")

	if len(call.Args) != 2 {
		t.Fatalf("arg count = %d", len(call.Args))
	}
	// The second argument's leading run mirrors its separator's trailing run.
	lead := call.Args[1].Leading
	trail := call.Seps[0].Trailing
	if len(lead) != len(trail) {
		t.Fatalf("leading/trailing mismatch: %v vs %v", lead, trail)
	}
	if got := token.Render(lead); got != "\n    " {
		t.Fatalf("arg 1 leading = %q", got)
	}
}

func TestScanTrailingTriviaBeforeSeparator(t *testing.T) {
	tree := parseSrc(t, `stream.Subscribe(x => Use(x) /* keep me */, () => Done());`)
	call := findCall(t, tree, "Subscribe")

	if got := token.Render(call.Args[0].Trailing); got != " /* keep me */" {
		t.Fatalf("arg 0 trailing = %q", got)
	}
	if len(call.Args[1].Trailing) != 0 {
		t.Fatalf("last argument has trailing trivia: %v", call.Args[1].Trailing)
	}
	// The argument text itself stays free of the surrounding formatting.
	if call.Args[0].Text != "x => Use(x)" {
		t.Fatalf("arg 0 text = %q", call.Args[0].Text)
	}
}

func TestScanAttribute(t *testing.T) {
	tree := parseSrc(t, `[TechDebt("rework cache", "2031-01-01")]
class Worker { }`)
	attrs := tree.Attributes()
	if len(attrs) != 1 {
		t.Fatalf("attribute count = %d", len(attrs))
	}
	attr := attrs[0]
	if attr.Name != "TechDebt" {
		t.Fatalf("attribute name = %q", attr.Name)
	}
	if len(attr.Args) != 2 {
		t.Fatalf("attribute arg count = %d", len(attr.Args))
	}
	reason, ok := attr.Args[0].StringValue()
	if !ok || reason != "rework cache" {
		t.Fatalf("reason = %q ok=%v", reason, ok)
	}
}

func TestScanAttributeNonConstantArg(t *testing.T) {
	tree := parseSrc(t, `[TechDebt(Reasons.Cache, "2031-01-01")]
class Worker { }`)
	attrs := tree.Attributes()
	if len(attrs) != 1 {
		t.Fatalf("attribute count = %d", len(attrs))
	}
	if attrs[0].Args[0].Kind != AttrArgOther {
		t.Fatalf("computed argument classified as %v", attrs[0].Args[0].Kind)
	}
}

func TestScanIndexingIsNotAttribute(t *testing.T) {
	tree := parseSrc(t, `var v = xs[0];`)
	if len(tree.Attributes()) != 0 {
		t.Fatalf("indexing misread as attribute")
	}
}
