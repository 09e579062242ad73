package rxsub

import (
	"errors"
	"testing"

	"rxguard/internal/diag"
	"rxguard/internal/source"
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
)

func analyzeOne(t *testing.T, tree *syntax.Tree, catalog *sym.Catalog) diag.Diagnostic {
	t.Helper()
	bag := diag.NewBag(0)
	Analyze(tree, catalog, diag.SevWarning, diag.BagReporter{Bag: bag})
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("finding count = %d, want 1", len(items))
	}
	return items[0]
}

func applyPatch(t *testing.T, tree *syntax.Tree, finding diag.Diagnostic, catalog *sym.Catalog) *syntax.Tree {
	t.Helper()
	patch, err := SynthesizePatch(finding, tree, catalog)
	if err != nil {
		t.Fatalf("SynthesizePatch: %v", err)
	}
	edit := patch.Edit()
	if got := string(tree.File.Content[edit.Span.Start:edit.Span.End]); got != edit.OldText {
		t.Fatalf("old-text guard mismatch: %q vs %q", got, edit.OldText)
	}
	return tree.Replace(edit.Span, edit.NewText)
}

func parseTree(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	return syntax.Parse(fs.Get(id))
}

func TestSynthesizePositionalSingleLine(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `var d = stream.Subscribe(x => Use(x), () => Done());`)

	finding := analyzeOne(t, tree, catalog)
	fixed := applyPatch(t, tree, finding, catalog)

	want := `var d = stream.Subscribe(x => Use(x), ex => { /* TODO: handle error */ }, () => Done());`
	if string(fixed.File.Content) != want {
		t.Fatalf("patched content:\n%s\nwant:\n%s", fixed.File.Content, want)
	}
}

func TestSynthesizeNamedAppendsAtEnd(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `source.Subscribe(onNext: x => Handle(x));`)

	finding := analyzeOne(t, tree, catalog)
	fixed := applyPatch(t, tree, finding, catalog)

	want := `source.Subscribe(onNext: x => Handle(x), onError: ex => { /* TODO: handle error */ });`
	if string(fixed.File.Content) != want {
		t.Fatalf("patched content:\n%s\nwant:\n%s", fixed.File.Content, want)
	}
}

func TestSynthesizeMultilinePreservesIndentation(t *testing.T) {
	catalog := sym.DefaultCatalog()
	src := "stream.Subscribe(\n    x => Use(x),\n    () => Done());"
	tree := parseTree(t, src)

	finding := analyzeOne(t, tree, catalog)
	fixed := applyPatch(t, tree, finding, catalog)

	want := "stream.Subscribe(\n    x => Use(x),\n    ex => { /* TODO: handle error */ },\n    () => Done());"
	if string(fixed.File.Content) != want {
		t.Fatalf("patched content:\n%s\nwant:\n%s", fixed.File.Content, want)
	}
}

func TestSynthesizeNamedMultiline(t *testing.T) {
	catalog := sym.DefaultCatalog()
	src := "source.Subscribe(\n    onNext: x => Handle(x),\n    onCompleted: () => Done());"
	tree := parseTree(t, src)

	finding := analyzeOne(t, tree, catalog)
	fixed := applyPatch(t, tree, finding, catalog)

	want := "source.Subscribe(\n    onNext: x => Handle(x),\n    onCompleted: () => Done(),\n    onError: ex => { /* TODO: handle error */ });"
	if string(fixed.File.Content) != want {
		t.Fatalf("patched content:\n%s\nwant:\n%s", fixed.File.Content, want)
	}
}

func TestSynthesizeKeepsTriviaBeforeSeparator(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "comment before comma",
			src:  `stream.Subscribe(x => Use(x) /* keep me */, () => Done());`,
			want: `stream.Subscribe(x => Use(x) /* keep me */, ex => { /* TODO: handle error */ }, () => Done());`,
		},
		{
			name: "space before comma",
			src:  `stream.Subscribe(x => Use(x) , () => Done());`,
			want: `stream.Subscribe(x => Use(x) , ex => { /* TODO: handle error */ }, () => Done());`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parseTree(t, tt.src)
			finding := analyzeOne(t, tree, catalog)
			fixed := applyPatch(t, tree, finding, catalog)
			if string(fixed.File.Content) != tt.want {
				t.Fatalf("patched content:\n%s\nwant:\n%s", fixed.File.Content, tt.want)
			}
		})
	}
}

func TestSynthesizeIndentationIgnoresStraySpaceBeforeBreak(t *testing.T) {
	catalog := sym.DefaultCatalog()
	src := "stream.Subscribe(x => Use(x), \n    () => Done());"
	tree := parseTree(t, src)

	finding := analyzeOne(t, tree, catalog)
	fixed := applyPatch(t, tree, finding, catalog)

	// The inserted argument copies the sibling's four-space indentation; the
	// original separator keeps its stray space verbatim.
	want := "stream.Subscribe(x => Use(x),\n    ex => { /* TODO: handle error */ }, \n    () => Done());"
	if string(fixed.File.Content) != want {
		t.Fatalf("patched content:\n%s\nwant:\n%s", fixed.File.Content, want)
	}
}

func TestSynthesizedPatchIsIdempotent(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `stream.Subscribe(x => Use(x), () => Done());`)

	finding := analyzeOne(t, tree, catalog)
	fixed := applyPatch(t, tree, finding, catalog)

	bag := diag.NewBag(0)
	Analyze(fixed, catalog, diag.SevWarning, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("patched call still flagged: %+v", bag.Items())
	}
}

func TestSynthesizeStaleFinding(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `stream.Subscribe(x => Use(x));`)
	finding := analyzeOne(t, tree, catalog)

	// The document changes underneath the finding.
	moved := tree.Replace(source.Span{File: tree.File.ID, Start: 0, End: 0}, "// header\n")

	if _, err := SynthesizePatch(finding, moved, catalog); !errors.Is(err, ErrStaleFinding) {
		t.Fatalf("err = %v, want ErrStaleFinding", err)
	}
}

func TestSynthesizeRevalidatesBeforePatching(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `stream.Subscribe(x => Use(x), ex => Log(ex));`)
	call := tree.Calls()[0]

	// A finding pointing at a call that already has a handler: the
	// re-validation step must refuse rather than add a duplicate.
	finding := diag.NewWarning(diag.RxsMissingErrorHandler, call.Span, "synthetic")
	if _, err := SynthesizePatch(finding, tree, catalog); !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("err = %v, want ErrNotApplicable", err)
	}
}

func TestPatchCountInvariantPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("mismatched argument/separator counts did not panic")
		}
	}()
	p := &Patch{
		Args: []syntax.Argument{{Text: "a"}, {Text: "b"}},
		Seps: nil, // two arguments need exactly one separator
	}
	_ = p.Render()
}

func TestAnalyzeSkipsEmptyArgumentList(t *testing.T) {
	catalog := sym.DefaultCatalog()
	tree := parseTree(t, `stream.Subscribe();`)
	bag := diag.NewBag(0)
	Analyze(tree, catalog, diag.SevWarning, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("empty argument list flagged: %+v", bag.Items())
	}
}
