package rxsub

import (
	"testing"

	"rxguard/internal/source"
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
)

func parseFirst(t *testing.T, src, method string) (*syntax.Tree, *syntax.CallSite) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	tree := syntax.Parse(fs.Get(id))
	for _, c := range tree.Calls() {
		if c.Method == method {
			return tree, c
		}
	}
	t.Fatalf("no %s call in %q", method, src)
	return nil, nil
}

// subscribeLike builds a Subscribe-shaped signature and lets each test break
// exactly one of the filter's conditions.
func subscribeLike(mutate func(*sym.Signature)) *sym.Catalog {
	sig := &sym.Signature{
		Owner:      sym.Class("System.ObservableExtensions"),
		Method:     "Subscribe",
		TypeParams: 1,
		Extension:  true,
		Params: []sym.Param{
			{Name: "onNext", Type: sym.Action(sym.TypeParam("T")), Callback: true},
		},
		Returns: sym.Interface("System.IDisposable"),
	}
	if mutate != nil {
		mutate(sig)
	}
	return sym.NewCatalog(sig)
}

func TestMatchSignatureAccepts(t *testing.T) {
	_, call := parseFirst(t, `s.Subscribe(x => Use(x));`, "Subscribe")
	if _, ok := MatchSignature(call, subscribeLike(nil)); !ok {
		t.Fatalf("conforming signature rejected")
	}
}

func TestMatchSignatureRejectsEachBrokenCondition(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sym.Signature)
	}{
		{"not an extension method", func(s *sym.Signature) { s.Extension = false }},
		{"not generic", func(s *sym.Signature) { s.TypeParams = 0 }},
		{"wrong return type", func(s *sym.Signature) { s.Returns = sym.Interface("System.IAsyncDisposable") }},
		{"return kind is class", func(s *sym.Signature) { s.Returns = sym.Class("System.IDisposable") }},
		{"wrong owner", func(s *sym.Signature) { s.Owner = sym.Class("App.ObservableExtensions") }},
	}
	for _, tt := range tests {
		_, call := parseFirst(t, `s.Subscribe(x => Use(x));`, "Subscribe")
		if _, ok := MatchSignature(call, subscribeLike(tt.mutate)); ok {
			t.Errorf("%s: signature matched", tt.name)
		}
	}
}

func TestMatchSignatureRejectsOtherMethodName(t *testing.T) {
	catalog := subscribeLike(nil)
	// Same shape, different name.
	catalog.Add(&sym.Signature{
		Owner:      sym.Class("System.ObservableExtensions"),
		Method:     "Observe",
		TypeParams: 1,
		Extension:  true,
		Params:     []sym.Param{{Name: "onNext", Type: sym.Action(sym.TypeParam("T")), Callback: true}},
		Returns:    sym.Interface("System.IDisposable"),
	})
	_, call := parseFirst(t, `s.Observe(x => Use(x));`, "Observe")
	if _, ok := MatchSignature(call, catalog); ok {
		t.Fatalf("non-Subscribe method matched")
	}
}

func TestMatchSignatureUnresolvedCall(t *testing.T) {
	_, call := parseFirst(t, `s.Subscribe(1, 2, 3, 4);`, "Subscribe")
	if _, ok := MatchSignature(call, sym.DefaultCatalog()); ok {
		t.Fatalf("call with no overload resolved")
	}
}
