// Package rxsub implements the reactive-subscription rule: it flags
// Subscribe calls that install no error handler and synthesizes the patch
// that adds one while preserving the call's formatting.
package rxsub

import (
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
)

const (
	methodName     = "Subscribe"
	ownerTypeName  = "System.ObservableExtensions"
	returnTypeName = "System.IDisposable"

	errorParamName    = "onError"
	callbackTypeName  = "System.Action"
	exceptionTypeName = "System.Exception"
)

var (
	ownerType  = sym.Class(ownerTypeName)
	returnType = sym.Interface(returnTypeName)
)

// MatchSignature resolves a call site against the catalog and applies the
// signature filter. All four conditions must hold for the rule to consider
// the call at all:
//
//   - the method is named Subscribe
//   - it is declared as an extension method
//   - it is generic in its own right
//   - it returns the System.IDisposable interface and is owned by
//     System.ObservableExtensions
//
// Comparisons go through declaration identity, never through textual
// spelling, so aliased or differently qualified call sites match the same
// way. The filter is a pure function of the resolved signature.
func MatchSignature(call *syntax.CallSite, catalog *sym.Catalog) (*sym.Signature, bool) {
	if call.Method != methodName {
		return nil, false
	}
	sig, ok := catalog.Resolve(call)
	if !ok {
		return nil, false
	}
	if !sig.Extension || !sig.Generic() {
		return nil, false
	}
	if !sig.Returns.SameDeclaration(returnType) {
		return nil, false
	}
	if !sig.Owner.SameDeclaration(ownerType) {
		return nil, false
	}
	return sig, true
}
