package rxsub

import (
	"fmt"

	"rxguard/internal/diag"
	"rxguard/internal/source"
	"rxguard/internal/sym"
	"rxguard/internal/syntax"
)

// FixTitle is the user-facing title of the synthesized correction.
const FixTitle = "Add onError handler"

// FixID returns the stable identifier for the fix anchored at the given
// call span. The same call site yields the same ID across runs.
func FixID(sp source.Span) string {
	return fmt.Sprintf("%s-%s", diag.RxsMissingErrorHandler.ID(), sp.String())
}

// Analyze walks every call site in the tree, applies the signature filter
// and the error-handler predicate, and reports a finding for each Subscribe
// call that installs no error callback. The finding carries a declared fix;
// its edits are synthesized later, against whatever the tree looks like at
// apply time.
func Analyze(tree *syntax.Tree, catalog *sym.Catalog, sev diag.Severity, r diag.Reporter) {
	for _, call := range tree.Calls() {
		sig, ok := MatchSignature(call, catalog)
		if !ok {
			continue
		}
		if HasErrorHandler(sig) {
			continue
		}
		if len(call.Args) == 0 {
			// Nothing to anchor an insertion on; the catalog's
			// parameterless overload is outside the rule's contract.
			continue
		}
		d := diag.New(sev, diag.RxsMissingErrorHandler, call.Span,
			fmt.Sprintf("%s call has no onError handler; subscription errors will go unobserved", call.Method))
		d = d.WithNote(call.MethodSpan, fmt.Sprintf("resolves to %s.%s with %d parameter(s)", sig.Owner.Name, sig.Method, len(sig.Params)))
		d = d.WithFix(diag.Fix{
			ID:            FixID(call.Span),
			Title:         FixTitle,
			Kind:          diag.FixKindQuickFix,
			Applicability: diag.FixApplicabilityAlwaysSafe,
			IsPreferred:   true,
		})
		r.Report(d)
	}
}
