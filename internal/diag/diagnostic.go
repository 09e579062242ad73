// Package diag defines the diagnostic model shared by every analysis phase:
// deterministic, serialisable records of findings, plus structured fix
// suggestions the fix engine can materialise and apply. The package performs
// no IO and no formatting; rendering lives in internal/diagfmt and fix
// application in internal/fix.
package diag

import "rxguard/internal/source"

// Note is a secondary span/message pair adding context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixKind coarsely classifies a fix for UI listings.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactorRewrite
)

// FixApplicability states how safely a fix can be applied unattended.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TextEdit is one span-scoped replacement. OldText is an optional guard:
// when non-empty the engine verifies the span still holds exactly that text
// before applying, which is how stale edits are caught.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a possible automated correction, data-only so it can be listed,
// cached, and applied deterministically.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

// Diagnostic is the central finding record. Primary is the canonical span of
// the issue; Notes and Fixes are optional.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// New constructs a diagnostic without notes or fixes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// WithNote returns a copy of the diagnostic with an extra note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix returns a copy of the diagnostic with an extra fix appended.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
