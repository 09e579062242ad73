// Package rules holds the explicit rule registry: a static table mapping
// rule identity to category, default severity, and enabled state. Rules are
// registered here and nowhere else; there is no reflective or
// annotation-driven discovery.
package rules

import (
	"fmt"

	"rxguard/internal/diag"
)

// Info describes one rule: its stable name, reporting category, the
// diagnostic codes it emits, and how its findings are surfaced by default.
type Info struct {
	Name     string
	Category string
	Codes    []diag.Code
	Severity diag.Severity
	Enabled  bool
}

// Set is the rule table an analysis run is configured with.
type Set struct {
	infos  []Info
	byCode map[diag.Code]int
	byName map[string]int
}

// NewSet builds a Set from the given rule table.
func NewSet(infos ...Info) *Set {
	s := &Set{
		infos:  infos,
		byCode: make(map[diag.Code]int),
		byName: make(map[string]int),
	}
	for i, info := range infos {
		s.byName[info.Name] = i
		for _, code := range info.Codes {
			s.byCode[code] = i
		}
	}
	return s
}

// DefaultSet returns the built-in rule table.
func DefaultSet() *Set {
	return NewSet(
		Info{
			Name:     "rx-subscribe-error-handling",
			Category: "reactive",
			Codes:    []diag.Code{diag.RxsMissingErrorHandler},
			Severity: diag.SevWarning,
			Enabled:  true,
		},
		Info{
			Name:     "tech-debt-expiry",
			Category: "maintenance",
			Codes:    []diag.Code{diag.DbtExpired, diag.DbtMalformedReason, diag.DbtMalformedDate},
			Severity: diag.SevWarning,
			Enabled:  true,
		},
	)
}

// Infos returns the table in registration order.
func (s *Set) Infos() []Info {
	return s.infos
}

// EnabledFor reports whether the rule emitting code is enabled.
func (s *Set) EnabledFor(code diag.Code) bool {
	if i, ok := s.byCode[code]; ok {
		return s.infos[i].Enabled
	}
	return false
}

// SeverityFor returns the configured severity for findings of code.
func (s *Set) SeverityFor(code diag.Code) diag.Severity {
	if i, ok := s.byCode[code]; ok {
		return s.infos[i].Severity
	}
	return diag.SevWarning
}

// Override adjusts one rule by name: enabled state and/or severity.
// A nil enabled or empty severity leaves that aspect unchanged.
func (s *Set) Override(name string, enabled *bool, severity string) error {
	i, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("unknown rule %q", name)
	}
	if enabled != nil {
		s.infos[i].Enabled = *enabled
	}
	if severity != "" {
		sev, ok := diag.ParseSeverity(severity)
		if !ok {
			return fmt.Errorf("rule %q: unknown severity %q", name, severity)
		}
		s.infos[i].Severity = sev
	}
	return nil
}
