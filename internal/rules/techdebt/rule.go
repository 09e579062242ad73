// Package techdebt implements the tech-debt attribute rule: a purely
// constant evaluation of [TechDebt("reason", "YYYY-MM-DD")] annotations that
// flags empty reasons, unparseable dates, and deadlines that have passed.
package techdebt

import (
	"fmt"
	"time"

	"rxguard/internal/diag"
	"rxguard/internal/syntax"
)

const (
	attrName   = "TechDebt"
	dateLayout = "2006-01-02"
)

// Analyze checks every TechDebt attribute in the tree. Only attributes
// whose arguments are all literal constants are evaluated; anything with a
// computed argument is skipped silently, since its value cannot be read
// statically.
func Analyze(tree *syntax.Tree, sev diag.Severity, now time.Time, r diag.Reporter) {
	today := now.UTC().Truncate(24 * time.Hour)
	for _, attr := range tree.Attributes() {
		if attr.Name != attrName {
			continue
		}
		if len(attr.Args) != 2 {
			continue
		}
		reason, reasonOK := attr.Args[0].StringValue()
		date, dateOK := attr.Args[1].StringValue()
		if !reasonOK || !dateOK {
			continue // non-constant arguments
		}
		if reason == "" {
			r.Report(diag.New(sev, diag.DbtMalformedReason, attr.Span,
				"TechDebt reason must not be empty"))
			continue
		}
		deadline, err := time.ParseInLocation(dateLayout, date, time.UTC)
		if err != nil {
			r.Report(diag.New(sev, diag.DbtMalformedDate, attr.Span,
				fmt.Sprintf("TechDebt date %q is not in YYYY-MM-DD form", date)))
			continue
		}
		if deadline.Before(today) {
			r.Report(diag.New(sev, diag.DbtExpired, attr.Span,
				fmt.Sprintf("tech debt %q expired on %s", reason, deadline.Format(dateLayout))))
		}
	}
}
