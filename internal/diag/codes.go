package diag

import "fmt"

// Code is a compact numeric identifier with a stable string form.
// Rule codes live in fixed ranges so IDs stay stable as rules are added:
//
//	1000-1999  RXS  reactive subscription rules
//	2000-2999  DBT  technical-debt annotation rules
//	4000-4999  IO   file loading
type Code uint16

const (
	UnknownCode Code = 0

	// Reactive subscription rules.
	RxsInfo                Code = 1000
	RxsMissingErrorHandler Code = 1001

	// Technical-debt annotation rules.
	DbtInfo            Code = 2000
	DbtExpired         Code = 2001
	DbtMalformedReason Code = 2002
	DbtMalformedDate   Code = 2003

	// I/O.
	IOLoadFileError Code = 4000
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown",
	RxsInfo:                "Reactive subscription information",
	RxsMissingErrorHandler: "Subscription without an error handler",
	DbtInfo:                "Technical debt information",
	DbtExpired:             "Technical debt past its expiry date",
	DbtMalformedReason:     "Technical debt annotation without a reason",
	DbtMalformedDate:       "Technical debt annotation with an invalid date",
	IOLoadFileError:        "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("RXS%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DBT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
