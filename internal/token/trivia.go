package token

import "rxguard/internal/source"

// TriviaKind classifies non-semantic formatting attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota // run of spaces and tabs
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is one formatting run: whitespace, a newline run, or a comment.
// Patches must regenerate trivia faithfully, so Text always carries the
// verbatim source bytes.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// HasNewline reports whether any trivia in the run is a newline.
func HasNewline(run []Trivia) bool {
	for _, tv := range run {
		if tv.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// SpaceRun returns the whitespace that sets an element's indentation: the
// text of the space trivia after the last newline in the run, or of the last
// space trivia when the run has no newline. A stray space in front of a line
// break never counts as indentation.
func SpaceRun(run []Trivia) (string, bool) {
	text, ok := "", false
	for _, tv := range run {
		switch tv.Kind {
		case TriviaNewline:
			text, ok = "", false
		case TriviaSpace:
			text, ok = tv.Text, true
		}
	}
	return text, ok
}

// Render concatenates the verbatim text of a trivia run.
func Render(run []Trivia) string {
	if len(run) == 0 {
		return ""
	}
	var out []byte
	for _, tv := range run {
		out = append(out, tv.Text...)
	}
	return string(out)
}
