package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"rxguard/internal/fix"
)

// PreviewOpts configures rendering of fix previews.
type PreviewOpts struct {
	Color   bool
	Context int // unchanged lines kept around each changed region
}

// Previews renders the before/after content of every file change as a
// minimal line diff, for dry runs.
func Previews(w io.Writer, changes []fix.FileChange, opts PreviewOpts) {
	for i, ch := range changes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := fmt.Sprintf("--- %s (%d edit(s))", ch.Path, ch.EditCount)
		if opts.Color {
			header = color.New(color.Bold).Sprint(header)
		}
		fmt.Fprintln(w, header)
		previewDiff(w, splitLines(ch.Before), splitLines(ch.After), opts)
	}
}

// previewDiff prints removed and added lines between the common prefix and
// suffix of the two line slices. Patches are local, so trimming shared
// edges isolates the changed region well enough for a preview.
func previewDiff(w io.Writer, before, after []string, opts PreviewOpts) {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	ctxStart := max(prefix-opts.Context, 0)
	for i := ctxStart; i < prefix; i++ {
		fmt.Fprintf(w, "  %s\n", before[i])
	}
	for _, line := range before[prefix : len(before)-suffix] {
		out := "- " + line
		if opts.Color {
			out = color.New(color.FgRed).Sprint(out)
		}
		fmt.Fprintln(w, out)
	}
	for _, line := range after[prefix : len(after)-suffix] {
		out := "+ " + line
		if opts.Color {
			out = color.New(color.FgGreen).Sprint(out)
		}
		fmt.Fprintln(w, out)
	}
	ctxEnd := min(len(before)-suffix+opts.Context, len(before))
	for i := len(before) - suffix; i < ctxEnd; i++ {
		fmt.Fprintf(w, "  %s\n", before[i])
	}
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}
