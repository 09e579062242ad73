// Package fix selects and applies automated corrections. The engine never
// touches the filesystem: it receives parsed documents with their findings,
// rewrites the trees, and hands back the resulting file contents for the
// caller to write (or merely preview).
package fix

import (
	"errors"
	"fmt"
	"sort"

	"rxguard/internal/diag"
	"rxguard/internal/syntax"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Synthesizer materializes the edit for one finding against the current
// state of the tree. It is invoked at apply time, after any earlier edits,
// so implementations must re-locate and re-validate the finding themselves
// and fail rather than guess when the document moved.
type Synthesizer func(finding diag.Diagnostic, tree *syntax.Tree) (diag.TextEdit, error)

// Synthesizers maps diagnostic codes to the synthesizer that repairs them.
type Synthesizers map[diag.Code]Synthesizer

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// Target is one document up for fixing: its parse tree and the findings
// analysis produced for it.
type Target struct {
	Path     string
	Tree     *syntax.Tree
	Findings []diag.Diagnostic
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID      string
	Title   string
	Code    diag.Code
	Message string
	Path    string
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange carries the rewritten content of one document. Before is the
// content the engine started from, After what it produced.
type FileChange struct {
	Path      string
	EditCount int
	Before    []byte
	After     []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Changes []FileChange
}

type candidate struct {
	target  int
	finding diag.Diagnostic
	fix     diag.Fix
}

// Apply gathers declared fixes from the targets' findings, selects a subset
// according to opts, and applies them in document order. Each edit is
// synthesized against the tree as rewritten by the edits before it; the
// finding's span is shifted by the accumulated length delta first, so a
// finding either re-anchors exactly or is skipped as stale.
func Apply(targets []Target, synth Synthesizers, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
		Changes: make([]FileChange, 0),
	}

	candidates := gather(targets, synth)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	state := make(map[int]*targetState)
	for _, cand := range selected {
		st := state[cand.target]
		if st == nil {
			st = &targetState{
				tree:   targets[cand.target].Tree,
				before: targets[cand.target].Tree.File.Content,
			}
			state[cand.target] = st
		}

		finding := cand.finding
		finding.Primary = finding.Primary.ShiftBy(st.delta)

		edit, err := synth[finding.Code](finding, st.tree)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: err.Error(),
			})
			continue
		}
		if edit.OldText != "" {
			got := string(st.tree.File.Content[edit.Span.Start:edit.Span.End])
			if got != edit.OldText {
				result.Skipped = append(result.Skipped, SkippedFix{
					ID:     cand.fix.ID,
					Title:  cand.fix.Title,
					Reason: "existing text does not match expected content",
				})
				continue
			}
		}

		st.tree = st.tree.Replace(edit.Span, edit.NewText)
		st.delta += len(edit.NewText) - int(edit.Span.Len())
		st.edits++

		result.Applied = append(result.Applied, AppliedFix{
			ID:      cand.fix.ID,
			Title:   cand.fix.Title,
			Code:    finding.Code,
			Message: finding.Message,
			Path:    targets[cand.target].Path,
		})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	indexes := make([]int, 0, len(state))
	for i := range state {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		st := state[i]
		if st.edits == 0 {
			continue
		}
		result.Changes = append(result.Changes, FileChange{
			Path:      targets[i].Path,
			EditCount: st.edits,
			Before:    st.before,
			After:     st.tree.File.Content,
		})
	}
	return result, nil
}

type targetState struct {
	tree   *syntax.Tree
	before []byte
	delta  int
	edits  int
}

// gather flattens declared fixes into candidates, keeping only codes the
// synthesizer table can repair. Findings are visited in target order and,
// within a target, in span order, so span shifting stays forward-only.
func gather(targets []Target, synth Synthesizers) []candidate {
	cands := make([]candidate, 0)
	for ti, target := range targets {
		findings := append([]diag.Diagnostic(nil), target.Findings...)
		sort.SliceStable(findings, func(i, j int) bool {
			if findings[i].Primary.Start != findings[j].Primary.Start {
				return findings[i].Primary.Start < findings[j].Primary.Start
			}
			return findings[i].Primary.End < findings[j].Primary.End
		})
		for _, d := range findings {
			if _, ok := synth[d.Code]; !ok {
				continue
			}
			for idx, f := range d.Fixes {
				if f.ID == "" {
					f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
				}
				cands = append(cands, candidate{target: ti, finding: d, fix: f})
			}
		}
	}
	return cands
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		for i := range candidates {
			if candidates[i].fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				return candidates[i : i+1], nil
			}
		}
		return candidates[:1], nil
	default:
		return nil, nil
	}
}
