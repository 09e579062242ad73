package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rxguard/internal/diag"
	"rxguard/internal/diagfmt"
	"rxguard/internal/driver"
	"rxguard/internal/source"
	"rxguard/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file.cs|directory>",
	Short: "Analyze a source file or directory and report findings",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	analyzeCmd.Flags().Int("context", 2, "source lines of context around each finding")
	analyzeCmd.Flags().String("progress", "auto", "show per-file progress (auto|on|off)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	contextLines, err := cmd.Flags().GetInt("context")
	if err != nil {
		return err
	}
	progressValue, err := cmd.Flags().GetString("progress")
	if err != nil {
		return err
	}
	progressMode, err := readColorMode(progressValue)
	if err != nil {
		return fmt.Errorf("invalid --progress value %q (expected auto|on|off)", progressValue)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	colorEnabled, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	cfg, opts, err := loadRunConfig(cmd, targetPath)
	if err != nil {
		return err
	}
	if cfg != nil && cfg.Output.Format != "" && !cmd.Flags().Changed("format") {
		format = cfg.Output.Format
	}

	useProgress := progressMode == colorModeOn ||
		(progressMode == colorModeAuto && format == "pretty" && !quiet && isTerminal(os.Stdout))

	fileSet, results, err := runAnalysis(cmd, targetPath, opts, useProgress)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	combined := diag.NewBag(opts.MaxDiagnostics)
	for _, r := range results {
		combined.Merge(r.Bag)
	}
	combined.Sort()

	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, combined, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}); err != nil {
			return err
		}
		if combined.HasErrors() {
			os.Exit(1)
		}
		return nil
	case "pretty":
		diagfmt.Pretty(os.Stdout, combined, fileSet, diagfmt.PrettyOpts{
			Color:     colorEnabled,
			Context:   contextLines,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: !quiet,
			ShowFixes: !quiet,
		})
		if !quiet {
			fmt.Fprintf(os.Stdout, "%d finding(s) in %d file(s)\n", combined.Len(), len(results))
		}
		if combined.HasErrors() {
			os.Exit(1)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
}

// runAnalysis drives the analysis, with or without the progress TUI.
func runAnalysis(cmd *cobra.Command, targetPath string, opts driver.Options, useProgress bool) (*source.FileSet, []driver.FileResult, error) {
	if !useProgress {
		return driver.AnalyzePath(cmd.Context(), targetPath, opts, nil)
	}

	files, _ := driver.ListSourceFiles(targetPath)
	events := make(chan driver.Event, 256)

	type outcome struct {
		fs      *source.FileSet
		results []driver.FileResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)
	go func() {
		fs, results, err := driver.AnalyzePath(cmd.Context(), targetPath, opts, events)
		outcomeCh <- outcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel("analyzing "+targetPath, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.fs, out.results, uiErr
	}
	return out.fs, out.results, out.err
}
