package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rxguard/internal/diagfmt"
	"rxguard/internal/driver"
	"rxguard/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.cs|directory>",
	Short: "Apply available fixes to a source file or directory",
	Long:  "Run analysis, surface available fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "preview changes without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	colorEnabled, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	_, opts, err := loadRunConfig(cmd, targetPath)
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// A fix id embeds a file-local span, so across a directory it is
	// only unique together with the file.
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	_, results, err := driver.AnalyzePath(cmd.Context(), targetPath, opts, nil)
	if err != nil {
		return fmt.Errorf("fix: analyze failed: %w", err)
	}

	targets := make([]fix.Target, 0, len(results))
	for _, r := range results {
		if r.Tree == nil {
			continue
		}
		targets = append(targets, fix.Target{
			Path:     r.Path,
			Tree:     r.Tree,
			Findings: r.Bag.Items(),
		})
	}

	res, applyErr := fix.Apply(targets, driver.Synthesizers(opts), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
	})

	if res != nil && dryRun && len(res.Changes) > 0 {
		diagfmt.Previews(os.Stdout, res.Changes, diagfmt.PreviewOpts{Color: colorEnabled, Context: 2})
	}
	if res != nil && !dryRun {
		if err := writeChanges(res.Changes); err != nil {
			return err
		}
	}
	return reportApplyResult(res, applyErr, dryRun)
}

func writeChanges(changes []fix.FileChange) error {
	for _, ch := range changes {
		mode := os.FileMode(0o644)
		if info, err := os.Stat(ch.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(ch.Path, ch.After, mode); err != nil {
			return fmt.Errorf("write %s: %w", ch.Path, err)
		}
	}
	return nil
}

func reportApplyResult(res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(os.Stdout, "  %s [%s] at %s\n", item.Title, item.ID, item.Path)
		}
	}

	if len(res.Changes) > 0 && !dryRun {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.Changes {
			fmt.Fprintf(os.Stdout, "  %s (%d edit(s))\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) {
		return applyErr
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(os.Stdout, "No applicable fixes found.")
	}
	return nil
}
