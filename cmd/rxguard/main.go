package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rxguard/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rxguard",
	Short: "Static analyzer for unobserved reactive subscriptions",
	Long:  `rxguard flags Subscribe calls that install no error handler and can patch one in without disturbing the surrounding formatting.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to rxguard.toml (default: discovered next to the target)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
