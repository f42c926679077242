package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/drace-lint/drace/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "drace",
	Short: "A Structural Duplicate Code Detector for Python",
	Long: `drace finds structurally duplicated statement blocks in Python code.

It canonicalizes each file's syntax tree so that renamed variables,
attributes, and changed literal values still hash to the same block,
then reports groups of repeated blocks as Z202 diagnostics with a
suggestion to extract a shared function.

Features:
  • Rename-insensitive duplicate block detection (Z202)
  • Sliding windows over statement sequences at every nesting level
  • Wrapper around pyflakes for classic error checking
  • Text, JSON, YAML, and CSV output`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewFlakesCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
