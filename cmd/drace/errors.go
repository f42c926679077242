package main

import (
	"github.com/spf13/cobra"

	"github.com/drace-lint/drace/service"
)

// printCommandError reports a failed command on stderr with the error
// category and any recovery hints for it.
func printCommandError(cmd *cobra.Command, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	if categorized == nil {
		return
	}

	cmd.PrintErrf("Error (%s): %s\n", categorized.Category, categorized.Message)
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		cmd.PrintErrln("  hint:", suggestion)
	}
}
