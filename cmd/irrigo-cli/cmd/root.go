package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "irrigo-cli",
	Short: "Irrigo dashboard developer tool",
	Long: `irrigo-cli helps working on the Irrigo dashboard.

Available commands:
  i18n        Check and list translation dictionaries
  tabs        Explain how a profile page request resolves its tab
  events      List the change events modules publish
  new-module  Scaffold a new application module

Use "irrigo-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
