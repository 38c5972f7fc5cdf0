package cmd

import (
	"github.com/spf13/cobra"

	"github.com/irrigo/dashboard/cmd/irrigo-cli/internal/output"
	"github.com/irrigo/dashboard/internal/apiclient"
)

var eventsFormat string

type eventInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// knownEvents lists the change events published on the in-process bus.
func knownEvents() []eventInfo {
	return []eventInfo{
		{Name: apiclient.ScriptsChanged.Name(), Description: apiclient.ScriptsChanged.Description()},
		{Name: apiclient.ModelsChanged.Name(), Description: apiclient.ModelsChanged.Description()},
	}
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the change events modules publish",
	Long: `List the events published after successful mutations. The API client
subscribes to them to drop cached responses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events := knownEvents()
		return output.Write(cmd.OutOrStdout(), eventsFormat, events, func() error {
			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{e.Name, output.Truncate(e.Description, 60)})
			}
			return output.Table(cmd.OutOrStdout(), []string{"NAME", "DESCRIPTION"}, rows, "No events found")
		})
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().StringVarP(&eventsFormat, "format", "f", output.FormatTable, "Output format (table, json)")
}
