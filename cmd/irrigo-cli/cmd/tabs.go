package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/irrigo/dashboard/cmd/irrigo-cli/internal/output"
	"github.com/irrigo/dashboard/internal/profile"
)

var (
	tabsViewer  string
	tabsSubject string
	tabsTab     string
	tabsFormat  string
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Explain profile tab resolution",
}

var tabsResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a profile page request",
	Long: `Show the state, visible tabs and active tab the profile page computes for
a viewer, a profile and an optional tab query parameter. Leaving --tab out
is the same as a URL without ?tab=; --tab "" is an empty parameter.

Examples:
  irrigo-cli tabs resolve --viewer u1 --subject u1 --tab notifications
  irrigo-cli tabs resolve --subject u1 --tab notifications   # anonymous viewer`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := profile.Input{
			ViewerID:  tabsViewer,
			SubjectID: tabsSubject,
			RawTab:    tabsTab,
			HasTab:    cmd.Flags().Changed("tab"),
		}
		res := profile.Resolve(in)

		tabs := make([]string, 0, len(res.Tabs))
		for _, t := range res.Tabs {
			tabs = append(tabs, string(t))
		}
		result := struct {
			State    string   `json:"state"`
			IsOwner  bool     `json:"is_owner"`
			Tabs     []string `json:"tabs"`
			Active   string   `json:"active"`
			Fallback bool     `json:"fallback"`
		}{res.State.String(), res.IsOwner, tabs, string(res.Active), res.Fallback()}

		return output.Write(cmd.OutOrStdout(), tabsFormat, result, func() error {
			return output.Table(cmd.OutOrStdout(), []string{"STATE", "OWNER", "TABS", "ACTIVE", "FALLBACK"}, [][]string{{
				result.State,
				strconv.FormatBool(result.IsOwner),
				strings.Join(tabs, ","),
				orDash(result.Active),
				strconv.FormatBool(result.Fallback),
			}}, "")
		})
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(tabsCmd)
	tabsCmd.AddCommand(tabsResolveCmd)

	tabsResolveCmd.Flags().StringVar(&tabsViewer, "viewer", "", "Signed-in user id (empty for anonymous)")
	tabsResolveCmd.Flags().StringVar(&tabsSubject, "subject", "", "Id of the profile being viewed")
	tabsResolveCmd.Flags().StringVar(&tabsTab, "tab", "", "Raw value of the tab query parameter")
	tabsResolveCmd.Flags().StringVarP(&tabsFormat, "format", "f", output.FormatTable, "Output format (table, json)")
	_ = tabsResolveCmd.MarkFlagRequired("subject")
}
