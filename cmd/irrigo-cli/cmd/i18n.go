package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/irrigo/dashboard/cmd/irrigo-cli/internal/output"
	"github.com/irrigo/dashboard/internal/i18n"
)

var (
	i18nDir         string
	i18nDefaultLang string
	i18nFormat      string
	i18nKeysLang    string
)

var i18nCmd = &cobra.Command{
	Use:   "i18n",
	Short: "Check and list translation dictionaries",
	Long: `Inspect the dictionaries compiled into the dashboard, optionally overlaid
with the files of an override directory (the I18N_DIR of a deployment).

Examples:
  irrigo-cli i18n check
  irrigo-cli i18n check --dir ./locales-override --format json
  irrigo-cli i18n keys --lang es`,
}

var i18nCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report missing keys and placeholder mismatches",
	Long: `Compare every language against the default language. Keys missing in a
language, keys unknown to the default language and texts whose {0}
placeholder count differs are reported. Exits non-zero on any problem.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := i18n.NewDefaultBundle(i18nDefaultLang, i18nDir)
		if err != nil {
			return err
		}
		problems := b.Check()

		err = output.Write(cmd.OutOrStdout(), i18nFormat, problems, func() error {
			rows := make([][]string, 0, len(problems))
			for _, p := range problems {
				rows = append(rows, []string{p.Lang, p.Key, p.Reason})
			}
			return output.Table(cmd.OutOrStdout(), []string{"LANG", "KEY", "PROBLEM"}, rows, "All dictionaries are consistent")
		})
		if err != nil {
			return err
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d translation problem(s)", len(problems))
		}
		return nil
	},
}

var i18nKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the translation keys of a language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !i18n.IsSupported(i18nKeysLang) {
			return fmt.Errorf("unsupported language %q, expected one of %v", i18nKeysLang, i18n.Languages())
		}
		b, err := i18n.NewDefaultBundle(i18nDefaultLang, i18nDir)
		if err != nil {
			return err
		}
		keys := b.Keys(i18nKeysLang)

		type entry struct {
			Key  string `json:"key"`
			Text string `json:"text"`
		}
		entries := make([]entry, 0, len(keys))
		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			text := b.T(i18nKeysLang, k)
			entries = append(entries, entry{Key: k, Text: text})
			rows = append(rows, []string{k, output.Truncate(text, 60)})
		}
		return output.Write(cmd.OutOrStdout(), i18nFormat, entries, func() error {
			return output.Table(cmd.OutOrStdout(), []string{"KEY", "TEXT"}, rows, "No keys found")
		})
	},
}

func init() {
	rootCmd.AddCommand(i18nCmd)
	i18nCmd.AddCommand(i18nCheckCmd, i18nKeysCmd)

	i18nCmd.PersistentFlags().StringVar(&i18nDir, "dir", "", "Override directory with <lang>.json files")
	i18nCmd.PersistentFlags().StringVar(&i18nDefaultLang, "default-lang", "en", "Language the others are compared against")
	i18nCmd.PersistentFlags().StringVarP(&i18nFormat, "format", "f", output.FormatTable, "Output format (table, json)")
	i18nKeysCmd.Flags().StringVarP(&i18nKeysLang, "lang", "l", "en", "Language to list")
}
