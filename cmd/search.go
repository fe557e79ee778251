package cmd

import (
	"fmt"

	"claudewarp/config"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSlice("fields", config.SearchFields(), "Fields to search: name, description, tags")
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search proxy profiles",
	Long:  "Case-insensitive substring search over profile names, descriptions and tags.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, _ := cmd.Flags().GetStringSlice("fields")

		m, err := newManager()
		if err != nil {
			return err
		}

		results, err := m.Search(args[0], fields...)
		if err != nil {
			return err
		}
		if results.Len() == 0 {
			printWarning(cmd.ErrOrStderr(), "No profiles match '%s'", args[0])
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderProfileTable(results.All(), m.CurrentName()))
		return nil
	},
}
