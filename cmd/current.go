package cmd

import (
	"fmt"

	"claudewarp/config/models"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(currentCmd)
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current proxy profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		p, ok := m.Current()
		if !ok {
			printWarning(cmd.ErrOrStderr(), "No profile is current")
			names := m.List().Filter(func(p models.Profile) bool { return !p.IsBuiltin() }).Names()
			if len(names) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "Available profiles:")
				for _, name := range names {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", name)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("Select one with: cw use <name>"))
			}
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), formatProfile(p, true))
		return nil
	},
}
