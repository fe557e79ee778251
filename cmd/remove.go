package cmd

import (
	"fmt"

	"claudewarp/config/models"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolP("force", "f", false, "Remove without confirmation")
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a proxy profile",
	Long: `Remove a proxy profile. Removing the current profile leaves no profile
selected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		force, _ := cmd.Flags().GetBool("force")

		m, err := newManager()
		if err != nil {
			return err
		}

		// Surface reserved-name and not-found errors before asking
		if name == models.BuiltinName {
			return m.Remove(name)
		}
		if _, err := m.Get(name); err != nil {
			return err
		}
		wasCurrent := m.CurrentName() == name

		if !force {
			ok, err := confirm(fmt.Sprintf("Remove profile '%s'?", name), false)
			if err != nil {
				return err
			}
			if !ok {
				printWarning(cmd.ErrOrStderr(), "Removal cancelled")
				return nil
			}
		}

		if err := m.Remove(name); err != nil {
			return err
		}

		printSuccess(cmd.ErrOrStderr(), "Profile '%s' removed", name)
		if wasCurrent {
			printWarning(cmd.ErrOrStderr(), "'%s' was the current profile; no profile is current now", name)
		}
		return nil
	},
}
