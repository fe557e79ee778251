package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(toggleCmd)
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Enable or disable a proxy profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		p, err := m.ToggleActive(args[0])
		if err != nil {
			return err
		}
		printSuccess(cmd.ErrOrStderr(), "Profile '%s' is now %s", p.Name, statusLabel(p))
		return nil
	},
}
