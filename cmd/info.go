package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Show profile details or statistics",
	Long: `Show the details of a profile. Without a name, show statistics about
all profiles.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			fmt.Fprint(out, renderStats(m.Stats(), m.Path()))
			return nil
		}

		p, err := m.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatProfile(p, p.Name == m.CurrentName()))

		if ok, msg := m.Validate(p.Name); !ok {
			printWarning(cmd.ErrOrStderr(), "Profile is invalid: %s", msg)
		}
		return nil
	},
}
