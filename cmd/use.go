package cmd

import (
	"fmt"

	"claudewarp/config/models"
	"claudewarp/internal/tui"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(useCmd)

	useCmd.Flags().BoolP("force", "f", false, "Switch to a disabled profile without asking")
}

var useCmd = &cobra.Command{
	Use:     "use [name]",
	Aliases: []string{"switch"},
	Short:   "Switch the current proxy profile",
	Long: `Switch the current proxy profile and update the Claude Code settings.

Without a name an interactive picker is shown. Switching to "no" clears the
current profile and removes the proxy variables from Claude Code settings.

Examples:
  cw use work
  cw use no
  cw use`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		m, err := newManager()
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			result, err := runPicker(m.List().All(), m.CurrentName())
			if err != nil {
				return err
			}
			switch result.Action {
			case tui.ActionSwitch:
				name = result.Name
			default:
				return nil
			}
		}

		target, err := m.Get(name)
		if err != nil {
			return err
		}
		if !target.IsActive && !force {
			ok, err := confirm(fmt.Sprintf("Profile '%s' is disabled. Switch anyway?", name), false)
			if err != nil {
				return err
			}
			if !ok {
				printWarning(cmd.ErrOrStderr(), "Switch cancelled")
				return nil
			}
		}

		if _, err := m.Switch(name); err != nil {
			return err
		}

		out := cmd.ErrOrStderr()
		if name == models.BuiltinName {
			printSuccess(out, "Proxy disabled; no profile is current")
			return nil
		}
		printSuccess(out, "Switched to '%s'", name)
		fmt.Fprintln(out, dimStyle.Render("Apply to this shell: eval \"$("+exportCommandLine(name)+")\""))
		return nil
	},
}

// Overridden in tests
var runPicker = tui.RunPicker

// exportCommandLine is the shell command that prints the exports for name
func exportCommandLine(name string) string {
	words := []string{rootCmd.Name()}
	if configPath != "" {
		words = append(words, "--config", configPath)
	}
	words = append(words, "export", "--name", name)
	return shellquote.Join(words...)
}
