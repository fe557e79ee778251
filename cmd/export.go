package cmd

import (
	"fmt"
	"os"

	"claudewarp/config"
	"claudewarp/internal/shell"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("name", "n", "", "Profile to export (default: current profile)")
	exportCmd.Flags().StringP("shell", "s", string(shell.Bash), "Output dialect: bash, zsh, fish, powershell or dotenv")
	exportCmd.Flags().Bool("no-comments", false, "Omit the comment header")
	exportCmd.Flags().StringP("prefix", "p", config.DefaultExportPrefix, "Environment variable prefix")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print environment variables for a profile",
	Long: `Print the environment variables of a profile in a shell dialect.

Examples:
  eval "$(cw export)"
  cw export --shell fish | source
  cw export --shell powershell | Invoke-Expression
  cw export --name work --shell dotenv -o .env`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		shellName, _ := flags.GetString("shell")
		noComments, _ := flags.GetBool("no-comments")
		prefix, _ := flags.GetString("prefix")
		output, _ := flags.GetString("output")

		m, err := newManager()
		if err != nil {
			return err
		}

		script, err := m.ExportEnvironment(config.ExportFormat{
			Shell:           shellName,
			IncludeComments: !noComments,
			Prefix:          prefix,
		}, name)
		if err != nil {
			return err
		}

		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		}

		// The script contains the credential
		if err := os.WriteFile(output, []byte(script), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		printSuccess(cmd.ErrOrStderr(), "Environment written to %s", output)
		return nil
	},
}
