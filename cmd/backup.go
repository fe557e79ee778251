package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().Bool("restore", false, "Restore a backup instead of creating one (default: the latest)")
	backupCmd.Flags().BoolP("force", "f", false, "Restore without confirmation")
}

var backupCmd = &cobra.Command{
	Use:   "backup [--restore [backup-file]]",
	Short: "Back up or restore the configuration file",
	Long: `Create a backup of the configuration file and print its path.

With --restore, replace the configuration with a backup. A bare file name is
looked up next to the configuration file.

Examples:
  cw backup
  cw backup --restore
  cw backup --restore config.toml.backup-20240501120000.000000-4242`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		restore, _ := cmd.Flags().GetBool("restore")
		force, _ := cmd.Flags().GetBool("force")
		if len(args) > 0 && !restore {
			return fmt.Errorf("a backup file can only be given with --restore")
		}

		m, err := newManager()
		if err != nil {
			return err
		}

		if !restore {
			path, err := m.Backup()
			if err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Backup created")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		var backupPath string
		if len(args) == 1 {
			backupPath = args[0]
			if filepath.Base(backupPath) == backupPath {
				backupPath = filepath.Join(filepath.Dir(m.Path()), backupPath)
			}
		}

		if !force {
			ok, err := confirm("Replace the current configuration with a backup?", false)
			if err != nil {
				return err
			}
			if !ok {
				printWarning(cmd.ErrOrStderr(), "Restore cancelled")
				return nil
			}
		}

		used, err := m.Restore(backupPath)
		if err != nil {
			return err
		}
		printSuccess(cmd.ErrOrStderr(), "Configuration restored from %s", filepath.Base(used))
		return nil
	},
}
