package cmd

import (
	"fmt"
	"os"

	"claudewarp/config"
	syncpkg "claudewarp/config/sync"
	"claudewarp/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// EnvLogLevel and EnvLogFormat configure diagnostics when --verbose is not given
const (
	EnvLogLevel  = "CLAUDEWARP_LOG_LEVEL"
	EnvLogFormat = "CLAUDEWARP_LOG_FORMAT"
)

var (
	configPath string
	verbose    bool
	noSync     bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cw",
	Short: "Claude proxy profile manager",
	Long: `cw manages named proxy profiles for Claude Code.

Each profile stores an API endpoint, a credential (API key or auth token)
and optional model overrides. One profile can be current; switching to the
built-in profile "no" clears the selection and the Claude Code overrides.

Apply a profile to the current shell with:
  eval "$(cw export)"`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is normal
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		level := os.Getenv(EnvLogLevel)
		if verbose {
			level = "debug"
		}
		l, err := logging.NewLogger(level, os.Getenv(EnvLogFormat), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/claudewarp/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noSync, "no-sync", false, "Do not update Claude Code settings.json")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newManager opens the profile manager for the resolved config path
func newManager() (*config.Manager, error) {
	path, err := config.ResolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	opts := []config.Option{config.WithLogger(logger)}
	if configPath == "" && os.Getenv(config.EnvConfigPath) == "" {
		if legacy, err := config.LegacyConfigPath(); err == nil {
			opts = append(opts, config.WithLegacyMigration(legacy))
		}
	}
	if !noSync {
		settingsPath, err := syncpkg.DefaultClaudeSettingsPath()
		if err != nil {
			logger.Warn("Claude Code settings sync disabled", zap.Error(err))
		} else {
			opts = append(opts, config.WithExternalConfig(syncpkg.NewClaudeSettings(settingsPath, logger)))
		}
	}

	m, err := config.NewManager(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize profile manager: %w", err)
	}
	return m, nil
}

// Execute executes the root command and reports any error on stderr
func Execute() error {
	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`cw {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	_ = logger.Sync()
	return err
}
