package main

import (
	"fmt"

	"github.com/focusmode/focusmode/internal/config"
	"github.com/focusmode/focusmode/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtimeEnv is filled by the root command before any subcommand runs.
type runtimeEnv struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCommand() *cobra.Command {
	env := &runtimeEnv{}

	root := &cobra.Command{
		Use:          "focusmode",
		Short:        "FocusMode study planner: API server, focus timer and admin tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(env.configPath)
			if err != nil {
				return err
			}
			if env.logLevel != "" {
				cfg.Log.Level = env.logLevel
			}
			env.cfg = cfg

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			env.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.logger != nil {
				_ = env.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&env.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(env),
		newMigrateCommand(env),
		newResetPasswordCommand(env),
		newTimerCommand(),
	)
	return root
}

// storageFlags are shared by every command that opens the store.
type storageFlags struct {
	backend string
	path    string
}

func (flags *storageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.backend, "storage", "", "storage backend (sqlite or memory)")
	cmd.Flags().StringVar(&flags.path, "db", "", "SQLite database path")
}

func (flags *storageFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("storage") {
		cfg.Storage.Backend = flags.backend
	}
	if cmd.Flags().Changed("db") {
		cfg.Storage.Path = flags.path
	}
}

func validated(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
