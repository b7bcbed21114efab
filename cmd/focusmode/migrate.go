package main

import (
	"context"
	"errors"

	"github.com/focusmode/focusmode/internal/db"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(env *runtimeEnv) *cobra.Command {
	var storeArg storageFlags

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			storeArg.apply(cmd, cfg)
			if err := validated(cfg); err != nil {
				return err
			}
			if cfg.Storage.Backend != storage.BackendSQLite {
				return errors.New("migrate requires the sqlite backend")
			}
			return runMigrate(cmd.Context(), cfg.Storage.Path, env.logger)
		},
	}
	storeArg.register(cmd)
	return cmd
}

func runMigrate(ctx context.Context, path string, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store := db.NewStore(path, logger)
	defer store.Close()

	database, err := store.DB(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	version, err := db.MigrationVersion(ctx, sqlDB)
	if err != nil {
		return err
	}
	logger.Info("database is up to date", zap.String("path", path), zap.Int64("version", version))
	return nil
}
