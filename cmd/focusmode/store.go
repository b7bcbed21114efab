package main

import (
	"context"
	"fmt"
	"time"

	"github.com/focusmode/focusmode/internal/config"
	"github.com/focusmode/focusmode/internal/db"
	"github.com/focusmode/focusmode/internal/memstore"
	"github.com/focusmode/focusmode/internal/storage"
	"go.uber.org/zap"
)

const storeStartupTimeout = 15 * time.Second

// openStore returns the configured backend, already connected and migrated.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	var store storage.Store
	switch cfg.Storage.Backend {
	case storage.BackendMemory:
		logger.Warn("using in-memory storage; data is lost on exit")
		store = memstore.New()
	case storage.BackendSQLite:
		store = db.NewStore(cfg.Storage.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	pingCtx, cancel := context.WithTimeout(ctx, storeStartupTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		logger.Error("storage unavailable",
			zap.String("backend", cfg.Storage.Backend),
			zap.String("path", cfg.Storage.Path),
			zap.Error(err),
		)
		logger.Info("check that the database directory exists and is writable, or set FOCUSMODE_DB_PATH / --db; use --storage memory for a throwaway instance")
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return store, nil
}
