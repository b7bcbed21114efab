package db

import (
	"context"
	"database/sql"
	"sync"

	"github.com/focusmode/focusmode/migrations"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

func applyMigrations(ctx context.Context, sqlDB *sql.DB, logger *zap.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Files)
	goose.SetLogger(gooseLogger{logger: logger.Sugar()})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, ".")
}

// MigrationVersion reports the applied schema version.
func MigrationVersion(ctx context.Context, sqlDB *sql.DB) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

type gooseLogger struct {
	logger *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalf(format, v...)
}
