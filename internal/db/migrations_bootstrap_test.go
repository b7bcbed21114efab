package db

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	embeddedmigrations "github.com/focusmode/focusmode/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "focusmode-clean.db"))

	for _, table := range []string{"users", "study_sessions", "notes", "books", "focus_timers"} {
		assert.True(t, database.Migrator().HasTable(table), "expected table %s", table)
	}

	columns := loadTableColumns(t, database, "users")
	for _, column := range []string{"push_enabled", "daily_reminders", "session_reminders", "achievement_alerts", "last_login_at"} {
		_, exists := columns[column]
		assert.True(t, exists, "expected users.%s column", column)
	}

	sqlDB, err := database.DB()
	require.NoError(t, err)
	version, err := MigrationVersion(context.Background(), sqlDB)
	require.NoError(t, err)
	assert.Equal(t, latestEmbeddedMigrationVersion(t), version)
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "focusmode-idempotent.db")

	first, err := OpenSQLite(context.Background(), databasePath, zap.NewNop())
	require.NoError(t, err)
	firstSQL, err := first.DB()
	require.NoError(t, err)
	firstVersion, err := MigrationVersion(context.Background(), firstSQL)
	require.NoError(t, err)
	require.NoError(t, firstSQL.Close())

	second := openSQLiteForMigrationBootstrapTest(t, databasePath)
	secondSQL, err := second.DB()
	require.NoError(t, err)
	secondVersion, err := MigrationVersion(context.Background(), secondSQL)
	require.NoError(t, err)

	assert.Equal(t, firstVersion, secondVersion)
}

func TestOpenSQLiteEnforcesSchemaChecks(t *testing.T) {
	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "focusmode-checks.db"))

	err := database.Exec(
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		"u1", "Ada", "ada@example.com", "hash",
	).Error
	require.NoError(t, err)

	err = database.Exec(
		`INSERT INTO study_sessions (id, user_id, title, subject, duration, status, created_at) VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		"s1", "u1", "Cells", "Biology", 30, "paused",
	).Error
	assert.Error(t, err, "unknown status must violate the CHECK constraint")

	err = database.Exec(
		`INSERT INTO notes (id, user_id, title, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		"n1", "missing-user", "orphan",
	).Error
	assert.Error(t, err, "orphan rows must violate the foreign key")
}

func openSQLiteForMigrationBootstrapTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(context.Background(), databasePath, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	require.NoError(t, database.Raw(`SELECT name FROM pragma_table_info(?)`, tableName).Scan(&rows).Error)

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}

func latestEmbeddedMigrationVersion(t *testing.T) int64 {
	t.Helper()

	names, err := fs.Glob(embeddedmigrations.Files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	var latest int64
	for _, name := range names {
		var version int64
		for _, r := range name {
			if r < '0' || r > '9' {
				break
			}
			version = version*10 + int64(r-'0')
		}
		if version > latest {
			latest = version
		}
	}
	return latest
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("not a directory"), 0o600)
}
