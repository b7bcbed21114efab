package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/focusmode/focusmode/internal/config"
	"github.com/focusmode/focusmode/internal/memstore"
	"github.com/focusmode/focusmode/internal/services"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewAppServesHealth(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.Secret = "0123456789abcdef0123456789abcdef"

	app, err := newApp(memstore.New(), cfg, zap.NewNop())
	require.NoError(t, err)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.NotEmpty(t, response.Header.Get("X-Request-Id"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Connected", body["database"])
}

func TestNewAppRequiresSecret(t *testing.T) {
	_, err := newApp(memstore.New(), config.Default(), zap.NewNop())
	require.Error(t, err)
}

func TestNewNotifierPrefersTelegramWhenConfigured(t *testing.T) {
	cfg := config.Default()
	_, isLog := newNotifier(cfg, zap.NewNop()).(*services.LogNotifier)
	assert.True(t, isLog)

	cfg.Reminders.TelegramBotToken = "bot-token"
	cfg.Reminders.TelegramChatID = "42"
	_, isTelegram := newNotifier(cfg, zap.NewNop()).(*services.TelegramNotifier)
	assert.True(t, isTelegram)
}

func TestOpenStoreBackends(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Storage.Backend = storage.BackendMemory
	store, err := openStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, store)
	require.NoError(t, store.Close())

	cfg.Storage.Backend = storage.BackendSQLite
	cfg.Storage.Path = filepath.Join(t.TempDir(), "nested", "focusmode.db")
	store, err = openStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	cfg.Storage.Backend = "postgres"
	_, err = openStore(ctx, cfg, zap.NewNop())
	require.ErrorContains(t, err, "unknown storage backend")
}

func TestRunMigrateReportsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusmode.db")
	require.NoError(t, runMigrate(context.Background(), path, zap.NewNop()))
	// A second run finds nothing to apply.
	require.NoError(t, runMigrate(context.Background(), path, zap.NewNop()))
}

func TestStorageFlagsOnlyOverrideWhenSet(t *testing.T) {
	cmd := &cobra.Command{Use: "probe"}
	cfg := config.Default()

	var flags storageFlags
	flags.register(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--db", "/tmp/other.db"}))
	flags.apply(cmd, cfg)

	assert.Equal(t, "/tmp/other.db", cfg.Storage.Path)
	assert.Equal(t, storage.BackendSQLite, cfg.Storage.Backend)
}

func TestTimerCommandRequiresServerAndTokenTogether(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"timer", "--server", "http://localhost:8080"})
	root.SetOut(&discard{})
	root.SetErr(&discard{})

	err := root.Execute()
	require.ErrorContains(t, err, "--server and --token")
}

func TestResetPasswordRequiresEmail(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"reset-password"})
	root.SetOut(&discard{})
	root.SetErr(&discard{})

	require.Error(t, root.Execute())
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
