package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadOverlaysYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusmode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  shutdown_timeout: 3s
storage:
  backend: memory
auth:
  token_ttl: 24h
timezone: Europe/Berlin
log:
  level: debug
  format: console
reminders:
  hour: 20
  interval: 30m
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 20, cfg.Reminders.Hour)
	assert.Equal(t, 30*time.Minute, cfg.Reminders.Interval)
	assert.True(t, cfg.Reminders.Enabled, "unset keys keep their defaults")
}

func TestLoadRejectsMissingAndMalformedFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.applyEnv(envFrom(map[string]string{
		"PORT":                "7000",
		"FOCUSMODE_DB_PATH":   "/var/lib/focusmode/app.db",
		"FOCUSMODE_SECRET":    "s3cret",
		"TZ":                  "Asia/Tokyo",
		"FOCUSMODE_LOG_LEVEL": "warn",
		"TELEGRAM_BOT_TOKEN":  "bot",
		"TELEGRAM_CHAT_ID":    "42",
		"FOCUSMODE_REMINDERS": "false",
	})))

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/focusmode/app.db", cfg.Storage.Path)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.TelegramConfigured())
	assert.False(t, cfg.Reminders.Enabled)

	require.NoError(t, cfg.applyEnv(envFrom(map[string]string{"PORT": "7000", "FOCUSMODE_ADDR": "127.0.0.1:7001"})))
	assert.Equal(t, "127.0.0.1:7001", cfg.Server.Addr, "FOCUSMODE_ADDR wins over PORT")

	assert.Error(t, cfg.applyEnv(envFrom(map[string]string{"FOCUSMODE_REMINDERS": "sometimes"})))
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "mysql"
	cfg.Timezone = "Mars/Olympus"
	cfg.Auth.TokenTTL = 0
	cfg.Reminders.Hour = 24

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage backend "mysql"`)
	assert.Contains(t, err.Error(), "invalid timezone")
	assert.Contains(t, err.Error(), "token_ttl")
	assert.Contains(t, err.Error(), "reminders.hour")
}

func TestEnsureSecretGeneratesOnlyWhenEmpty(t *testing.T) {
	cfg := Default()

	generated, err := cfg.EnsureSecret()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, cfg.Auth.Secret, ephemeralSecretLength)

	first := cfg.Auth.Secret
	generated, err = cfg.EnsureSecret()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, first, cfg.Auth.Secret)
}
