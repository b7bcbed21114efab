// Package config resolves runtime settings: defaults, then an optional YAML
// file, then environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/focusmode/focusmode/internal/security"
	"github.com/focusmode/focusmode/internal/storage"
	"gopkg.in/yaml.v3"
)

const ephemeralSecretLength = 48

type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Storage   StorageConfig  `yaml:"storage"`
	Auth      AuthConfig     `yaml:"auth"`
	Timezone  string         `yaml:"timezone"`
	Log       LogConfig      `yaml:"log"`
	Reminders ReminderConfig `yaml:"reminders"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ReminderConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Hour             int           `yaml:"hour"`
	Interval         time.Duration `yaml:"interval"`
	TelegramBotToken string        `yaml:"telegram_bot_token"`
	TelegramChatID   string        `yaml:"telegram_chat_id"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
			Path:    filepath.Join("data", "focusmode.db"),
		},
		Auth: AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		Timezone: "UTC",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Reminders: ReminderConfig{
			Enabled:  true,
			Hour:     8,
			Interval: time.Hour,
		},
	}
}

// Load reads path when it is not empty and then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	setString := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	if port, ok := lookup("PORT"); ok && strings.TrimSpace(port) != "" {
		c.Server.Addr = ":" + strings.TrimSpace(port)
	}
	setString("FOCUSMODE_ADDR", &c.Server.Addr)
	setString("FOCUSMODE_STORAGE", &c.Storage.Backend)
	setString("FOCUSMODE_DB_PATH", &c.Storage.Path)
	setString("FOCUSMODE_SECRET", &c.Auth.Secret)
	setString("TZ", &c.Timezone)
	setString("FOCUSMODE_LOG_LEVEL", &c.Log.Level)
	setString("FOCUSMODE_LOG_FORMAT", &c.Log.Format)
	setString("TELEGRAM_BOT_TOKEN", &c.Reminders.TelegramBotToken)
	setString("TELEGRAM_CHAT_ID", &c.Reminders.TelegramChatID)

	if value, ok := lookup("FOCUSMODE_REMINDERS"); ok && strings.TrimSpace(value) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("FOCUSMODE_REMINDERS: %w", err)
		}
		c.Reminders.Enabled = enabled
	}
	return nil
}

func (c *Config) Validate() error {
	var problems []error

	switch c.Storage.Backend {
	case storage.BackendSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			problems = append(problems, errors.New("storage.path is required for the sqlite backend"))
		}
	case storage.BackendMemory:
	default:
		problems = append(problems, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, errors.New("auth.token_ttl must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Reminders.Hour < 0 || c.Reminders.Hour > 23 {
		problems = append(problems, fmt.Errorf("reminders.hour %d is outside 0-23", c.Reminders.Hour))
	}
	if c.Reminders.Interval <= 0 {
		problems = append(problems, errors.New("reminders.interval must be positive"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(problems...)
}

// Location returns the configured time zone, UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// EnsureSecret fills an empty token secret with a random one and reports
// whether it did. Tokens signed with it do not survive a restart.
func (c *Config) EnsureSecret() (bool, error) {
	if strings.TrimSpace(c.Auth.Secret) != "" {
		return false, nil
	}
	secret, err := security.Secret(ephemeralSecretLength)
	if err != nil {
		return false, fmt.Errorf("generate secret: %w", err)
	}
	c.Auth.Secret = secret
	return true, nil
}

// TelegramConfigured reports whether reminders can be delivered to Telegram.
func (c *Config) TelegramConfigured() bool {
	return c.Reminders.TelegramBotToken != "" && c.Reminders.TelegramChatID != ""
}
