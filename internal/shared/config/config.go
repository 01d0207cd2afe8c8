package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv    string
	LogLevel  string
	Database  DatabaseConfig
	Alerts    AlertConfig
	Dashboard DashboardConfig
}

// DatabaseConfig is optional; an empty URL keeps filter selections in memory.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

// AlertConfig is optional; an empty token disables the Telegram forwarder.
type AlertConfig struct {
	BotToken string
	ChatID   int64
}

// DashboardConfig describes whose filters are loaded at startup and which
// account is active once the core is up.
type DashboardConfig struct {
	OwnerID      uuid.UUID // uuid.Nil when unset
	AccountID    uuid.UUID // uuid.Nil when unset
	FilterScopes []string
}

// envBindings maps viper keys to environment variable names.
var envBindings = map[string]string{
	"app.env":                 "APP_ENV",
	"log.level":               "LOG_LEVEL",
	"database.url":            "DATABASE_URL",
	"database.max_conns":      "DATABASE_MAX_CONNS",
	"alerts.bot_token":        "TELEGRAM_BOT_TOKEN",
	"alerts.chat_id":          "TELEGRAM_ALERT_CHAT_ID",
	"dashboard.owner_id":      "DASHBOARD_OWNER_ID",
	"dashboard.account_id":    "DASHBOARD_ACCOUNT_ID",
	"dashboard.filter_scopes": "DASHBOARD_FILTER_SCOPES",
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// 1. Load .env file into the process environment
	if err := godotenv.Load(); err != nil {
		// If the file just doesn't exist, that's fine in prod.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.max_conns", 4)

	// 4. Get values from viper
	cfg := Config{
		AppEnv:   v.GetString("app.env"),
		LogLevel: v.GetString("log.level"),
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Alerts: AlertConfig{
			BotToken: v.GetString("alerts.bot_token"),
		},
		Dashboard: DashboardConfig{
			FilterScopes: splitList(v.GetString("dashboard.filter_scopes")),
		},
	}

	// viper's typed getters turn garbage into 0, so numbers are cast strictly
	maxConns, err := cast.ToInt32E(v.Get("database.max_conns"))
	if err != nil {
		return nil, fmt.Errorf("DATABASE_MAX_CONNS must be an integer: %w", err)
	}
	cfg.Database.MaxConns = maxConns

	if raw := v.GetString("alerts.chat_id"); raw != "" {
		chatID, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALERT_CHAT_ID must be an integer: %w", err)
		}
		cfg.Alerts.ChatID = chatID
	}

	if cfg.Dashboard.OwnerID, err = parseID(v.GetString("dashboard.owner_id")); err != nil {
		return nil, fmt.Errorf("DASHBOARD_OWNER_ID must be a UUID: %w", err)
	}
	if cfg.Dashboard.AccountID, err = parseID(v.GetString("dashboard.account_id")); err != nil {
		return nil, fmt.Errorf("DASHBOARD_ACCOUNT_ID must be a UUID: %w", err)
	}

	// 5. Validation
	if cfg.Alerts.BotToken != "" && cfg.Alerts.ChatID == 0 {
		return nil, errors.New("TELEGRAM_ALERT_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if cfg.Database.MaxConns < 0 {
		return nil, fmt.Errorf("DATABASE_MAX_CONNS must not be negative, got %d", cfg.Database.MaxConns)
	}

	return &cfg, nil
}

// IsDev reports whether human-readable logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// parseID parses an optional UUID; an empty value yields uuid.Nil.
func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
