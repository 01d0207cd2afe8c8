package config

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every bound variable so the host environment can't leak in.
// There is no .env in the package directory, so godotenv is a no-op here.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Empty(t, cfg.Alerts.BotToken)
	assert.Equal(t, uuid.Nil, cfg.Dashboard.OwnerID)
	assert.Equal(t, uuid.Nil, cfg.Dashboard.AccountID)
	assert.Empty(t, cfg.Dashboard.FilterScopes)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	owner := uuid.New()
	account := uuid.New()

	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dashboard")
	t.Setenv("DATABASE_MAX_CONNS", "10")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ALERT_CHAT_ID", "-100987")
	t.Setenv("DASHBOARD_OWNER_ID", owner.String())
	t.Setenv("DASHBOARD_ACCOUNT_ID", account.String())
	t.Setenv("DASHBOARD_FILTER_SCOPES", "campaigns.status, deals.type,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/dashboard", cfg.Database.URL)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "123:abc", cfg.Alerts.BotToken)
	assert.Equal(t, int64(-100987), cfg.Alerts.ChatID)
	assert.Equal(t, owner, cfg.Dashboard.OwnerID)
	assert.Equal(t, account, cfg.Dashboard.AccountID)
	assert.Equal(t, []string{"campaigns.status", "deals.type"}, cfg.Dashboard.FilterScopes)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Bot token without chat",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc"},
		},
		{
			name: "Owner ID is not a UUID",
			env:  map[string]string{"DASHBOARD_OWNER_ID": "not-a-uuid"},
		},
		{
			name: "Account ID is not a UUID",
			env:  map[string]string{"DASHBOARD_ACCOUNT_ID": "acc-42"},
		},
		{
			name: "Negative pool size",
			env:  map[string]string{"DATABASE_MAX_CONNS": "-1"},
		},
		{
			name: "Pool size is not a number",
			env:  map[string]string{"DATABASE_MAX_CONNS": "abc"},
		},
		{
			name: "Chat ID is not a number",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc", "TELEGRAM_ALERT_CHAT_ID": "@alerts"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
