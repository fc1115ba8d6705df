package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CRMCHAT_RUNTIME_PATH", dir)

	c, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.True(t, c.EnableCLI)
	assert.False(t, c.EnableTelegram)
	assert.False(t, c.EnableHTTP)
	assert.True(t, c.SaveHistory)
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.Equal(t, 30*24*time.Hour, c.HistoryRetention)
	assert.Empty(t, c.RedisURL)
	assert.Equal(t, filepath.Join(dir, "crmchat.db"), c.GetDatabasePath())
}

func TestParseAppConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "postgres_with_url", env: map[string]string{"CRMCHAT_DB_DRIVER": "postgres", "CRMCHAT_DATABASE_URL": "postgres://crm@localhost/crm"}},
		{name: "postgres_without_url", env: map[string]string{"CRMCHAT_DB_DRIVER": "postgres"}, wantErr: true},
		{name: "unknown_driver", env: map[string]string{"CRMCHAT_DB_DRIVER": "mysql"}, wantErr: true},
		{name: "zero_ttl", env: map[string]string{"CRMCHAT_SESSION_TTL": "0s"}, wantErr: true},
		{name: "bad_duration", env: map[string]string{"CRMCHAT_SESSION_TTL": "soon"}, wantErr: true},
		{name: "redis_history", env: map[string]string{"CRMCHAT_REDIS_URL": "redis://localhost:6379/0"}},
		{name: "redis_not_a_url", env: map[string]string{"CRMCHAT_REDIS_URL": "localhost"}, wantErr: true},
		{name: "negative_retention", env: map[string]string{"CRMCHAT_HISTORY_RETENTION": "-1h"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CRMCHAT_RUNTIME_PATH", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseAppConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetDatabasePath_SQLiteURL(t *testing.T) {
	c := AppConfig{RuntimePath: "/tmp/x", DBDriver: DriverSQLite, DatabaseURL: "/data/crm.db"}
	assert.Equal(t, "/data/crm.db", c.GetDatabasePath())
}

func TestLogFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "unset", value: "", want: "console"},
		{name: "json", value: "json", want: "json"},
		{name: "upper_case", value: "JSON", want: "json"},
		{name: "unknown", value: "logfmt", want: "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CRMCHAT_LOG_FORMAT", tt.value)
			assert.Equal(t, tt.want, LogFormat())
		})
	}
}

func TestCheck_Messages(t *testing.T) {
	tests := []struct {
		name string
		cfg  any
		want string
	}{
		{
			name: "missing_postgres_url",
			cfg:  &AppConfig{DBDriver: DriverPostgres, SessionTTL: time.Hour},
			want: "CRMCHAT_DATABASE_URL is required",
		},
		{
			name: "unknown_driver",
			cfg:  &AppConfig{DBDriver: "mysql", SessionTTL: time.Hour},
			want: `CRMCHAT_DB_DRIVER must be one of [sqlite3 postgres], got "mysql"`,
		},
		{
			name: "http_timeout",
			cfg:  &HTTPConfig{Addr: ":8080", ReadTimeout: time.Second},
			want: "CRMCHAT_HTTP_WRITE_TIMEOUT must be greater than 0",
		},
		{
			name: "telegram_owner",
			cfg:  &TelegramConfig{Token: "123:abc"},
			want: "CRMCHAT_TELEGRAM_OWNER_ID must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCheck_Valid(t *testing.T) {
	assert.NoError(t, check(&HTTPConfig{Addr: "127.0.0.1:8080", ReadTimeout: time.Second, WriteTimeout: time.Second}))
	assert.NoError(t, check(&TelegramConfig{Token: "123:abc", OwnerID: 42}))
}
