package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/crmchat/pkg/log"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type AppConfig struct {
	RuntimePath string `env:"CRMCHAT_RUNTIME_PATH"`

	// Data source
	DBDriver    string `env:"CRMCHAT_DB_DRIVER" envDefault:"sqlite3" validate:"oneof=sqlite3 postgres"`
	DatabaseURL string `env:"CRMCHAT_DATABASE_URL" validate:"required_if=DBDriver postgres"`

	// Transport Flags
	EnableCLI      bool `env:"CRMCHAT_ENABLE_CLI" envDefault:"true"`
	EnableTelegram bool `env:"CRMCHAT_ENABLE_TELEGRAM" envDefault:"false"`
	EnableHTTP     bool `env:"CRMCHAT_ENABLE_HTTP" envDefault:"false"`

	// Sessions
	SessionTTL  time.Duration `env:"CRMCHAT_SESSION_TTL" envDefault:"1h" validate:"gt=0"`
	SaveHistory bool          `env:"CRMCHAT_SAVE_HISTORY" envDefault:"true"`

	// Optional shared history store; sqlite is used when empty
	RedisURL         string        `env:"CRMCHAT_REDIS_URL" validate:"omitempty,url"`
	HistoryRetention time.Duration `env:"CRMCHAT_HISTORY_RETENTION" envDefault:"720h" validate:"gte=0"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

// ParseAppConfig reads the config from the environment and validates it.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.RuntimePath == "" {
		c.RuntimePath = GetRuntimePath()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

// GetDatabasePath is the local sqlite mirror used when no URL is set.
func (c AppConfig) GetDatabasePath() string {
	if c.DBDriver == DriverSQLite && c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return filepath.Join(c.RuntimePath, "crmchat.db")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "history.db")
}
