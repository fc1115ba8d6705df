package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/crmchat/internal/config"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/service/assistant"
	"github.com/sandevgo/crmchat/internal/service/chat"
	"github.com/sandevgo/crmchat/internal/service/command"
	"github.com/sandevgo/crmchat/internal/service/session"
	"github.com/sandevgo/crmchat/internal/storage/postgres"
	"github.com/sandevgo/crmchat/internal/storage/redisstore"
	"github.com/sandevgo/crmchat/internal/storage/rows"
	"github.com/sandevgo/crmchat/internal/storage/sqlite"
	"github.com/sandevgo/crmchat/internal/transport/cli"
	"github.com/sandevgo/crmchat/internal/transport/httpapi"
	"github.com/sandevgo/crmchat/internal/transport/telegram"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/sandevgo/crmchat/pkg/retry"
	"github.com/sandevgo/crmchat/pkg/srv"
)

// NewServices builds the full service list for `crmchat start`. stop ends
// the process when the interactive prompt exits.
func NewServices(ctx context.Context, stop context.CancelFunc) []srv.Service {
	logger := log.FromCtx(ctx)

	appCfg, dispatcher, services := newCore(ctx)

	transports, err := initTransports(ctx, appCfg, dispatcher, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set CRMCHAT_ENABLE_CLI, CRMCHAT_ENABLE_TELEGRAM or CRMCHAT_ENABLE_HTTP")
	}

	return append(services, transports...)
}

// newCore loads config and storage and wires sessions, commands and the
// dispatcher. The returned services only close storage.
func newCore(ctx context.Context) (*config.AppConfig, *chat.Dispatcher, []srv.Service) {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	source, history, cleanups, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, cleanups...)

	// 3. Sessions
	sessions := session.NewManager(appCfg.SessionTTL, func(sessionID string) *assistant.Assistant {
		return assistant.New(source, assistant.WithSessionID(sessionID))
	})

	// 4. Commands and dispatcher
	router := command.New(command.NewCommands(sessions, history))
	dispatcher := chat.NewDispatcher(router, sessions, history)

	return appCfg, dispatcher, services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.RowSource, core.MessagesRepository, []srv.Service, error) {
	var (
		source   core.RowSource
		history  core.MessagesRepository
		cleanups []srv.Service
	)

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pg, err := postgres.Open(ctx, cfg.DatabaseURL, retry.NewDefaultRetrier())
		if err != nil {
			return nil, nil, nil, err
		}
		cleanups = append(cleanups, srv.NewCleanup(pg.Close))
		source = rows.NewSource(pg, rows.Postgres)

		// the CRM database is read-only for us; history lives locally
		if cfg.SaveHistory && cfg.RedisURL == "" {
			local, err := sqlite.NewDB(ctx, cfg.GetHistoryPath())
			if err != nil {
				pg.Close()
				return nil, nil, nil, err
			}
			cleanups = append(cleanups, srv.NewCleanup(local.Close))
			history = sqlite.NewMessagesRepo(local)
		}

	default:
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, nil, err
		}
		cleanups = append(cleanups, srv.NewCleanup(db.Close))
		source = rows.NewSource(db, rows.SQLite)
		if cfg.SaveHistory && cfg.RedisURL == "" {
			history = sqlite.NewMessagesRepo(db)
		}
	}

	if cfg.SaveHistory && cfg.RedisURL != "" {
		client, err := redisstore.Open(ctx, cfg.RedisURL, retry.NewDefaultRetrier())
		if err != nil {
			for _, c := range cleanups {
				c.Shutdown(ctx)
			}
			return nil, nil, nil, err
		}
		cleanups = append(cleanups, srv.NewCleanup(client.Close))
		history = redisstore.NewMessagesRepo(client, cfg.HistoryRetention)
	}

	return source, history, cleanups, nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, handler *chat.Dispatcher, stop context.CancelFunc) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, handler, handler.Commands())
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// HTTP API
	if cfg.EnableHTTP {
		services = append(services, httpapi.NewServer(ctx, config.NewHTTPConfig(ctx), handler))
	}

	// Interactive prompt, last so the other transports are up first
	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(handler, cfg, handler.Commands())
		if err != nil {
			return nil, err
		}
		services = append(services, srv.StopOnReturn(rl, stop))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

func closeAll(ctx context.Context, services []srv.Service) {
	for _, s := range services {
		if err := s.Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", s)
		}
	}
}
