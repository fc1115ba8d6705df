package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/crmchat/pkg/log"
)

type TelegramConfig struct {
	Token   string `env:"CRMCHAT_TELEGRAM_TOKEN,required,notEmpty"`
	OwnerID int64  `env:"CRMCHAT_TELEGRAM_OWNER_ID,required" validate:"gt=0"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	if err := check(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid Telegram config")
	}
	return c
}
