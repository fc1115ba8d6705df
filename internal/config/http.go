package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/crmchat/pkg/log"
)

type HTTPConfig struct {
	Addr         string        `env:"CRMCHAT_HTTP_ADDR" envDefault:":8080" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `env:"CRMCHAT_HTTP_READ_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	WriteTimeout time.Duration `env:"CRMCHAT_HTTP_WRITE_TIMEOUT" envDefault:"30s" validate:"gt=0"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	if err := check(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid HTTP config")
	}
	return c
}
