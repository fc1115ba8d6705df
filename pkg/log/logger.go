package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

type options struct {
	json bool
}

type Option func(*options)

// WithJSON writes one JSON object per line instead of the console format,
// for running behind a log collector.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

func NewContextWithLogger(ctx context.Context, debug bool, opts ...Option) (context.Context, func()) {
	return NewContextWithWriter(ctx, os.Stdout, debug, opts...)
}

// NewContextWithWriter is NewContextWithLogger with a custom destination.
// The MCP stdio server needs stdout for the protocol, so it logs to stderr.
func NewContextWithWriter(ctx context.Context, out io.Writer, debug bool, opts ...Option) (context.Context, func()) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// non-blocking: a slow terminal drops lines instead of stalling replies
	wr := diode.NewWriter(out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})

	var logger zerolog.Logger
	if o.json {
		logger = zerolog.New(wr).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        wr,
			TimeFormat: time.DateTime,
			PartsOrder: []string{
				zerolog.LevelFieldName,
				zerolog.TimestampFieldName,
				zerolog.MessageFieldName,
			},
		}).With().Timestamp().Logger()
	}

	log.Logger = logger

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}
