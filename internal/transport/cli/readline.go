package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/crmchat/internal/config"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/conv"
	"github.com/sandevgo/crmchat/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	cfg     *config.AppConfig
	handler core.ChatHandler
	rl      *readline.Instance
}

// NewReadLine prepares the prompt. commands feed tab completion after "/".
func NewReadLine(handler core.ChatHandler, cfg *config.AppConfig, commands []core.Command) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "crm> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		AutoComplete:    completer(commands),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:     cfg,
		handler: handler,
		rl:      rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("crm chat ready, type /help for commands or 'exit' to quit")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply(r.rl.Stdout(), r.handler.Handle(ctx, defaultSessionID, line))
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func completer(commands []core.Command) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands)+1)
	for _, cmd := range commands {
		items = append(items, readline.PcItem("/"+cmd.Name()))
	}
	items = append(items, readline.PcItem("exit"))
	return readline.NewPrefixCompleter(items...)
}

func reply(w io.Writer, msg core.ChatMessage) {
	fmt.Fprintf(w, "%s\n\n", conv.MarkdownToText(msg.Content))
}
