package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/crmchat/internal/config"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/sandevgo/crmchat/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	handler  core.ChatHandler
	sender   *sender
	ownerID  int64
	commands []tele.Command
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	handler core.ChatHandler,
	commands []core.Command,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		handler: handler,
		sender:   newSender(b, retry.NewDefaultRetrier()),
		ownerID:  cfg.OwnerID,
		commands: menu(commands),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	if err := b.bot.SetCommands(b.commands); err != nil {
		logger.Warn().Err(err).Msg("failed to publish the command menu")
	}
	logger.Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	msg := b.handler.Handle(ctx, sessionID(c.Chat().ID), c.Text())
	if err := b.sender.sendMarkdown(ctx, c.Recipient(), msg.Content); err != nil {
		logger.Error().Err(err).Int64("chat", c.Chat().ID).Msg("failed to deliver reply")
		return c.Send("error: failed to deliver reply")
	}
	return nil
}

// menu maps slash commands to the menu Telegram shows next to the input.
func menu(commands []core.Command) []tele.Command {
	res := make([]tele.Command, 0, len(commands))
	for _, cmd := range commands {
		res = append(res, tele.Command{Text: cmd.Name(), Description: cmd.Description()})
	}
	return res
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}
