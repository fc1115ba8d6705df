// Package chat routes one incoming line to a slash command or to the
// session's assistant. Every transport goes through Dispatcher.
package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/service/assistant"
	"github.com/sandevgo/crmchat/pkg/log"
)

type Sessions interface {
	Get(sessionID string) *assistant.Assistant
}

type Dispatcher struct {
	router   core.CmdRouter
	sessions Sessions
	history  core.MessagesRepository
	clock    core.Clock
	newID    func() string
}

// NewDispatcher wires the dispatcher. history may be nil, in which case
// nothing is persisted.
func NewDispatcher(router core.CmdRouter, sessions Sessions, history core.MessagesRepository) *Dispatcher {
	return &Dispatcher{
		router:   router,
		sessions: sessions,
		history:  history,
		clock:    core.SystemClock{},
		newID:    uuid.NewString,
	}
}

// Commands lists the slash commands the dispatcher answers.
func (d *Dispatcher) Commands() []core.Command {
	return d.router.ListCommands()
}

func (d *Dispatcher) Handle(ctx context.Context, sessionID, text string) core.ChatMessage {
	text = strings.TrimSpace(text)

	if d.router != nil {
		if out, ok := d.router.Execute(ctx, sessionID, text); ok {
			return core.ChatMessage{
				ID:        d.newID(),
				Role:      core.RoleAssistant,
				Content:   out,
				Timestamp: d.clock.Now(),
			}
		}
	}

	d.persist(ctx, sessionID, core.ChatMessage{
		ID:        d.newID(),
		Role:      core.RoleUser,
		Content:   text,
		Timestamp: d.clock.Now(),
	})

	reply := d.sessions.Get(sessionID).ProcessQuery(ctx, text)
	d.persist(ctx, sessionID, reply)
	return reply
}

func (d *Dispatcher) persist(ctx context.Context, sessionID string, msg core.ChatMessage) {
	if d.history == nil {
		return
	}
	if err := d.history.AddMessage(ctx, sessionID, msg); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to save message")
	}
}
