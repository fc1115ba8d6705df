package command

import (
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/service/assistant"
)

// Sessions resolves the assistant that owns a chat session.
type Sessions interface {
	Get(sessionID string) *assistant.Assistant
	Lookup(sessionID string) (*assistant.Assistant, bool)
	Drop(sessionID string)
	Count() int
}

// NewCommands builds the slash commands. history may be nil when message
// persistence is off.
func NewCommands(sessions Sessions, history core.MessagesRepository) []core.Command {
	return []core.Command{
		NewRefreshCommand(sessions),
		NewStatusCommand(sessions),
		NewResetCommand(sessions),
		NewHistoryCommand(history),
	}
}
