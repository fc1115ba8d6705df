package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/crmchat/internal/core"
)

type StatusCommand struct {
	sessions Sessions
}

func NewStatusCommand(sessions Sessions) *StatusCommand {
	return &StatusCommand{sessions: sessions}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show what CRM data this chat has loaded"
}

func (c *StatusCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	a, ok := c.sessions.Lookup(sessionID)
	if !ok || !a.Status().Loaded {
		return newReply("📇", "CRM data").
			field("Status", "not loaded").
			field("Active chats", c.sessions.Count()).
			tip("Ask a question or send /refresh to load the data").
			String(), nil
	}

	st := a.Status()
	items := make([]string, len(core.Collections))
	for i, coll := range core.Collections {
		items[i] = fmt.Sprintf("%s: **%d**", coll, st.Counts[coll])
	}

	return newReply("📇", "CRM data").
		field("Loaded at", st.LoadedAt.Format(timeLayout)).
		field("Active chats", c.sessions.Count()).
		bullets(items).
		String(), nil
}
