package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/crmchat/internal/core"
)

type RefreshCommand struct {
	sessions Sessions
}

func NewRefreshCommand(sessions Sessions) *RefreshCommand {
	return &RefreshCommand{sessions: sessions}
}

func (c *RefreshCommand) Name() string {
	return "refresh"
}

func (c *RefreshCommand) Description() string {
	return "Reload CRM data for this chat"
}

func (c *RefreshCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	a := c.sessions.Get(sessionID)
	if err := a.Refresh(ctx); err != nil {
		return "", fmt.Errorf("failed to reload CRM data: %w", err)
	}

	st := a.Status()
	return newReply("✅", "CRM data reloaded").
		field("Clients", st.Counts[core.Clients]).
		field("Loaded at", st.LoadedAt.Format(timeLayout)).
		String(), nil
}
