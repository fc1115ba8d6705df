package command

import "context"

type ResetCommand struct {
	sessions Sessions
}

func NewResetCommand(sessions Sessions) *ResetCommand {
	return &ResetCommand{sessions: sessions}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Forget this chat's loaded CRM data"
}

// Execute drops the session; the next question starts a fresh one.
func (c *ResetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if _, ok := c.sessions.Lookup(sessionID); !ok {
		return newReply("🧹", "Nothing to reset").
			tip("This chat has no loaded data yet").
			String(), nil
	}

	c.sessions.Drop(sessionID)
	return newReply("🧹", "Chat reset").
		field("Active chats", c.sessions.Count()).
		tip("The next question reloads the CRM data").
		String(), nil
}
