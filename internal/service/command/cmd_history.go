package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
)

const (
	defaultHistory = 10
	maxHistory     = 50
	previewLen     = 80
)

type HistoryCommand struct {
	history core.MessagesRepository
}

func NewHistoryCommand(history core.MessagesRepository) *HistoryCommand {
	return &HistoryCommand{history: history}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show the last messages of this chat"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if c.history == nil {
		return "", errors.New("message history is disabled")
	}

	limit := defaultHistory
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return usageReply("/history [count]"), nil
		}
		limit = min(n, maxHistory)
	}

	msgs, err := c.history.GetMessages(ctx, sessionID, limit)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	if len(msgs) == 0 {
		return newReply("🕘", "History").field("Messages", 0).String(), nil
	}

	items := make([]string, len(msgs))
	for i, m := range msgs {
		items[i] = fmt.Sprintf("%s **%s**: %s", m.Timestamp.Format("15:04"), m.Role, preview(m.Content))
	}

	return newReply("🕘", "History").bullets(items).String(), nil
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > previewLen {
		return string(r[:previewLen-3]) + "..."
	}
	return s
}
