package core

import "context"

type MessagesRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg ChatMessage) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]ChatMessage, error)
}

// RowSource loads the rows of one CRM collection, capped at limit.
type RowSource interface {
	FetchRows(ctx context.Context, c Collection, limit int) ([]Record, error)
}
