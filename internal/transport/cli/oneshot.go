package cli

import (
	"context"
	"io"

	"github.com/sandevgo/crmchat/internal/core"
)

// Ask answers a single question and writes the plain-text reply to w.
func Ask(ctx context.Context, handler core.ChatHandler, w io.Writer, question string) core.ChatMessage {
	msg := handler.Handle(ctx, defaultSessionID, question)
	reply(w, msg)
	return msg
}
