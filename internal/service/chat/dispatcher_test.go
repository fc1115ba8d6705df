package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/service/assistant"
	"github.com/sandevgo/crmchat/internal/service/command"
	"github.com/sandevgo/crmchat/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientSource struct{}

func (clientSource) FetchRows(_ context.Context, c core.Collection, _ int) ([]core.Record, error) {
	if c == core.Clients {
		return []core.Record{{"id": "c1", "name": "יוסי כהן", "status": "active"}}, nil
	}
	return nil, nil
}

type recordingHistory struct {
	saved map[string][]core.ChatMessage
	err   error
}

func (h *recordingHistory) AddMessage(_ context.Context, sessionID string, msg core.ChatMessage) error {
	if h.err != nil {
		return h.err
	}
	if h.saved == nil {
		h.saved = make(map[string][]core.ChatMessage)
	}
	h.saved[sessionID] = append(h.saved[sessionID], msg)
	return nil
}

func (h *recordingHistory) GetMessages(_ context.Context, sessionID string, limit int) ([]core.ChatMessage, error) {
	msgs := h.saved[sessionID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func newDispatcher(history core.MessagesRepository) *Dispatcher {
	sessions := session.NewManager(time.Hour, func(id string) *assistant.Assistant {
		return assistant.New(clientSource{}, assistant.WithSessionID(id))
	})
	router := command.New(command.NewCommands(sessions, history))
	return NewDispatcher(router, sessions, history)
}

func TestDispatcher_Query(t *testing.T) {
	history := &recordingHistory{}
	d := newDispatcher(history)

	reply := d.Handle(context.Background(), "s1", "  כמה לקוחות יש?  ")

	assert.Equal(t, core.RoleAssistant, reply.Role)
	assert.Contains(t, reply.Content, "**1** לקוחות")
	assert.NotEmpty(t, reply.ID)

	saved := history.saved["s1"]
	require.Len(t, saved, 2)
	assert.Equal(t, core.RoleUser, saved[0].Role)
	assert.Equal(t, "כמה לקוחות יש?", saved[0].Content)
	assert.Equal(t, reply.ID, saved[1].ID)
}

func TestDispatcher_CommandsAreNotPersisted(t *testing.T) {
	history := &recordingHistory{}
	d := newDispatcher(history)

	reply := d.Handle(context.Background(), "s1", "/status")

	assert.Contains(t, reply.Content, "not loaded")
	assert.Empty(t, history.saved["s1"])
}

func TestDispatcher_HistoryRoundTrip(t *testing.T) {
	d := newDispatcher(&recordingHistory{})
	ctx := context.Background()

	d.Handle(ctx, "s1", "שלום")
	reply := d.Handle(ctx, "s1", "/history")

	assert.Contains(t, reply.Content, "**user**: שלום")
	assert.Contains(t, reply.Content, "**assistant**:")
}

func TestDispatcher_HistoryFailureStillAnswers(t *testing.T) {
	d := newDispatcher(&recordingHistory{err: errors.New("disk full")})

	reply := d.Handle(context.Background(), "s1", "כמה לקוחות יש?")
	assert.Contains(t, reply.Content, "**1** לקוחות")
}

func TestDispatcher_WithoutHistory(t *testing.T) {
	d := newDispatcher(nil)

	reply := d.Handle(context.Background(), "s1", "יוסי כהן")
	assert.Contains(t, reply.Content, "מצאתי! 🎯")
}
