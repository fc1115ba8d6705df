package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type memSource struct {
	mu      sync.Mutex
	rows    map[core.Collection][]core.Record
	fail    error
	fetches int
}

func (s *memSource) FetchRows(_ context.Context, c core.Collection, limit int) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.fail != nil {
		return nil, s.fail
	}
	rows := s.rows[c]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *memSource) setFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func newSource() *memSource {
	return &memSource{rows: map[core.Collection][]core.Record{
		core.Clients: {
			{"id": "c1", "name": "יוסי כהן", "company": "כהן בע\"מ", "email": "yossi@example.com", "status": "active", "created_at": "2025-03-01"},
			{"id": "c2", "name": "דנה לוי", "status": "pending"},
		},
		core.Invoices: {
			{"id": "i1", "client_id": "c1", "status": "paid", "total_amount": 1200.0},
			{"id": "i2", "client_id": "c2", "status": "pending", "total_amount": 300.0},
		},
		core.Tasks: {
			{"id": "t1", "title": "לשלוח הצעה", "status": "pending"},
			{"id": "t2", "title": "חוזה", "status": "completed"},
		},
		core.Meetings: {
			{"id": "m1", "title": "היכרות", "scheduled_at": testNow.Add(24 * time.Hour)},
		},
	}}
}

func newAssistant(src core.RowSource) *Assistant {
	return New(src,
		WithClock(core.FixedClock(testNow)),
		WithIDs(func() string { return "msg-1" }),
		WithSessionID("test"),
	)
}

func TestAssistant_ProcessQuery(t *testing.T) {
	a := newAssistant(newSource())

	tests := []struct {
		name     string
		query    string
		contains string
	}{
		{name: "client_stats_wins_over_search", query: "כמה לקוחות יש?", contains: "• סה\"כ: **2** לקוחות"},
		{name: "bare_known_name_is_client_search", query: "יוסי כהן", contains: "מצאתי! 🎯"},
		{name: "revenue_ignores_period", query: "מה ההכנסות החודש?", contains: "• סה\"כ: **₪1,500**"},
		{name: "pending_tasks_plural", query: "משימות ממתינות", contains: "יש **1** משימות פתוחות"},
		{name: "completed_tasks_plural", query: "משימות שהושלמו", contains: "יש **1** משימות שהושלמו"},
		{name: "meeting_window_capped", query: "פגישות ב-200000 ימים", contains: "יש **1** פגישות ב-3650 הימים"},
		{name: "unknown_falls_back_to_general", query: "מזג האוויר מחר", contains: "לא בטוח שהבנתי"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := a.ProcessQuery(context.Background(), tt.query)
			assert.Contains(t, msg.Content, tt.contains)
		})
	}
}

func TestAssistant_MessageShape(t *testing.T) {
	msg := newAssistant(newSource()).ProcessQuery(context.Background(), "שלום")

	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, core.RoleAssistant, msg.Role)
	assert.True(t, msg.Timestamp.Equal(testNow))
	assert.Nil(t, msg.Data)
	assert.NotEmpty(t, msg.Content)
}

func TestAssistant_InitializeOnce(t *testing.T) {
	src := newSource()
	a := newAssistant(src)

	require.NoError(t, a.Initialize(context.Background()))
	require.NoError(t, a.Initialize(context.Background()))
	a.ProcessQuery(context.Background(), "כמה לקוחות יש?")

	assert.Equal(t, len(core.Collections), src.fetches)
	assert.True(t, a.Status().Loaded)
	assert.Equal(t, 2, a.Status().Counts[core.Clients])
}

func TestAssistant_FailedLoad(t *testing.T) {
	src := newSource()
	src.setFail(errors.New("connection refused"))
	a := newAssistant(src)

	assert.Error(t, a.Initialize(context.Background()))

	msg := a.ProcessQuery(context.Background(), "כמה לקוחות יש?")
	assert.Contains(t, msg.Content, "• סה\"כ: **0** לקוחות")
	assert.Contains(t, msg.Content, "(0%)")
	assert.False(t, a.Status().Loaded)

	src.setFail(nil)
	require.NoError(t, a.Initialize(context.Background()))
	msg = a.ProcessQuery(context.Background(), "כמה לקוחות יש?")
	assert.Contains(t, msg.Content, "• סה\"כ: **2** לקוחות")
}

func TestAssistant_RefreshPicksUpNewRows(t *testing.T) {
	src := newSource()
	a := newAssistant(src)
	require.NoError(t, a.Initialize(context.Background()))

	src.mu.Lock()
	src.rows[core.Clients] = append(src.rows[core.Clients], core.Record{"id": "c3", "name": "משה ברק", "status": "active"})
	src.mu.Unlock()

	assert.Contains(t, a.ProcessQuery(context.Background(), "כמה לקוחות יש?").Content, "**2** לקוחות")
	require.NoError(t, a.Refresh(context.Background()))
	assert.Contains(t, a.ProcessQuery(context.Background(), "כמה לקוחות יש?").Content, "**3** לקוחות")
}
