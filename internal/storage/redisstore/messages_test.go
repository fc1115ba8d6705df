package redisstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestMessagesRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	repo := NewMessagesRepo(client, time.Hour)

	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for i, content := range []string{"כמה לקוחות יש?", "יש 3 לקוחות", "תודה"} {
		require.NoError(t, repo.AddMessage(ctx, "s1", core.ChatMessage{
			ID:        fmt.Sprintf("m%d", i),
			Role:      core.RoleUser,
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.AddMessage(ctx, "s2", core.ChatMessage{ID: "x", Content: "other"}))

	got, err := repo.GetMessages(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "יש 3 לקוחות", got[0].Content)
	assert.Equal(t, "תודה", got[1].Content)
	assert.True(t, got[1].Timestamp.Equal(base.Add(2*time.Minute)))

	none, err := repo.GetMessages(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMessagesRepo_TrimAndExpire(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	repo := NewMessagesRepo(client, time.Hour)

	for i := 0; i < maxMessages+5; i++ {
		require.NoError(t, repo.AddMessage(ctx, "s1", core.ChatMessage{ID: fmt.Sprint(i), Content: fmt.Sprint(i)}))
	}

	n, err := client.LLen(ctx, keyPrefix+"s1").Result()
	require.NoError(t, err)
	assert.EqualValues(t, maxMessages, n)

	got, err := repo.GetMessages(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fmt.Sprint(maxMessages+4), got[0].Content)

	mr.FastForward(2 * time.Hour)
	got, err = repo.GetMessages(ctx, "s1", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMessagesRepo_SkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	repo := NewMessagesRepo(client, 0)

	_, err := mr.RPush(keyPrefix+"s1", "not json")
	require.NoError(t, err)
	require.NoError(t, repo.AddMessage(ctx, "s1", core.ChatMessage{ID: "ok", Content: "שלום"}))

	got, err := repo.GetMessages(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "שלום", got[0].Content)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	fast := retry.NewRetrier(&retry.Config{MaxRetries: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	client, err := Open(context.Background(), "redis://"+mr.Addr()+"/0", fast)
	require.NoError(t, err)
	client.Close()

	_, err = Open(context.Background(), "not a url", fast)
	assert.Error(t, err)
}
