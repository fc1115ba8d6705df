// Package redisstore keeps chat history in Redis so that several crmchat
// processes behind one HTTP endpoint share it.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/sandevgo/crmchat/pkg/retry"
)

const (
	keyPrefix = "crmchat:history:"
	// maxMessages is how many messages a session keeps; older ones are trimmed.
	maxMessages = 200
)

// Open connects to the Redis server at url (redis://[:password@]host:port/db)
// and waits for it to answer a PING.
func Open(ctx context.Context, url string, retrier *retry.Retrier) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	err = retrier.Do(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("redis not reachable yet")
			return err
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// MessagesRepo stores each session as a JSON list, newest last. Every write
// renews the session's expiry.
type MessagesRepo struct {
	client    redis.Cmdable
	retention time.Duration
}

func NewMessagesRepo(client redis.Cmdable, retention time.Duration) *MessagesRepo {
	return &MessagesRepo{client: client, retention: retention}
}

func (r *MessagesRepo) AddMessage(ctx context.Context, sessionID string, msg core.ChatMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	msg.Timestamp = msg.Timestamp.UTC()

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	key := keyPrefix + sessionID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.LTrim(ctx, key, -maxMessages, -1)
		if r.retention > 0 {
			pipe.Expire(ctx, key, r.retention)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

// GetMessages returns the last limit messages of the session, oldest first.
func (r *MessagesRepo) GetMessages(ctx context.Context, sessionID string, limit int) ([]core.ChatMessage, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := r.client.LRange(ctx, keyPrefix+sessionID, int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	messages := make([]core.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg core.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("session", sessionID).Msg("skipping unreadable history entry")
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
