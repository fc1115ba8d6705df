// Package session keeps one assistant per chat session.
package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sandevgo/crmchat/internal/metrics"
	"github.com/sandevgo/crmchat/internal/service/assistant"
)

// Factory builds the assistant for a new session.
type Factory func(sessionID string) *assistant.Assistant

// Manager expires idle sessions after ttl. Every Get extends the session's
// lifetime.
type Manager struct {
	cache   *cache.Cache
	ttl     time.Duration
	factory Factory
	mu      sync.Mutex
}

func NewManager(ttl time.Duration, factory Factory) *Manager {
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}

	m := &Manager{
		cache:   cache.New(ttl, cleanup),
		ttl:     ttl,
		factory: factory,
	}
	m.cache.OnEvicted(func(string, interface{}) {
		metrics.SetSessions(m.cache.ItemCount())
	})
	return m
}

func (m *Manager) Get(sessionID string) *assistant.Assistant {
	m.mu.Lock()
	defer m.mu.Unlock()

	if x, found := m.cache.Get(sessionID); found {
		a := x.(*assistant.Assistant)
		m.cache.Set(sessionID, a, cache.DefaultExpiration)
		return a
	}

	a := m.factory(sessionID)
	m.cache.Set(sessionID, a, cache.DefaultExpiration)
	metrics.SetSessions(m.cache.ItemCount())
	return a
}

// Lookup returns the session's assistant without creating one.
func (m *Manager) Lookup(sessionID string) (*assistant.Assistant, bool) {
	if x, found := m.cache.Get(sessionID); found {
		return x.(*assistant.Assistant), true
	}
	return nil, false
}

func (m *Manager) Drop(sessionID string) {
	m.cache.Delete(sessionID)
}

func (m *Manager) Count() int {
	return m.cache.ItemCount()
}
