// Package assistant answers free-text CRM questions for one chat session.
package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/metrics"
	"github.com/sandevgo/crmchat/internal/service/datacache"
	"github.com/sandevgo/crmchat/internal/service/intent"
	"github.com/sandevgo/crmchat/internal/service/match"
	"github.com/sandevgo/crmchat/internal/service/respond"
	"github.com/sandevgo/crmchat/pkg/log"
)

const failureText = "מצטער, נתקלתי בבעיה בעיבוד השאלה. נסה שוב בעוד רגע."

type Option func(*Assistant)

func WithClock(clock core.Clock) Option {
	return func(a *Assistant) { a.clock = clock }
}

// WithIDs replaces the message id generator.
func WithIDs(next func() string) Option {
	return func(a *Assistant) { a.newID = next }
}

// WithSessionID tags log lines with the owning session.
func WithSessionID(id string) Option {
	return func(a *Assistant) { a.sessionID = id }
}

type Assistant struct {
	cache     *datacache.Cache
	clock     core.Clock
	newID     func() string
	sessionID string
}

func New(src core.RowSource, opts ...Option) *Assistant {
	a := &Assistant{
		clock: core.SystemClock{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cache = datacache.New(src, a.clock)
	return a
}

// Initialize loads the dataset once. Calling it again after a success is a
// no-op; after a failure it retries the whole batch.
func (a *Assistant) Initialize(ctx context.Context) error {
	_, err := a.cache.Load(ctx)
	return err
}

func (a *Assistant) Refresh(ctx context.Context) error {
	_, err := a.cache.Refresh(ctx)
	return err
}

func (a *Assistant) Status() datacache.Status {
	return a.cache.Status()
}

// ProcessQuery classifies text and renders the answer. It never fails: a
// dataset that cannot be loaded is treated as empty.
func (a *Assistant) ProcessQuery(ctx context.Context, text string) (msg core.ChatMessage) {
	logger := log.FromCtx(ctx).With().Str("session", a.sessionID).Logger()

	data, err := a.cache.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("answering without CRM data")
		data = &core.Dataset{}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("query", text).Msg("responder panicked")
			msg = a.reply(failureText)
		}
	}()

	in := intent.New(knownClients(data.Clients)).Classify(text)
	logger.Debug().Str("intent", string(in.Kind)).Str("query", text).Msg("classified query")
	metrics.RecordQuery(string(in.Kind))

	return a.reply(respond.New(data, a.clock).Respond(in))
}

func (a *Assistant) reply(content string) core.ChatMessage {
	return core.ChatMessage{
		ID:        a.newID(),
		Role:      core.RoleAssistant,
		Content:   content,
		Timestamp: a.clock.Now(),
	}
}

type knownClients []core.Record

func (k knownClients) HasClient(name string) bool {
	_, ok := match.FindByName(k, name)
	return ok
}
