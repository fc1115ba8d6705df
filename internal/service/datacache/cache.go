// Package datacache holds the per-session snapshot of the CRM collections.
package datacache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/internal/metrics"
	"github.com/sandevgo/crmchat/pkg/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var ErrNotLoaded = errors.New("dataset not loaded")

const loadKey = "dataset"

// Status describes the current snapshot.
type Status struct {
	Loaded   bool
	LoadedAt time.Time
	Counts   map[core.Collection]int
}

// Cache loads all collections from a RowSource as one batch. A batch is
// either stored whole or not at all, and concurrent loads share one batch.
type Cache struct {
	src   core.RowSource
	clock core.Clock
	group singleflight.Group

	mu       sync.RWMutex
	data     *core.Dataset
	loadedAt time.Time
}

func New(src core.RowSource, clock core.Clock) *Cache {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Cache{src: src, clock: clock}
}

// Load returns the snapshot, fetching it first if no batch has succeeded
// yet. Failed batches are not remembered, so the next call retries.
func (c *Cache) Load(ctx context.Context) (*core.Dataset, error) {
	if d, err := c.Snapshot(); err == nil {
		return d, nil
	}
	return c.load(ctx, false)
}

// Refresh fetches a new batch even when one is loaded. On failure the
// previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) (*core.Dataset, error) {
	return c.load(ctx, true)
}

// Snapshot returns the stored batch without fetching, or ErrNotLoaded.
func (c *Cache) Snapshot() (*core.Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil, ErrNotLoaded
	}
	return c.data, nil
}

func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return Status{}
	}
	return Status{Loaded: true, LoadedAt: c.loadedAt, Counts: c.data.Counts()}
}

func (c *Cache) load(ctx context.Context, force bool) (*core.Dataset, error) {
	// The batch outlives any single caller; one caller giving up must not
	// fail the others waiting on it.
	batchCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(loadKey, func() (any, error) {
		if !force {
			if d, err := c.Snapshot(); err == nil {
				return d, nil
			}
		}
		return c.fetchAll(batchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*core.Dataset), nil
	}
}

func (c *Cache) fetchAll(ctx context.Context) (*core.Dataset, error) {
	logger := log.FromCtx(ctx)
	start := time.Now()

	rows := make([][]core.Record, len(core.Collections))
	errs := make([]error, len(core.Collections))

	var g errgroup.Group
	for i, coll := range core.Collections {
		g.Go(func() error {
			recs, err := c.src.FetchRows(ctx, coll, coll.Cap())
			if err != nil {
				errs[i] = fmt.Errorf("failed to fetch %s: %w", coll, err)
				return errs[i]
			}
			rows[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	metrics.RecordCacheLoad(time.Since(start), err)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load crm dataset")
		return nil, err
	}

	d := &core.Dataset{}
	for i, coll := range core.Collections {
		d.Set(coll, rows[i])
	}

	c.mu.Lock()
	c.data = d
	c.loadedAt = c.clock.Now()
	c.mu.Unlock()

	logger.Info().
		Int("clients", len(d.Clients)).
		Int("invoices", len(d.Invoices)).
		Dur("took", time.Since(start)).
		Msg("crm dataset loaded")
	return d, nil
}
