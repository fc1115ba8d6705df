// Package postgres opens a read connection to an existing CRM database.
// The schema is owned by the CRM itself, so no migrations run here.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/sandevgo/crmchat/pkg/retry"
)

func Open(ctx context.Context, dsn string, retrier *retry.Retrier) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(8)

	err = retrier.Do(ctx, func() error {
		if err := db.PingContext(ctx); err != nil {
			if isFatal(err) {
				return retry.Permanent(err)
			}
			log.FromCtx(ctx).Warn().Err(err).Msg("postgres not reachable yet")
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// isFatal reports errors that a later ping cannot fix: bad credentials
// (class 28) and a missing database (class 3D).
func isFatal(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Class() {
	case "28", "3D":
		return true
	}
	return false
}
