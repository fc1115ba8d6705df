// Package rows reads CRM collections from any database/sql backend.
package rows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/log"
)

var ErrUnknownCollection = errors.New("unknown collection")

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

type Source struct {
	db      *sql.DB
	dialect Dialect
}

func NewSource(db *sql.DB, dialect Dialect) *Source {
	return &Source{db: db, dialect: dialect}
}

func (s *Source) FetchRows(ctx context.Context, c core.Collection, limit int) ([]core.Record, error) {
	// Table names are interpolated, so only the fixed collection set is allowed.
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	query := fmt.Sprintf("SELECT * FROM %s LIMIT %s", c, s.placeholder())
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", c, err)
	}

	var res []core.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", c, err)
		}

		rec := make(core.Record, len(cols))
		for i, col := range cols {
			// drivers hand back TEXT and NUMERIC as []byte
			if b, ok := vals[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = vals[i]
		}
		res = append(res, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Str("collection", string(c)).Int("count", len(res)).Msg("loaded rows")
	return res, nil
}

func (s *Source) placeholder() string {
	if s.dialect == Postgres {
		return "$1"
	}
	return "?"
}
