package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sandevgo/crmchat/internal/core"
	"github.com/sandevgo/crmchat/pkg/log"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidExport wraps schema violations of an import document.
var ErrInvalidExport = errors.New("invalid CRM export")

// maxReportedErrors caps how many schema violations end up in the error.
const maxReportedErrors = 5

//go:embed import_schema.json
var importSchemaJSON []byte

var importSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(importSchemaJSON))
})

// Importer loads a JSON export of the CRM ({"clients": [...], ...}) into the
// local mirror tables.
type Importer struct {
	db       *sql.DB
	progress func(done, total int)
}

func NewImporter(db *sql.DB) *Importer {
	return &Importer{db: db}
}

// WithProgress sets a callback invoked after every written row.
func (i *Importer) WithProgress(fn func(done, total int)) *Importer {
	i.progress = fn
	return i
}

// Import writes every known collection found in r inside one transaction.
// Keys that are not table columns are dropped; nested values are stored as
// JSON text. With replace set, existing rows of imported collections are
// deleted first.
func (i *Importer) Import(ctx context.Context, r io.Reader, replace bool) (map[core.Collection]int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	if err := validateExport(data); err != nil {
		return nil, err
	}

	var doc map[string][]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode import file: %w", err)
	}

	total := 0
	for _, coll := range core.Collections {
		total += len(doc[string(coll)])
	}
	done := 0

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	counts := make(map[core.Collection]int)
	for _, coll := range core.Collections {
		records, ok := doc[string(coll)]
		if !ok {
			continue
		}

		cols, err := tableColumns(ctx, tx, coll)
		if err != nil {
			return nil, err
		}

		if replace {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", coll)); err != nil {
				return nil, fmt.Errorf("failed to clear %s: %w", coll, err)
			}
		}

		for _, rec := range records {
			if err := insertRecord(ctx, tx, coll, cols, rec); err != nil {
				return nil, err
			}
			done++
			if i.progress != nil {
				i.progress(done, total)
			}
		}
		counts[coll] = len(records)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	log.FromCtx(ctx).Info().Interface("counts", counts).Msg("import finished")
	return counts, nil
}

func validateExport(data []byte) error {
	schema, err := importSchema()
	if err != nil {
		return fmt.Errorf("failed to compile import schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to decode import file: %w", err)
	}
	if res.Valid() {
		return nil
	}

	violations := res.Errors()
	msgs := make([]string, 0, maxReportedErrors)
	for _, v := range violations[:min(len(violations), maxReportedErrors)] {
		msgs = append(msgs, v.String())
	}
	if extra := len(violations) - len(msgs); extra > 0 {
		msgs = append(msgs, fmt.Sprintf("and %d more", extra))
	}
	return fmt.Errorf("%w: %s", ErrInvalidExport, strings.Join(msgs, "; "))
}

func tableColumns(ctx context.Context, tx *sql.Tx, coll core.Collection) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", coll))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", coll, err)
	}
	defer rows.Close()

	cols := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = struct{}{}
	}
	return cols, rows.Err()
}

func insertRecord(ctx context.Context, tx *sql.Tx, coll core.Collection, cols map[string]struct{}, rec map[string]any) error {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if _, ok := cols[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	args := make([]any, len(keys))
	for n, k := range keys {
		v, err := columnValue(rec[k])
		if err != nil {
			return fmt.Errorf("failed to encode %s.%s: %w", coll, k, err)
		}
		args[n] = v
	}

	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		coll, strings.Join(keys, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll, err)
	}
	return nil
}

func columnValue(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		// JSON numbers decode as float64; keep integral ids and counts integral
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x), nil
		}
		return x, nil
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return v, nil
}
