package test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sandevgo/crmchat/internal/storage/sqlite"
	"github.com/stretchr/testify/require"
)

const (
	ExportFixture = "./testdata/crm_export.json"
)

func GetExportFixturePath(t *testing.T) string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)

	path := filepath.Join(testDir, ExportFixture)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("Fixture not found at %s: %v", path, err)
	}
	return path
}

// NewImportedDB creates a migrated sqlite database in a temp dir and loads
// the export fixture into it.
func NewImportedDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewDB(ctx, filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f, err := os.Open(GetExportFixturePath(t))
	require.NoError(t, err)
	defer f.Close()

	_, err = sqlite.NewImporter(db).Import(ctx, f, false)
	require.NoError(t, err)
	return db
}
