package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

// OpenForTest opens a migrated database in a per-test temp dir (test-only).
func OpenForTest(t testing.TB) *DB {
	t.Helper()

	d, err := Open(Config{Path: filepath.Join(t.TempDir(), "dashboard.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}
