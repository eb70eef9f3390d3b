package migrations

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yigit/bandroster/internal/config"
	"github.com/yigit/bandroster/internal/db"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := db.NewSQLiteStore(ctx, config.SQLiteDSN(filepath.Join(t.TempDir(), "migrate.db")))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	m := NewMigrator(store)
	for i := 0; i < 2; i++ {
		if err := m.Migrate(ctx); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}

	var versions int
	if err := store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&versions); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if versions != 1 {
		t.Fatalf("schema_migrations rows = %d, want 1", versions)
	}

	for _, table := range []string{"students", "compliance", "instrument_types", "instruments", "uniforms", "shakos"} {
		var n int
		err := store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		if err != nil || n != 1 {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestHolderAndDateMustAgree(t *testing.T) {
	ctx := context.Background()
	store, err := db.NewSQLiteStore(ctx, config.SQLiteDSN(filepath.Join(t.TempDir(), "check.db")))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()
	if err := NewMigrator(store).Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if _, err := store.DB.ExecContext(ctx,
		"INSERT INTO students (student_id, fname, lname, section, updated_at) VALUES (1, 'A', 'B', 'BRASS', '2026-01-01')"); err != nil {
		t.Fatalf("insert student: %v", err)
	}
	if _, err := store.DB.ExecContext(ctx, "INSERT INTO shakos (size, checked_out_to) VALUES ('7', 1)"); err == nil {
		t.Fatalf("holder without date accepted")
	}
	if _, err := store.DB.ExecContext(ctx, "INSERT INTO shakos (size, checked_out_date) VALUES ('7', '2026-01-01')"); err == nil {
		t.Fatalf("date without holder accepted")
	}
	if _, err := store.DB.ExecContext(ctx,
		"INSERT INTO shakos (size, checked_out_to, checked_out_date) VALUES ('7', 1, '2026-01-01')"); err != nil {
		t.Fatalf("complete holding rejected: %v", err)
	}
	if _, err := store.DB.ExecContext(ctx,
		"INSERT INTO shakos (size, checked_out_to, checked_out_date) VALUES ('7 1/8', 1, '2026-01-01')"); err == nil {
		t.Fatalf("second shako for one student accepted")
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\n  CREATE INDEX i ON a (x);\n")
	want := []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitStatements = %q, want %q", got, want)
	}
}
