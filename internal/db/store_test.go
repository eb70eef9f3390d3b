package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/bandroster/internal/config"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, config.SQLiteDSN(filepath.Join(t.TempDir(), "store.db")))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.DB.ExecContext(ctx, "CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return store
}

func countItems(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestRunTransactionCommits(t *testing.T) {
	s := newTestStore(t)
	sb := s.Builder()
	err := s.RunTransaction(context.Background(),
		sb.Insert("items").Columns("name").Values("a"),
		sb.Insert("items").Columns("name").Values("b"),
	)
	if err != nil {
		t.Fatalf("RunTransaction: %v", err)
	}
	if n := countItems(t, s); n != 2 {
		t.Fatalf("items = %d, want 2", n)
	}
}

func TestRunTransactionRollsBackOnUniqueViolation(t *testing.T) {
	s := newTestStore(t)
	sb := s.Builder()
	err := s.RunTransaction(context.Background(),
		sb.Insert("items").Columns("name").Values("a"),
		sb.Insert("items").Columns("name").Values("a"),
	)
	if !errors.Is(err, apperrors.ErrUniqueViolation) {
		t.Fatalf("err = %v, want ErrUniqueViolation", err)
	}
	if n := countItems(t, s); n != 0 {
		t.Fatalf("items = %d after rollback, want 0", n)
	}
}

func TestRunTransactionStoreError(t *testing.T) {
	s := newTestStore(t)
	err := s.RunTransaction(context.Background(), squirrel.Expr("INSERT INTO missing (x) VALUES (1)"))
	if !errors.Is(err, apperrors.ErrStore) {
		t.Fatalf("err = %v, want ErrStore", err)
	}
}

func TestWithTransactionPassesApplicationErrors(t *testing.T) {
	s := newTestStore(t)
	err := s.WithTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO items (name) VALUES ('x')"); err != nil {
			return err
		}
		return apperrors.ErrAlreadyAssigned
	})
	if !errors.Is(err, apperrors.ErrAlreadyAssigned) || errors.Is(err, apperrors.ErrStore) {
		t.Fatalf("err = %v, want ErrAlreadyAssigned only", err)
	}
	if n := countItems(t, s); n != 0 {
		t.Fatalf("items = %d after rollback, want 0", n)
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.DB.ExecContext(ctx, "CREATE TABLE refs (id INTEGER PRIMARY KEY, item_id INTEGER REFERENCES items(id))"); err != nil {
		t.Fatalf("create refs: %v", err)
	}
	if _, err := s.DB.ExecContext(ctx, "INSERT INTO refs (item_id) VALUES (42)"); err == nil {
		t.Fatalf("dangling reference accepted")
	}
}

func TestClassify(t *testing.T) {
	if Classify(nil) != nil {
		t.Fatalf("Classify(nil) should be nil")
	}
	if err := Classify(apperrors.ErrSectionMismatch); err != apperrors.ErrSectionMismatch {
		t.Fatalf("known error rewrapped: %v", err)
	}
	if err := Classify(errors.New("disk I/O error")); !errors.Is(err, apperrors.ErrStore) {
		t.Fatalf("raw error = %v, want ErrStore", err)
	}
}

func TestBuilderPlaceholders(t *testing.T) {
	cases := []struct {
		dialect Dialect
		want    string
	}{
		{DialectSQLite, "SELECT name FROM items WHERE id = ?"},
		{DialectPostgres, "SELECT name FROM items WHERE id = $1"},
	}
	for _, tc := range cases {
		t.Run(string(tc.dialect), func(t *testing.T) {
			s := newStore(nil, tc.dialect)
			if s.Dialect() != tc.dialect {
				t.Fatalf("Dialect = %v, want %v", s.Dialect(), tc.dialect)
			}
			query, args, err := s.Builder().Select("name").From("items").Where(squirrel.Eq{"id": 7}).ToSql()
			if err != nil {
				t.Fatalf("ToSql: %v", err)
			}
			if query != tc.want {
				t.Fatalf("query = %q, want %q", query, tc.want)
			}
			if len(args) != 1 || args[0] != 7 {
				t.Fatalf("args = %v", args)
			}
		})
	}
}
