package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/bandroster/internal/db"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var migrationFiles embed.FS

// Migrator applies the embedded schema for the store's dialect.
type Migrator struct {
	store *db.Store
	files fs.FS
	dir   string
}

// NewMigrator creates a new migrator
func NewMigrator(store *db.Store) *Migrator {
	return &Migrator{
		store: store,
		files: migrationFiles,
		dir:   path.Join("sql", string(store.Dialect())),
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`

	if _, err := m.store.DB.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.store.Builder().
		Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var count int
	if err := m.store.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Migrate applies every pending migration in file name order.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	entries, err := fs.ReadDir(m.files, m.dir)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, name := range sqlFiles {
		if err := m.apply(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// apply runs a single migration file, e.g. "001_init.sql" is version "001".
func (m *Migrator) apply(ctx context.Context, filename string) error {
	version := strings.Split(filename, "_")[0]

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().Str("migration", filename).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, path.Join(m.dir, filename))
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	record := m.store.Builder().
		Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC().Format(time.RFC3339))

	err = m.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range splitStatements(string(content)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("error occurred during SQL migration execution: %w", err)
			}
		}
		query, args, err := record.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build migration record: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migration %s: %w", filename, err)
	}

	logger.Info().Str("migration", filename).Msg("Migration file successfully applied")
	return nil
}

// splitStatements splits a migration file on statement terminators.
// Migration files must not contain semicolons inside literals.
func splitStatements(content string) []string {
	var out []string
	for _, part := range strings.Split(content, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
