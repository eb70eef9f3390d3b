package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/bandroster/internal/config"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/dberrors"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

// Dialect names the SQL flavour spoken by a Store.
type Dialect string

const (
	DialectSQLite   Dialect = config.DriverSQLite
	DialectPostgres Dialect = config.DriverPostgres
)

// Store is the relational store adapter shared by every repository.
type Store struct {
	DB      *sql.DB
	dialect Dialect
	sb      squirrel.StatementBuilderType
	pool    *pgxpool.Pool

	// txTimeout applies when the caller's context carries no deadline.
	txTimeout time.Duration
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// Open connects to the driver selected in cfg.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg)
	case config.DriverSQLite:
		return NewSQLiteStore(ctx, cfg.GetSQLiteDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func newStore(db *sql.DB, dialect Dialect) *Store {
	var placeholder squirrel.PlaceholderFormat = squirrel.Question
	if dialect == DialectPostgres {
		placeholder = squirrel.Dollar
	}
	return &Store{
		DB:      db,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Builder returns a statement builder using the dialect's placeholders.
func (s *Store) Builder() squirrel.StatementBuilderType {
	return s.sb
}

// Dialect reports which SQL dialect the store speaks.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	err := s.DB.Close()
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

// WithTransaction runs fn inside one transaction and commits only if fn
// succeeds. Application errors returned by fn pass through unchanged;
// driver failures are classified as unique violations or store errors.
func (s *Store) WithTransaction(ctx context.Context, fn TransactionFn) (err error) {
	if s.txTimeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
			defer cancel()
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrStore, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w: rollback failed: %w (after %w)", apperrors.ErrStore, rbErr, err)
		}
		return Classify(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrStore, err)
	}

	return nil
}

// RunTransaction executes the statements in order, atomically.
func (s *Store) RunTransaction(ctx context.Context, statements ...squirrel.Sqlizer) error {
	return s.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for i, stmt := range statements {
			query, args, err := stmt.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build statement %d: %w", i, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("statement %d: %w", i, err)
			}
		}
		return nil
	})
}

// Classify maps a raw driver error onto the store error taxonomy.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsKnown(err):
		return err
	case dberrors.IsUniqueViolation(err):
		logger.Debug().Err(err).Str("constraint", dberrors.ConstraintName(err)).Msg("Unique violation")
		return fmt.Errorf("%w: %w", apperrors.ErrUniqueViolation, err)
	case dberrors.IsForeignKeyViolation(err):
		logger.Warn().Err(err).Str("constraint", dberrors.ConstraintName(err)).Msg("Foreign key violation")
		return fmt.Errorf("%w: foreign key violation: %w", apperrors.ErrStore, err)
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrStore, err)
	}
}
