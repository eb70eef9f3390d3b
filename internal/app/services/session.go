package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/yigit/bandroster/internal/app/repositories"
	"github.com/yigit/bandroster/internal/app/undo"
	"github.com/yigit/bandroster/internal/db"
	"github.com/yigit/bandroster/internal/pkg/helpers"
	"github.com/yigit/bandroster/internal/pkg/logger"
	"github.com/yigit/bandroster/internal/pkg/metrics"
)

// Session owns the store, the undo stack and the clock for one running
// process. Every mutation and undo runs under its mutex.
type Session struct {
	mu      sync.Mutex
	store   *db.Store
	repos   *repositories.Repositories
	undo    *undo.Coordinator
	metrics *metrics.Metrics
	now     func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithMetrics publishes operation counters and undo depth.
func WithMetrics(m *metrics.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithUndoDepth caps the undo stack; 0 keeps every entry.
func WithUndoDepth(depth int) SessionOption {
	return func(s *Session) { s.undo = undo.NewCoordinator(s.runUndo, depth) }
}

// NewSession binds repositories and the undo coordinator to store.
func NewSession(store *db.Store, opts ...SessionOption) *Session {
	s := &Session{
		store: store,
		repos: repositories.NewRepositories(store.DB, store.Builder()),
		now:   time.Now,
	}
	s.undo = undo.NewCoordinator(s.runUndo, 0)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories returns repositories bound to the connection pool, for reads.
func (s *Session) Repositories() *repositories.Repositories {
	return s.repos
}

// Close releases the store.
func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) today() string {
	return helpers.FormatDate(s.now())
}

// mutation is the body of an engine operation. It returns the undo label and
// the commands that reverse what it wrote.
type mutation func(ctx context.Context, repos *repositories.Repositories) (label string, cmds []undo.Command, err error)

// mutate runs fn in one transaction and records its undo entry on commit.
func (s *Session) mutate(ctx context.Context, operation string, fn mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var label string
	var cmds []undo.Command
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		label, cmds, err = fn(ctx, s.repos.WithTx(tx))
		return err
	})
	s.metrics.ObserveOperation(operation, err)
	if err != nil {
		logger.Warn().Err(err).Str("operation", operation).Msg("Operation rolled back")
		return err
	}

	s.undo.Push(label, cmds...)
	s.metrics.SetUndoDepth(s.undo.Len())
	logger.Info().Str("operation", operation).Str("label", label).Msg("Operation committed")
	return nil
}

// runUndo binds undo replay to transaction-scoped repositories.
func (s *Session) runUndo(ctx context.Context, fn func(ctx context.Context, a undo.Applier) error) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.repos.WithTx(tx))
	})
}
