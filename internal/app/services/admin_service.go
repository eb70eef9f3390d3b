package services

import (
	"context"
	"database/sql"

	"github.com/yigit/bandroster/internal/pkg/logger"
)

// AdminService handles whole-database maintenance
type AdminService struct {
	session *Session
}

// NewAdminService creates a new admin service instance
func NewAdminService(session *Session) *AdminService {
	return &AdminService{session: session}
}

// Reset deletes every student, compliance record and equipment unit, keeps
// the instrument catalog, and clears the undo stack. It cannot be undone.
func (s *AdminService) Reset(ctx context.Context) error {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	err := s.session.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		repos := s.session.repos.WithTx(tx)
		if err := repos.Equipment.DeleteAll(ctx); err != nil {
			return err
		}
		if err := repos.Compliance.DeleteAll(ctx); err != nil {
			return err
		}
		return repos.Students.DeleteAll(ctx)
	})
	s.session.metrics.ObserveOperation("reset", err)
	if err != nil {
		return err
	}

	s.session.undo.Clear()
	s.session.metrics.SetUndoDepth(0)
	logger.Warn().Msg("All roster and equipment data reset")
	return nil
}
