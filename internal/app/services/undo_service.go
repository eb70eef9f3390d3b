package services

import (
	"context"
)

// UndoStatus describes what Undo would do next.
type UndoStatus struct {
	Depth int    `json:"depth"`
	Ready bool   `json:"ready"`
	Label string `json:"label,omitempty"`
}

// UndoService exposes the session's undo stack
type UndoService struct {
	session *Session
}

// NewUndoService creates a new undo service instance
func NewUndoService(session *Session) *UndoService {
	return &UndoService{session: session}
}

// Undo reverses the most recent committed operation and returns its label.
func (s *UndoService) Undo(ctx context.Context) (string, error) {
	s.session.mu.Lock()
	defer s.session.mu.Unlock()

	label, err := s.session.undo.Undo(ctx)
	s.session.metrics.ObserveOperation("undo", err)
	s.session.metrics.SetUndoDepth(s.session.undo.Len())
	return label, err
}

// Status reports the stack depth and the label on top.
func (s *UndoService) Status() UndoStatus {
	label, ok := s.session.undo.Peek()
	return UndoStatus{Depth: s.session.undo.Len(), Ready: ok, Label: label}
}
