package undo

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

// Entry is the compensating command set of one committed operation.
type Entry struct {
	Label    string
	Commands []Command
}

// Runner executes fn atomically, committing only if it returns nil.
type Runner func(ctx context.Context, fn func(ctx context.Context, a Applier) error) error

// Coordinator keeps a LIFO stack of undo entries.
type Coordinator struct {
	mu       sync.Mutex
	entries  []Entry
	maxDepth int
	run      Runner
}

// NewCoordinator creates a coordinator; maxDepth 0 keeps every entry.
func NewCoordinator(run Runner, maxDepth int) *Coordinator {
	return &Coordinator{run: run, maxDepth: maxDepth}
}

// Push records the compensating commands of a committed operation.
func (c *Coordinator) Push(label string, commands ...Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, Entry{Label: label, Commands: commands})
	if c.maxDepth > 0 && len(c.entries) > c.maxDepth {
		dropped := len(c.entries) - c.maxDepth
		c.entries = append([]Entry(nil), c.entries[dropped:]...)
	}
}

// Undo pops the most recent entry and replays its commands in order inside
// one transaction. A failed replay is not retried and the entry stays popped.
func (c *Coordinator) Undo(ctx context.Context) (string, error) {
	entry, ok := c.pop()
	if !ok {
		return "", apperrors.ErrEmptyStack
	}

	err := c.run(ctx, func(ctx context.Context, a Applier) error {
		for _, cmd := range entry.Commands {
			if err := cmd.Apply(ctx, a); err != nil {
				return fmt.Errorf("%s: %w", cmd, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("label", entry.Label).Msg("Undo failed")
		return entry.Label, fmt.Errorf("%w: %s: %w", apperrors.ErrUndoFailed, entry.Label, err)
	}

	logger.Info().Str("label", entry.Label).Int("commands", len(entry.Commands)).Msg("Undo applied")
	return entry.Label, nil
}

func (c *Coordinator) pop() (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return Entry{}, false
	}
	last := c.entries[len(c.entries)-1]
	c.entries[len(c.entries)-1] = Entry{}
	c.entries = c.entries[:len(c.entries)-1]
	return last, true
}

// Clear drops every entry.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Len returns the number of undoable operations.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Peek returns the label of the next entry Undo would replay.
func (c *Coordinator) Peek() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return "", false
	}
	return c.entries[len(c.entries)-1].Label, true
}
