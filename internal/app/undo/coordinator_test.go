package undo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
)

// fakeApplier records calls and can fail on a chosen call.
type fakeApplier struct {
	calls  []string
	failOn string
}

func (f *fakeApplier) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeApplier) RestoreStudent(_ context.Context, s models.Student) error {
	return f.record(fmt.Sprintf("restore-student:%d", s.StudentID))
}

func (f *fakeApplier) DeleteStudent(_ context.Context, id int64) error {
	return f.record(fmt.Sprintf("delete-student:%d", id))
}

func (f *fakeApplier) RestoreCompliance(_ context.Context, c models.Compliance) error {
	return f.record(fmt.Sprintf("restore-compliance:%d", c.StudentID))
}

func (f *fakeApplier) RestoreHolding(_ context.Context, h models.Holding) error {
	return f.record(fmt.Sprintf("restore-holding:%s:%d", h.Category, h.UnitID))
}

func (f *fakeApplier) DeleteUnit(_ context.Context, c models.Category, id int64) error {
	return f.record(fmt.Sprintf("delete-unit:%s:%d", c, id))
}

func newTestCoordinator(a *fakeApplier, depth int) (*Coordinator, *int) {
	runs := 0
	run := func(ctx context.Context, fn func(context.Context, Applier) error) error {
		runs++
		return fn(ctx, a)
	}
	return NewCoordinator(run, depth), &runs
}

func TestUndoEmptyStack(t *testing.T) {
	c, runs := newTestCoordinator(&fakeApplier{}, 0)
	if _, err := c.Undo(context.Background()); !errors.Is(err, apperrors.ErrEmptyStack) {
		t.Fatalf("Undo err = %v, want ErrEmptyStack", err)
	}
	if *runs != 0 {
		t.Fatalf("runner should not be called for an empty stack")
	}
}

func TestUndoReplaysMostRecentInOrder(t *testing.T) {
	a := &fakeApplier{}
	c, runs := newTestCoordinator(a, 0)

	c.Push("Add student 1", DeleteStudent{StudentID: 1})
	c.Push("Delete student 2",
		RestoreStudent{Student: models.Student{StudentID: 2}},
		RestoreCompliance{Compliance: models.Compliance{StudentID: 2}},
		RestoreHolding{Holding: models.Holding{Category: models.CategoryShako, UnitID: 7}},
	)

	if label, ok := c.Peek(); !ok || label != "Delete student 2" {
		t.Fatalf("Peek = %q, %v", label, ok)
	}

	label, err := c.Undo(context.Background())
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if label != "Delete student 2" {
		t.Fatalf("label = %q", label)
	}
	want := []string{"restore-student:2", "restore-compliance:2", "restore-holding:shako:7"}
	if !reflect.DeepEqual(a.calls, want) {
		t.Fatalf("calls = %v, want %v", a.calls, want)
	}
	if *runs != 1 {
		t.Fatalf("runs = %d, want one transaction", *runs)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestUndoFailureStaysPopped(t *testing.T) {
	a := &fakeApplier{failOn: "delete-unit:instrument:3"}
	c, _ := newTestCoordinator(a, 0)
	c.Push("Add instrument 3", DeleteUnit{Category: models.CategoryInstrument, UnitID: 3})

	label, err := c.Undo(context.Background())
	if !errors.Is(err, apperrors.ErrUndoFailed) {
		t.Fatalf("Undo err = %v, want ErrUndoFailed", err)
	}
	if label != "Add instrument 3" {
		t.Fatalf("label = %q", label)
	}
	if c.Len() != 0 {
		t.Fatalf("failed entry must not be pushed back")
	}
	if _, err := c.Undo(context.Background()); !errors.Is(err, apperrors.ErrEmptyStack) {
		t.Fatalf("second Undo err = %v, want ErrEmptyStack", err)
	}
}

func TestMaxDepthDiscardsOldest(t *testing.T) {
	c, _ := newTestCoordinator(&fakeApplier{}, 2)
	c.Push("one", DeleteStudent{StudentID: 1})
	c.Push("two", DeleteStudent{StudentID: 2})
	c.Push("three", DeleteStudent{StudentID: 3})

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	for _, want := range []string{"three", "two"} {
		label, err := c.Undo(context.Background())
		if err != nil || label != want {
			t.Fatalf("Undo = %q, %v; want %q", label, err, want)
		}
	}
}

func TestClear(t *testing.T) {
	c, _ := newTestCoordinator(&fakeApplier{}, 0)
	c.Push("one", DeleteStudent{StudentID: 1})
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len = %d after Clear", c.Len())
	}
	if _, ok := c.Peek(); ok {
		t.Fatalf("Peek should report empty after Clear")
	}
}

func TestCommandStrings(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{DeleteStudent{StudentID: 4}, "delete student 4"},
		{DeleteUnit{Category: models.CategoryUniform, UnitID: 9}, "delete uniform 9"},
		{RestoreHolding{Holding: models.Holding{Category: models.CategoryShako, UnitID: 2}}, "restore shako 2 holding"},
	}
	for _, tc := range cases {
		if got := tc.cmd.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}
