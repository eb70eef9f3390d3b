package undo

import (
	"context"
	"fmt"

	"github.com/yigit/bandroster/internal/app/models"
)

// Applier performs compensating writes. Production binds it to
// transaction-scoped repositories.
type Applier interface {
	RestoreStudent(ctx context.Context, s models.Student) error
	DeleteStudent(ctx context.Context, studentID int64) error
	RestoreCompliance(ctx context.Context, c models.Compliance) error
	RestoreHolding(ctx context.Context, h models.Holding) error
	DeleteUnit(ctx context.Context, category models.Category, unitID int64) error
}

// Command is one compensating step with the state it restores captured.
type Command interface {
	Apply(ctx context.Context, a Applier) error
	String() string
}

// RestoreStudent puts a student row back exactly as captured.
type RestoreStudent struct {
	Student models.Student
}

// Apply runs the step against a.
func (c RestoreStudent) Apply(ctx context.Context, a Applier) error {
	return a.RestoreStudent(ctx, c.Student)
}

// String describes the step for logs.
func (c RestoreStudent) String() string {
	return fmt.Sprintf("restore student %d", c.Student.StudentID)
}

// DeleteStudent removes a student that an operation created.
type DeleteStudent struct {
	StudentID int64
}

// Apply runs the step against a.
func (c DeleteStudent) Apply(ctx context.Context, a Applier) error {
	return a.DeleteStudent(ctx, c.StudentID)
}

// String describes the step for logs.
func (c DeleteStudent) String() string {
	return fmt.Sprintf("delete student %d", c.StudentID)
}

// RestoreCompliance puts a compliance row back as captured.
type RestoreCompliance struct {
	Compliance models.Compliance
}

// Apply runs the step against a.
func (c RestoreCompliance) Apply(ctx context.Context, a Applier) error {
	return a.RestoreCompliance(ctx, c.Compliance)
}

// String describes the step for logs.
func (c RestoreCompliance) String() string {
	return fmt.Sprintf("restore compliance %d", c.Compliance.StudentID)
}

// RestoreHolding puts a unit's holder, date and notes back as captured.
type RestoreHolding struct {
	Holding models.Holding
}

// Apply runs the step against a.
func (c RestoreHolding) Apply(ctx context.Context, a Applier) error {
	return a.RestoreHolding(ctx, c.Holding)
}

// String describes the step for logs.
func (c RestoreHolding) String() string {
	return fmt.Sprintf("restore %s %d holding", c.Holding.Category, c.Holding.UnitID)
}

// DeleteUnit removes a unit that an operation added.
type DeleteUnit struct {
	Category models.Category
	UnitID   int64
}

// Apply runs the step against a.
func (c DeleteUnit) Apply(ctx context.Context, a Applier) error {
	return a.DeleteUnit(ctx, c.Category, c.UnitID)
}

// String describes the step for logs.
func (c DeleteUnit) String() string {
	return fmt.Sprintf("delete %s %d", c.Category, c.UnitID)
}
