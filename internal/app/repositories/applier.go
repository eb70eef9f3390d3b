package repositories

import (
	"context"

	"github.com/yigit/bandroster/internal/app/models"
)

// The methods below let a transaction-scoped Repositories replay undo
// commands.

// RestoreStudent writes the snapshot back, inserting it if it was deleted.
func (r *Repositories) RestoreStudent(ctx context.Context, s models.Student) error {
	return r.Students.Upsert(ctx, s)
}

// DeleteStudent removes the student after releasing any held equipment.
func (r *Repositories) DeleteStudent(ctx context.Context, studentID int64) error {
	if err := r.Equipment.ReleaseAll(ctx, studentID); err != nil {
		return err
	}
	return r.Students.Delete(ctx, studentID)
}

// RestoreCompliance writes the compliance snapshot back.
func (r *Repositories) RestoreCompliance(ctx context.Context, c models.Compliance) error {
	return r.Compliance.Upsert(ctx, c)
}

// RestoreHolding writes the checkout triple of a unit back.
func (r *Repositories) RestoreHolding(ctx context.Context, h models.Holding) error {
	return r.Equipment.SetHolding(ctx, h)
}

// DeleteUnit removes a unit added by a previous operation.
func (r *Repositories) DeleteUnit(ctx context.Context, category models.Category, unitID int64) error {
	return r.Equipment.Delete(ctx, category, unitID)
}
