package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/repositories"
	"github.com/yigit/bandroster/internal/app/undo"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/dberrors"
	"github.com/yigit/bandroster/internal/pkg/helpers"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

// AssignRequest checks a unit out to a student.
type AssignRequest struct {
	Category       models.Category
	UnitID         int64
	StudentID      int64
	ConditionNotes string
	// OverrideSectionMismatch allows an instrument from another section.
	OverrideSectionMismatch bool
}

// CheckoutService enforces one holder per unit and one unit per category
// per student.
type CheckoutService struct {
	session *Session
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(session *Session) *CheckoutService {
	return &CheckoutService{session: session}
}

// AddUnit adds an unassigned unit to the inventory and returns its id.
func (s *CheckoutService) AddUnit(ctx context.Context, spec models.UnitSpec) (int64, error) {
	if spec == nil {
		return 0, fmt.Errorf("%w: unit description is required", apperrors.ErrValidationFailed)
	}
	category := spec.Category()
	if !category.Valid() {
		return 0, fmt.Errorf("%w: unknown equipment category %q", apperrors.ErrValidationFailed, category)
	}

	var id int64
	err := s.session.mutate(ctx, "add_unit", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		if typed, ok := spec.(models.InstrumentTyped); ok {
			if typed.InstrumentTypeID() <= 0 {
				return "", nil, fmt.Errorf("%w: instrument type is required", apperrors.ErrValidationFailed)
			}
			if _, err := repos.InstrumentTypes.GetByID(ctx, typed.InstrumentTypeID()); err != nil {
				return "", nil, err
			}
		}

		var err error
		id, err = repos.Equipment.Insert(ctx, spec)
		if err != nil {
			return "", nil, err
		}
		label := fmt.Sprintf("Add %s #%d", category, id)
		return label, []undo.Command{undo.DeleteUnit{Category: category, UnitID: id}}, nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func validateUnitRef(category models.Category, unitID int64) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown equipment category %q", apperrors.ErrValidationFailed, category)
	}
	if unitID <= 0 {
		return fmt.Errorf("%w: %s ID must be positive", apperrors.ErrValidationFailed, category)
	}
	return nil
}

// Assign checks a unit out to a student. Checks run in order: request
// validity, student exists, unit exists, unit free, instrument section.
func (s *CheckoutService) Assign(ctx context.Context, req AssignRequest) (*models.Holding, error) {
	if err := validateUnitRef(req.Category, req.UnitID); err != nil {
		return nil, err
	}
	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: student ID must be positive", apperrors.ErrValidationFailed)
	}

	var result models.Holding
	err := s.session.mutate(ctx, "assign", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		student, err := repos.Students.GetByID(ctx, req.StudentID)
		if err != nil {
			return "", nil, err
		}

		prior, err := repos.Equipment.GetHolding(ctx, req.Category, req.UnitID)
		if err != nil {
			return "", nil, err
		}
		if prior.Assigned() {
			return "", nil, fmt.Errorf("%w: %s %d is held by student %d",
				apperrors.ErrAlreadyAssigned, req.Category, req.UnitID, *prior.CheckedOutTo)
		}

		if req.Category == models.CategoryInstrument && !req.OverrideSectionMismatch {
			unitSection, err := repos.Equipment.InstrumentSection(ctx, req.UnitID)
			if err != nil {
				return "", nil, err
			}
			if unitSection != "" && student.Section != "" && unitSection != student.Section {
				return "", nil, fmt.Errorf("%w: instrument section %s, student section %s",
					apperrors.ErrSectionMismatch, unitSection, student.Section)
			}
		}

		date := s.session.today()
		notes := helpers.MergeNotes(req.ConditionNotes, prior.ConditionNotes)
		n, err := repos.Equipment.AssignIfFree(ctx, req.Category, req.UnitID, req.StudentID, date, notes)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return "", nil, fmt.Errorf("%w: student %d already holds a %s",
					apperrors.ErrStudentAlreadyHoldsCategory, req.StudentID, req.Category)
			}
			return "", nil, fmt.Errorf("error assigning %s %d: %w", req.Category, req.UnitID, err)
		}
		if n == 0 {
			return "", nil, fmt.Errorf("%w: %s %d", apperrors.ErrAlreadyAssigned, req.Category, req.UnitID)
		}

		result = models.Holding{
			Category:       req.Category,
			UnitID:         req.UnitID,
			CheckedOutTo:   &student.StudentID,
			CheckedOutDate: &date,
			ConditionNotes: notes,
			Description:    prior.Description,
		}
		label := fmt.Sprintf("Assign %s #%d to %s", req.Category, req.UnitID, student.FullName())
		return label, []undo.Command{undo.RestoreHolding{Holding: *prior}}, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("category", string(req.Category)).Int64("unitID", req.UnitID).
		Int64("studentID", req.StudentID).Msg("Unit checked out")
	return &result, nil
}

// Unassign returns a unit, clearing its holder and checkout date.
func (s *CheckoutService) Unassign(ctx context.Context, category models.Category, unitID int64, conditionNotes string) (*models.Holding, error) {
	if err := validateUnitRef(category, unitID); err != nil {
		return nil, err
	}

	var result models.Holding
	err := s.session.mutate(ctx, "unassign", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		prior, err := repos.Equipment.GetHolding(ctx, category, unitID)
		if err != nil {
			return "", nil, err
		}
		if !prior.Assigned() {
			return "", nil, fmt.Errorf("%w: %s %d", apperrors.ErrNotAssigned, category, unitID)
		}

		result = models.Holding{
			Category:       category,
			UnitID:         unitID,
			ConditionNotes: helpers.MergeNotes(conditionNotes, prior.ConditionNotes),
			Description:    prior.Description,
		}
		if err := repos.Equipment.SetHolding(ctx, result); err != nil {
			return "", nil, err
		}

		label := fmt.Sprintf("Unassign %s #%d from %d", category, unitID, *prior.CheckedOutTo)
		return label, []undo.Command{undo.RestoreHolding{Holding: *prior}}, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListInstruments lists instrument inventory
func (s *CheckoutService) ListInstruments(ctx context.Context, filter models.EquipmentFilter) ([]models.Instrument, error) {
	return s.session.repos.Equipment.ListInstruments(ctx, filter)
}

// ListUniforms lists uniform inventory
func (s *CheckoutService) ListUniforms(ctx context.Context, filter models.EquipmentFilter) ([]models.Uniform, error) {
	return s.session.repos.Equipment.ListUniforms(ctx, filter)
}

// ListShakos lists shako inventory
func (s *CheckoutService) ListShakos(ctx context.Context, filter models.EquipmentFilter) ([]models.Shako, error) {
	return s.session.repos.Equipment.ListShakos(ctx, filter)
}

// ListInstrumentTypes returns the instrument catalog
func (s *CheckoutService) ListInstrumentTypes(ctx context.Context) ([]models.InstrumentType, error) {
	return s.session.repos.InstrumentTypes.List(ctx)
}

// GetHolding returns the checkout state of one unit
func (s *CheckoutService) GetHolding(ctx context.Context, category models.Category, unitID int64) (*models.Holding, error) {
	if err := validateUnitRef(category, unitID); err != nil {
		return nil, err
	}
	return s.session.repos.Equipment.GetHolding(ctx, category, unitID)
}

// HoldingsFor lists the units a student holds
func (s *CheckoutService) HoldingsFor(ctx context.Context, studentID int64) ([]models.Holding, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("%w: student ID must be positive", apperrors.ErrValidationFailed)
	}
	if _, err := s.session.repos.Students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	return s.session.repos.Equipment.HoldingsFor(ctx, studentID)
}
