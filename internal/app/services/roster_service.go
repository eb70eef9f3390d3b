package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/repositories"
	"github.com/yigit/bandroster/internal/app/undo"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/dberrors"
	"github.com/yigit/bandroster/internal/pkg/validation"
)

// RosterService handles students and their compliance records
type RosterService struct {
	session *Session
}

// NewRosterService creates a new roster service instance
func NewRosterService(session *Session) *RosterService {
	return &RosterService{session: session}
}

func validateStudentID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: student ID must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

// optional maps "" to nil for nullable text columns.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func applyFields(s *models.Student, f models.StudentFields) {
	s.FirstName = f.FirstName
	s.LastName = f.LastName
	s.Classification = f.Classification
	s.Section = models.Section(f.Section)
	s.PrimaryRole = optional(f.PrimaryRole)
	s.ShirtSize = optional(f.ShirtSize)
	s.ShoeSize = optional(f.ShoeSize)
}

// AddStudent adds a student with an empty compliance record.
func (s *RosterService) AddStudent(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	id, err := models.ParseStudentID(in.StudentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	in.Normalize()
	if err := validation.Struct(in.StudentFields); err != nil {
		return nil, err
	}

	today := s.session.today()
	student := models.Student{StudentID: id, Active: in.IsActive(), UpdatedAt: today}
	applyFields(&student, in.StudentFields)

	err = s.session.mutate(ctx, "add_student", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		exists, err := repos.Students.Exists(ctx, id)
		if err != nil {
			return "", nil, err
		}
		if exists {
			return "", nil, fmt.Errorf("%w: %d", apperrors.ErrDuplicateID, id)
		}

		if err := repos.Students.Create(ctx, student); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return "", nil, fmt.Errorf("%w: %d", apperrors.ErrDuplicateID, id)
			}
			return "", nil, err
		}

		zero := models.ZeroCompliance(id)
		zero.LastVerifiedDate = &today
		if err := repos.Compliance.InsertIfMissing(ctx, zero); err != nil {
			return "", nil, err
		}

		label := fmt.Sprintf("Add student %d (%s)", id, student.FullName())
		return label, []undo.Command{undo.DeleteStudent{StudentID: id}}, nil
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// EditStudent replaces the mutable fields of a student. A nil Active keeps
// the current flag.
func (s *RosterService) EditStudent(ctx context.Context, id int64, fields models.StudentFields) (*models.Student, error) {
	if err := validateStudentID(id); err != nil {
		return nil, err
	}
	fields.Normalize()
	if err := validation.Struct(fields); err != nil {
		return nil, err
	}

	var updated models.Student
	err := s.session.mutate(ctx, "edit_student", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		prior, err := repos.Students.GetByID(ctx, id)
		if err != nil {
			return "", nil, err
		}

		updated = *prior
		applyFields(&updated, fields)
		if fields.Active != nil {
			updated.Active = *fields.Active
		}
		updated.UpdatedAt = s.session.today()

		if err := repos.Students.Update(ctx, updated); err != nil {
			return "", nil, err
		}

		label := fmt.Sprintf("Edit student %d (%s)", id, updated.FullName())
		return label, []undo.Command{undo.RestoreStudent{Student: *prior}}, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent removes a student and their compliance record. Held
// equipment is released, never deleted.
func (s *RosterService) DeleteStudent(ctx context.Context, id int64) error {
	if err := validateStudentID(id); err != nil {
		return err
	}

	return s.session.mutate(ctx, "delete_student", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		prior, err := repos.Students.GetByID(ctx, id)
		if err != nil {
			return "", nil, err
		}
		compliance, found, err := repos.Compliance.Get(ctx, id)
		if err != nil {
			return "", nil, err
		}
		holdings, err := repos.Equipment.HoldingsFor(ctx, id)
		if err != nil {
			return "", nil, err
		}

		if err := repos.Equipment.ReleaseAll(ctx, id); err != nil {
			return "", nil, err
		}
		if err := repos.Students.Delete(ctx, id); err != nil {
			return "", nil, err
		}

		cmds := []undo.Command{undo.RestoreStudent{Student: *prior}}
		if found {
			cmds = append(cmds, undo.RestoreCompliance{Compliance: compliance})
		}
		for _, h := range holdings {
			cmds = append(cmds, undo.RestoreHolding{Holding: h})
		}
		label := fmt.Sprintf("Delete student %d (%s)", id, prior.FullName())
		return label, cmds, nil
	})
}

// SetCompliance records credit hours, GPA and dues for a student. An empty
// verified date means today.
func (s *RosterService) SetCompliance(ctx context.Context, id int64, in models.ComplianceInput) (*models.Compliance, error) {
	if err := validateStudentID(id); err != nil {
		return nil, err
	}
	if math.IsNaN(in.GPA) || math.IsInf(in.GPA, 0) {
		return nil, fmt.Errorf("%w: gpa must be a number", apperrors.ErrValidationFailed)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	verified := in.VerifiedDate
	if verified == "" {
		verified = s.session.today()
	}
	next := models.Compliance{
		StudentID:        id,
		CreditHours:      in.CreditHours,
		GPA:              in.GPA,
		DuesPaid:         in.DuesPaid,
		LastVerifiedDate: &verified,
	}

	err := s.session.mutate(ctx, "set_compliance", func(ctx context.Context, repos *repositories.Repositories) (string, []undo.Command, error) {
		exists, err := repos.Students.Exists(ctx, id)
		if err != nil {
			return "", nil, err
		}
		if !exists {
			return "", nil, fmt.Errorf("%w: %d", apperrors.ErrStudentNotFound, id)
		}

		prior, _, err := repos.Compliance.Get(ctx, id)
		if err != nil {
			return "", nil, err
		}
		if err := repos.Compliance.Upsert(ctx, next); err != nil {
			return "", nil, err
		}

		label := fmt.Sprintf("Update compliance for %d", id)
		return label, []undo.Command{undo.RestoreCompliance{Compliance: prior}}, nil
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// GetStudent returns a student with compliance, eligibility and holdings.
func (s *RosterService) GetStudent(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if err := validateStudentID(id); err != nil {
		return nil, err
	}
	repos := s.session.repos

	student, err := repos.Students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	compliance, _, err := repos.Compliance.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	holdings, err := repos.Equipment.HoldingsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.StudentDetail{
		Student:    *student,
		Compliance: compliance,
		Eligible:   compliance.Eligible(),
		Holdings:   holdings,
	}, nil
}

// PreviewStudent resolves raw ID text to a student, for confirming a
// checkout target before assigning.
func (s *RosterService) PreviewStudent(ctx context.Context, rawID string) (*models.Student, error) {
	id, err := models.ParseStudentID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	return s.session.repos.Students.GetByID(ctx, id)
}

// ListStudents returns the roster with eligibility, ordered by section,
// last name and first name.
func (s *RosterService) ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.StudentSummary, error) {
	repos := s.session.repos

	students, err := repos.Students.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	report, err := repos.Compliance.Report(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make(map[int64]bool, len(report))
	for _, row := range report {
		eligible[row.StudentID] = row.Eligible
	}

	out := make([]models.StudentSummary, 0, len(students))
	for _, st := range students {
		out = append(out, models.StudentSummary{Student: st, Eligible: eligible[st.StudentID]})
	}
	return out, nil
}

// EligibilityReport lists every student with per-criterion flags,
// ineligible students first.
func (s *RosterService) EligibilityReport(ctx context.Context) ([]models.EligibilityRow, error) {
	report, err := s.session.repos.Compliance.Report(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(report, func(i, j int) bool {
		return !report[i].Eligible && report[j].Eligible
	})
	return report, nil
}
