package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/pkg/helpers"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

// ComplianceRepository handles the 1:1 compliance records
type ComplianceRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewComplianceRepository creates a new compliance repository
func NewComplianceRepository(db Querier, sb squirrel.StatementBuilderType) *ComplianceRepository {
	return &ComplianceRepository{db: db, sb: sb}
}

// Get returns the record for studentID; found is false when no row exists.
func (r *ComplianceRepository) Get(ctx context.Context, studentID int64) (c models.Compliance, found bool, err error) {
	query, args, err := r.sb.Select("student_id", "credit_hours", "gpa", "dues_paid", "last_verified_date").
		From("compliance").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return c, false, fmt.Errorf("failed to build get compliance query: %w", err)
	}

	var verified sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.StudentID, &c.CreditHours, &c.GPA, &c.DuesPaid, &verified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ZeroCompliance(studentID), false, nil
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning compliance row")
		return c, false, fmt.Errorf("error querying compliance for student ID=%d: %w", studentID, err)
	}
	c.LastVerifiedDate = helpers.StringPtr(verified)
	return c, true, nil
}

// InsertIfMissing creates c unless the student already has a record.
func (r *ComplianceRepository) InsertIfMissing(ctx context.Context, c models.Compliance) error {
	query, args, err := r.sb.Insert("compliance").
		Columns("student_id", "credit_hours", "gpa", "dues_paid", "last_verified_date").
		Values(c.StudentID, c.CreditHours, c.GPA, c.DuesPaid, helpers.GetNullString(c.LastVerifiedDate)).
		Suffix("ON CONFLICT (student_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert compliance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error inserting compliance for student ID=%d: %w", c.StudentID, err)
	}
	return nil
}

// Upsert writes c, replacing any existing record.
func (r *ComplianceRepository) Upsert(ctx context.Context, c models.Compliance) error {
	query, args, err := r.sb.Insert("compliance").
		Columns("student_id", "credit_hours", "gpa", "dues_paid", "last_verified_date").
		Values(c.StudentID, c.CreditHours, c.GPA, c.DuesPaid, helpers.GetNullString(c.LastVerifiedDate)).
		Suffix("ON CONFLICT (student_id) DO UPDATE SET " +
			"credit_hours = excluded.credit_hours, gpa = excluded.gpa, " +
			"dues_paid = excluded.dues_paid, last_verified_date = excluded.last_verified_date").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("studentID", c.StudentID).Msg("Error building upsert compliance SQL")
		return fmt.Errorf("failed to build upsert compliance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error saving compliance for student ID=%d: %w", c.StudentID, err)
	}
	return nil
}

// Report joins every student with their compliance record, zero-filled.
func (r *ComplianceRepository) Report(ctx context.Context) ([]models.EligibilityRow, error) {
	query, args, err := r.sb.Select(
		"s.student_id", "s.fname", "s.lname", "s.section",
		"c.credit_hours", "c.gpa", "c.dues_paid",
	).
		From("students s").
		LeftJoin("compliance c ON c.student_id = s.student_id").
		OrderBy("s.section", "s.lname", "s.fname").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build eligibility report query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing eligibility report query")
		return nil, fmt.Errorf("error building eligibility report: %w", err)
	}
	defer rows.Close()

	report := make([]models.EligibilityRow, 0)
	for rows.Next() {
		var s models.Student
		var section string
		var hours sql.NullInt64
		var gpa sql.NullFloat64
		var paid sql.NullBool
		if err := rows.Scan(&s.StudentID, &s.FirstName, &s.LastName, &section, &hours, &gpa, &paid); err != nil {
			return nil, fmt.Errorf("error scanning eligibility row: %w", err)
		}
		s.Section = models.Section(section)
		c := models.Compliance{
			StudentID:   s.StudentID,
			CreditHours: int(hours.Int64),
			GPA:         gpa.Float64,
			DuesPaid:    paid.Bool,
		}
		report = append(report, models.NewEligibilityRow(s, c))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating eligibility rows: %w", err)
	}
	return report, nil
}

// DeleteAll removes every compliance record
func (r *ComplianceRepository) DeleteAll(ctx context.Context) error {
	query, args, err := r.sb.Delete("compliance").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete compliance query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting compliance: %w", err)
	}
	return nil
}
