package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/helpers"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

var studentColumns = []string{
	"student_id", "fname", "lname", "classification", "section",
	"primary_role", "shirt_size", "shoe_size", "active", "updated_at",
}

// StudentRepository handles database operations for the roster
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db Querier, sb squirrel.StatementBuilderType) *StudentRepository {
	return &StudentRepository{db: db, sb: sb}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var s models.Student
	var section string
	var role, shirt, shoe sql.NullString
	if err := row.Scan(
		&s.StudentID, &s.FirstName, &s.LastName, &s.Classification, &section,
		&role, &shirt, &shoe, &s.Active, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Section = models.Section(section)
	s.PrimaryRole = helpers.StringPtr(role)
	s.ShirtSize = helpers.StringPtr(shirt)
	s.ShoeSize = helpers.StringPtr(shoe)
	return &s, nil
}

func studentValues(s models.Student) []interface{} {
	return []interface{}{
		s.StudentID, s.FirstName, s.LastName, s.Classification, string(s.Section),
		helpers.GetNullString(s.PrimaryRole), helpers.GetNullString(s.ShirtSize),
		helpers.GetNullString(s.ShoeSize), s.Active, s.UpdatedAt,
	}
}

// GetByID retrieves a student or apperrors.ErrStudentNotFound
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", apperrors.ErrStudentNotFound, id)
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error querying student ID=%d: %w", id, err)
	}
	return student, nil
}

// Exists reports whether a student with id is on the roster
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("students").
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build student exists query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("error checking student ID=%d: %w", id, err)
	}
	return n > 0, nil
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, s models.Student) error {
	query, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(studentValues(s)...).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error inserting student ID=%d: %w", s.StudentID, err)
	}
	return nil
}

// Update overwrites every mutable column of an existing student
func (r *StudentRepository) Update(ctx context.Context, s models.Student) error {
	query, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"fname":          s.FirstName,
			"lname":          s.LastName,
			"classification": s.Classification,
			"section":        string(s.Section),
			"primary_role":   helpers.GetNullString(s.PrimaryRole),
			"shirt_size":     helpers.GetNullString(s.ShirtSize),
			"shoe_size":      helpers.GetNullString(s.ShoeSize),
			"active":         s.Active,
			"updated_at":     s.UpdatedAt,
		}).
		Where(squirrel.Eq{"student_id": s.StudentID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("studentID", s.StudentID).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating student ID=%d: %w", s.StudentID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrStudentNotFound, s.StudentID)
	}
	return nil
}

// Upsert writes s whether or not the row exists.
func (r *StudentRepository) Upsert(ctx context.Context, s models.Student) error {
	updates := make([]string, 0, len(studentColumns)-1)
	for _, col := range studentColumns[1:] {
		updates = append(updates, col+" = excluded."+col)
	}

	query, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(studentValues(s)...).
		Suffix("ON CONFLICT (student_id) DO UPDATE SET " + strings.Join(updates, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert student query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error restoring student ID=%d: %w", s.StudentID, err)
	}
	return nil
}

// Delete removes a student; compliance cascades
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting student ID=%d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrStudentNotFound, id)
	}
	return nil
}

// List returns students ordered by section, last name and first name
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	qb := r.sb.Select(studentColumns...).From("students")
	if strings.TrimSpace(filter.Search) != "" {
		qb = qb.Where(likeAny(filter.Search,
			"CAST(student_id AS TEXT)", "fname", "lname", "section", "COALESCE(primary_role, '')"))
	}
	if filter.ActiveOnly {
		qb = qb.Where(squirrel.Eq{"active": true})
	}

	query, args, err := qb.OrderBy("section", "lname", "fname").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// Count returns the roster size
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}

// DeleteAll empties the roster
func (r *StudentRepository) DeleteAll(ctx context.Context) error {
	query, args, err := r.sb.Delete("students").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete students query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting students: %w", err)
	}
	return nil
}
