package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/helpers"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

// categorySchema maps an equipment category onto its table.
type categorySchema struct {
	table    string
	idColumn string
	columns  []string
	// describe is an SQL expression producing a short unit label.
	describe string
}

var categorySchemas = map[models.Category]categorySchema{
	models.CategoryInstrument: {
		table:    "instruments",
		idColumn: "instrument_id",
		columns:  []string{"type_id", "serial"},
		describe: "(SELECT t.type_name FROM instrument_types t WHERE t.type_id = instruments.type_id) || ' #' || serial",
	},
	models.CategoryUniform: {
		table:    "uniforms",
		idColumn: "uniform_id",
		columns:  []string{"coat_size", "pant_size", "coat_number", "pant_number"},
		describe: "'Coat #' || coat_number || ' / Pant #' || pant_number",
	},
	models.CategoryShako: {
		table:    "shakos",
		idColumn: "shako_id",
		columns:  []string{"size"},
		describe: "'Shako size ' || size",
	},
}

func (s categorySchema) hasColumn(col string) bool {
	for _, c := range s.columns {
		if c == col {
			return true
		}
	}
	return false
}

func schemaFor(category models.Category) (categorySchema, error) {
	s, ok := categorySchemas[category]
	if !ok {
		return categorySchema{}, fmt.Errorf("%w: unknown equipment category %q", apperrors.ErrValidationFailed, category)
	}
	return s, nil
}

// EquipmentRepository handles every checkable equipment table
type EquipmentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(db Querier, sb squirrel.StatementBuilderType) *EquipmentRepository {
	return &EquipmentRepository{db: db, sb: sb}
}

// Insert adds an unassigned unit and returns its id
func (r *EquipmentRepository) Insert(ctx context.Context, spec models.UnitSpec) (int64, error) {
	schema, err := schemaFor(spec.Category())
	if err != nil {
		return 0, err
	}

	values := spec.Columns()
	cols := make([]string, 0, len(values))
	for col := range values {
		if !schema.hasColumn(col) {
			return 0, fmt.Errorf("%w: %s has no column %q", apperrors.ErrValidationFailed, spec.Category(), col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	vals := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		vals = append(vals, values[col])
	}

	query, args, err := r.sb.Insert(schema.table).
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING " + schema.idColumn).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("category", string(spec.Category())).Msg("Error building insert unit SQL")
		return 0, fmt.Errorf("failed to build insert %s query: %w", spec.Category(), err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("category", string(spec.Category())).Msg("Error executing insert unit query")
		return 0, fmt.Errorf("error inserting %s: %w", spec.Category(), err)
	}
	return id, nil
}

// Delete removes a unit by id
func (r *EquipmentRepository) Delete(ctx context.Context, category models.Category, id int64) error {
	schema, err := schemaFor(category)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Delete(schema.table).
		Where(squirrel.Eq{schema.idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", category, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting %s ID=%d: %w", category, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s %d", apperrors.ErrUnitNotFound, category, id)
	}
	return nil
}

func (r *EquipmentRepository) holdingSelect(schema categorySchema) squirrel.SelectBuilder {
	return r.sb.Select(
		schema.idColumn, "checked_out_to", "checked_out_date", "condition_notes", schema.describe,
	).From(schema.table)
}

func scanHolding(row rowScanner, category models.Category) (*models.Holding, error) {
	h := models.Holding{Category: category}
	var holder sql.NullInt64
	var date, notes, desc sql.NullString
	if err := row.Scan(&h.UnitID, &holder, &date, &notes, &desc); err != nil {
		return nil, err
	}
	h.CheckedOutTo = helpers.Int64Ptr(holder)
	h.CheckedOutDate = helpers.StringPtr(date)
	h.ConditionNotes = helpers.StringPtr(notes)
	h.Description = desc.String
	return &h, nil
}

// GetHolding reads the checkout triple of one unit or apperrors.ErrUnitNotFound
func (r *EquipmentRepository) GetHolding(ctx context.Context, category models.Category, id int64) (*models.Holding, error) {
	schema, err := schemaFor(category)
	if err != nil {
		return nil, err
	}

	query, args, err := r.holdingSelect(schema).
		Where(squirrel.Eq{schema.idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get %s query: %w", category, err)
	}

	h, err := scanHolding(r.db.QueryRowContext(ctx, query, args...), category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %d", apperrors.ErrUnitNotFound, category, id)
		}
		logger.Error().Err(err).Str("category", string(category)).Int64("unitID", id).Msg("Error scanning unit row")
		return nil, fmt.Errorf("error querying %s ID=%d: %w", category, id, err)
	}
	return h, nil
}

// HeldBy returns the unit of category held by studentID, or nil.
func (r *EquipmentRepository) HeldBy(ctx context.Context, category models.Category, studentID int64) (*models.Holding, error) {
	schema, err := schemaFor(category)
	if err != nil {
		return nil, err
	}

	query, args, err := r.holdingSelect(schema).
		Where(squirrel.Eq{"checked_out_to": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build held-by %s query: %w", category, err)
	}

	h, err := scanHolding(r.db.QueryRowContext(ctx, query, args...), category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying %s held by student ID=%d: %w", category, studentID, err)
	}
	return h, nil
}

// HoldingsFor lists every unit the student holds, one per category at most.
func (r *EquipmentRepository) HoldingsFor(ctx context.Context, studentID int64) ([]models.Holding, error) {
	holdings := make([]models.Holding, 0, len(models.Categories))
	for _, category := range models.Categories {
		h, err := r.HeldBy(ctx, category, studentID)
		if err != nil {
			return nil, err
		}
		if h != nil {
			holdings = append(holdings, *h)
		}
	}
	return holdings, nil
}

// SetHolding writes the checkout triple of h unconditionally.
func (r *EquipmentRepository) SetHolding(ctx context.Context, h models.Holding) error {
	schema, err := schemaFor(h.Category)
	if err != nil {
		return err
	}

	query, args, err := r.sb.Update(schema.table).
		SetMap(map[string]interface{}{
			"checked_out_to":   helpers.GetNullInt64(h.CheckedOutTo),
			"checked_out_date": helpers.GetNullString(h.CheckedOutDate),
			"condition_notes":  helpers.GetNullString(h.ConditionNotes),
		}).
		Where(squirrel.Eq{schema.idColumn: h.UnitID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set %s holding query: %w", h.Category, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating %s ID=%d: %w", h.Category, h.UnitID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s %d", apperrors.ErrUnitNotFound, h.Category, h.UnitID)
	}
	return nil
}

// AssignIfFree sets the holder only while the unit has none. It returns the
// number of rows changed, which is zero when another holder got there first.
func (r *EquipmentRepository) AssignIfFree(ctx context.Context, category models.Category, id, studentID int64, date string, notes *string) (int64, error) {
	schema, err := schemaFor(category)
	if err != nil {
		return 0, err
	}

	query, args, err := r.sb.Update(schema.table).
		SetMap(map[string]interface{}{
			"checked_out_to":   studentID,
			"checked_out_date": date,
			"condition_notes":  helpers.GetNullString(notes),
		}).
		Where(squirrel.Eq{schema.idColumn: id}).
		Where(squirrel.Eq{"checked_out_to": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build assign %s query: %w", category, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ReleaseAll clears every holding of studentID across all categories.
func (r *EquipmentRepository) ReleaseAll(ctx context.Context, studentID int64) error {
	for _, category := range models.Categories {
		schema := categorySchemas[category]
		query, args, err := r.sb.Update(schema.table).
			Set("checked_out_to", nil).
			Set("checked_out_date", nil).
			Where(squirrel.Eq{"checked_out_to": studentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build release %s query: %w", category, err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("error releasing %s held by student ID=%d: %w", category, studentID, err)
		}
	}
	return nil
}

// DeleteAll removes every unit of every category
func (r *EquipmentRepository) DeleteAll(ctx context.Context) error {
	for _, category := range models.Categories {
		query, args, err := r.sb.Delete(categorySchemas[category].table).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete %s query: %w", category, err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("error deleting %s units: %w", category, err)
		}
	}
	return nil
}

// InstrumentSection returns the catalog section of an instrument unit
func (r *EquipmentRepository) InstrumentSection(ctx context.Context, id int64) (models.Section, error) {
	query, args, err := r.sb.Select("t.section").
		From("instruments i").
		Join("instrument_types t ON t.type_id = i.type_id").
		Where(squirrel.Eq{"i.instrument_id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build instrument section query: %w", err)
	}

	var section sql.NullString
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&section); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: instrument %d", apperrors.ErrUnitNotFound, id)
		}
		return "", fmt.Errorf("error querying section of instrument ID=%d: %w", id, err)
	}
	return models.Section(section.String), nil
}

func scanCheckout(c *models.Checkout, notes sql.NullString, holder sql.NullInt64, date sql.NullString, holderName string) {
	c.ConditionNotes = helpers.StringPtr(notes)
	c.CheckedOutTo = helpers.Int64Ptr(holder)
	c.CheckedOutDate = helpers.StringPtr(date)
	c.HolderName = strings.TrimSpace(holderName)
}

const holderNameExpr = "COALESCE(s.fname || ' ' || s.lname, '')"

// ListInstruments returns instruments joined with their catalog type
func (r *EquipmentRepository) ListInstruments(ctx context.Context, filter models.EquipmentFilter) ([]models.Instrument, error) {
	qb := r.sb.Select(
		"i.instrument_id", "i.type_id", "t.type_name", "t.section", "i.serial",
		"i.condition_notes", "i.checked_out_to", "i.checked_out_date", holderNameExpr,
	).
		From("instruments i").
		Join("instrument_types t ON t.type_id = i.type_id").
		LeftJoin("students s ON s.student_id = i.checked_out_to")

	if strings.TrimSpace(filter.Search) != "" {
		qb = qb.Where(likeAny(filter.Search,
			"t.type_name", "i.serial", "COALESCE(i.condition_notes, '')",
			holderNameExpr, "COALESCE(CAST(i.checked_out_to AS TEXT), '')"))
	}
	if section := strings.TrimSpace(filter.Section); section != "" {
		qb = qb.Where(squirrel.Eq{"t.section": strings.ToUpper(section)})
	}

	query, args, err := qb.OrderBy("t.section", "t.type_name", "i.serial").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list instruments SQL")
		return nil, fmt.Errorf("failed to build list instruments query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing instruments: %w", err)
	}
	defer rows.Close()

	out := make([]models.Instrument, 0)
	for rows.Next() {
		var in models.Instrument
		var section, holderName string
		var notes, date sql.NullString
		var holder sql.NullInt64
		if err := rows.Scan(&in.InstrumentID, &in.TypeID, &in.TypeName, &section, &in.Serial,
			&notes, &holder, &date, &holderName); err != nil {
			return nil, fmt.Errorf("error scanning instrument row: %w", err)
		}
		in.Section = models.Section(section)
		scanCheckout(&in.Checkout, notes, holder, date, holderName)
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instrument rows: %w", err)
	}
	return out, nil
}

// ListUniforms returns uniforms with available units first
func (r *EquipmentRepository) ListUniforms(ctx context.Context, filter models.EquipmentFilter) ([]models.Uniform, error) {
	qb := r.sb.Select(
		"u.uniform_id", "u.coat_size", "u.pant_size", "u.coat_number", "u.pant_number",
		"u.condition_notes", "u.checked_out_to", "u.checked_out_date", holderNameExpr,
	).
		From("uniforms u").
		LeftJoin("students s ON s.student_id = u.checked_out_to")

	if strings.TrimSpace(filter.Search) != "" {
		qb = qb.Where(likeAny(filter.Search,
			"u.coat_size", "u.pant_size", "u.coat_number", "u.pant_number",
			"COALESCE(u.condition_notes, '')", holderNameExpr))
	}

	query, args, err := qb.OrderBy("(u.checked_out_to IS NOT NULL)", "u.coat_number", "u.uniform_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list uniforms query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing uniforms: %w", err)
	}
	defer rows.Close()

	out := make([]models.Uniform, 0)
	for rows.Next() {
		var u models.Uniform
		var holderName string
		var notes, date sql.NullString
		var holder sql.NullInt64
		if err := rows.Scan(&u.UniformID, &u.CoatSize, &u.PantSize, &u.CoatNumber, &u.PantNumber,
			&notes, &holder, &date, &holderName); err != nil {
			return nil, fmt.Errorf("error scanning uniform row: %w", err)
		}
		scanCheckout(&u.Checkout, notes, holder, date, holderName)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating uniform rows: %w", err)
	}
	return out, nil
}

// ListShakos returns shakos with available units first
func (r *EquipmentRepository) ListShakos(ctx context.Context, filter models.EquipmentFilter) ([]models.Shako, error) {
	qb := r.sb.Select(
		"k.shako_id", "k.size", "k.condition_notes", "k.checked_out_to", "k.checked_out_date", holderNameExpr,
	).
		From("shakos k").
		LeftJoin("students s ON s.student_id = k.checked_out_to")

	if strings.TrimSpace(filter.Search) != "" {
		qb = qb.Where(likeAny(filter.Search, "k.size", "COALESCE(k.condition_notes, '')", holderNameExpr))
	}

	query, args, err := qb.OrderBy("(k.checked_out_to IS NOT NULL)", "k.size", "k.shako_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list shakos query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing shakos: %w", err)
	}
	defer rows.Close()

	out := make([]models.Shako, 0)
	for rows.Next() {
		var k models.Shako
		var holderName string
		var notes, date sql.NullString
		var holder sql.NullInt64
		if err := rows.Scan(&k.ShakoID, &k.Size, &notes, &holder, &date, &holderName); err != nil {
			return nil, fmt.Errorf("error scanning shako row: %w", err)
		}
		scanCheckout(&k.Checkout, notes, holder, date, holderName)
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shako rows: %w", err)
	}
	return out, nil
}
