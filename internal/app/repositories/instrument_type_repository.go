package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/logger"
)

// InstrumentTypeRepository handles the instrument catalog
type InstrumentTypeRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewInstrumentTypeRepository creates a new instrument type repository
func NewInstrumentTypeRepository(db Querier, sb squirrel.StatementBuilderType) *InstrumentTypeRepository {
	return &InstrumentTypeRepository{db: db, sb: sb}
}

// List returns the catalog ordered by section and name
func (r *InstrumentTypeRepository) List(ctx context.Context) ([]models.InstrumentType, error) {
	query, args, err := r.sb.Select("type_id", "type_name", "section").
		From("instrument_types").
		OrderBy("section", "type_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instrument types query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list instrument types query")
		return nil, fmt.Errorf("error listing instrument types: %w", err)
	}
	defer rows.Close()

	types := make([]models.InstrumentType, 0)
	for rows.Next() {
		var it models.InstrumentType
		var section string
		if err := rows.Scan(&it.TypeID, &it.TypeName, &section); err != nil {
			return nil, fmt.Errorf("error scanning instrument type row: %w", err)
		}
		it.Section = models.Section(section)
		types = append(types, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instrument type rows: %w", err)
	}
	return types, nil
}

// GetByID returns one catalog entry or apperrors.ErrInstrumentTypeNotFound
func (r *InstrumentTypeRepository) GetByID(ctx context.Context, id int64) (*models.InstrumentType, error) {
	return r.getOne(ctx, squirrel.Eq{"type_id": id}, fmt.Sprint(id))
}

// GetByName looks a catalog entry up by its unique name
func (r *InstrumentTypeRepository) GetByName(ctx context.Context, name string) (*models.InstrumentType, error) {
	return r.getOne(ctx, squirrel.Eq{"type_name": name}, name)
}

func (r *InstrumentTypeRepository) getOne(ctx context.Context, where squirrel.Eq, key string) (*models.InstrumentType, error) {
	query, args, err := r.sb.Select("type_id", "type_name", "section").
		From("instrument_types").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instrument type query: %w", err)
	}

	var it models.InstrumentType
	var section string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&it.TypeID, &it.TypeName, &section); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInstrumentTypeNotFound, key)
		}
		return nil, fmt.Errorf("error querying instrument type %s: %w", key, err)
	}
	it.Section = models.Section(section)
	return &it, nil
}

// EnsureCatalog inserts any missing catalog entries by name.
func (r *InstrumentTypeRepository) EnsureCatalog(ctx context.Context, entries []models.InstrumentType) error {
	if len(entries) == 0 {
		return nil
	}

	ib := r.sb.Insert("instrument_types").Columns("type_name", "section")
	for _, e := range entries {
		ib = ib.Values(e.TypeName, string(e.Section))
	}
	query, args, err := ib.Suffix("ON CONFLICT (type_name) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build seed instrument types query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error seeding instrument types: %w", err)
	}
	return nil
}
