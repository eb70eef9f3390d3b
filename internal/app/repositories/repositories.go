package repositories

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// Repositories holds all the repository instances
type Repositories struct {
	Students        *StudentRepository
	Compliance      *ComplianceRepository
	Equipment       *EquipmentRepository
	InstrumentTypes *InstrumentTypeRepository

	sb squirrel.StatementBuilderType
}

// NewRepositories initializes all repositories over q
func NewRepositories(q Querier, sb squirrel.StatementBuilderType) *Repositories {
	return &Repositories{
		Students:        NewStudentRepository(q, sb),
		Compliance:      NewComplianceRepository(q, sb),
		Equipment:       NewEquipmentRepository(q, sb),
		InstrumentTypes: NewInstrumentTypeRepository(q, sb),
		sb:              sb,
	}
}

// WithTx returns repositories bound to tx.
func (r *Repositories) WithTx(tx *sql.Tx) *Repositories {
	return NewRepositories(tx, r.sb)
}
