package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// likeAny matches pattern case-insensitively against any of the expressions.
func likeAny(search string, exprs ...string) squirrel.Sqlizer {
	pattern := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
	or := squirrel.Or{}
	for _, e := range exprs {
		or = append(or, squirrel.Expr("LOWER("+e+") LIKE ?", pattern))
	}
	return or
}
