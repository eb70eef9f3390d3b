package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "instruments_checked_out_to_key"}
	fk := &pgconn.PgError{Code: "23503"}

	cases := []struct {
		name   string
		err    error
		unique bool
		fk     bool
	}{
		{"unique", unique, true, false},
		{"wrapped unique", fmt.Errorf("exec: %w", unique), true, false},
		{"foreign key", fk, false, true},
		{"plain", errors.New("boom"), false, false},
		{"nil", nil, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.unique {
				t.Fatalf("IsUniqueViolation = %v, want %v", got, tc.unique)
			}
			if got := IsForeignKeyViolation(tc.err); got != tc.fk {
				t.Fatalf("IsForeignKeyViolation = %v, want %v", got, tc.fk)
			}
		})
	}

	if got := ConstraintName(unique); got != "instruments_checked_out_to_key" {
		t.Fatalf("ConstraintName = %q", got)
	}
}
