package helpers

import (
	"database/sql"
	"strings"
)

// GetNullString converts a string pointer to sql.NullString.
// A nil pointer becomes SQL NULL.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetNullInt64 converts an int64 pointer to sql.NullInt64.
func GetNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// StringPtr returns nil for NULL, otherwise a pointer to the value.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// Int64Ptr returns nil for NULL, otherwise a pointer to the value.
func Int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

// MergeNotes keeps prior notes unless supplied carries non-blank text.
func MergeNotes(supplied string, prior *string) *string {
	if trimmed := strings.TrimSpace(supplied); trimmed != "" {
		return &trimmed
	}
	if prior == nil || *prior == "" {
		return nil
	}
	p := *prior
	return &p
}
