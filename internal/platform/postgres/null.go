package postgres

import (
	"database/sql"

	"github.com/google/uuid"
)

// nullUUID converts a uuid.UUID to its nullable form; uuid.Nil binds as
// SQL NULL.
func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

// nullFloat binds an optional float, nil as SQL NULL.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// floatPtr converts a scanned nullable float back to an optional value.
func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
