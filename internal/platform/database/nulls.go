package database

import (
	"database/sql"
	"time"
)

// Helpers for binding and scanning nullable columns. Date columns are bound as
// YYYY-MM-DD text so both drivers send the same literal.

func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func NullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func IntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func TimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// DateParam formats t as a DATE literal.
func DateParam(t time.Time) string {
	return t.Format(time.DateOnly)
}

func NullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: DateParam(*t), Valid: true}
}

// DateValue normalises a scanned DATE to midnight UTC.
func DateValue(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DatePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	d := DateValue(v.Time)
	return &d
}
