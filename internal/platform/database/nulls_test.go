package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullHelpers(t *testing.T) {
	assert.False(t, NullString("").Valid)
	assert.Equal(t, sql.NullString{String: "renal", Valid: true}, NullString("renal"))

	assert.False(t, NullInt(nil).Valid)
	n := 1500
	assert.Equal(t, sql.NullInt64{Int64: 1500, Valid: true}, NullInt(&n))
	assert.Nil(t, IntPtr(sql.NullInt64{}))
	assert.Equal(t, 1500, *IntPtr(sql.NullInt64{Int64: 1500, Valid: true}))

	assert.False(t, NullTime(nil).Valid)
	assert.Nil(t, TimePtr(sql.NullTime{}))
}

func TestDateHelpers(t *testing.T) {
	perth := time.FixedZone("AWST", 8*3600)
	local := time.Date(2024, 3, 1, 23, 30, 0, 0, perth)

	assert.Equal(t, "2024-03-01", DateParam(local))
	assert.Equal(t, sql.NullString{String: "2024-03-01", Valid: true}, NullDate(&local))
	assert.False(t, NullDate(nil).Valid)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), DateValue(local))
	assert.Nil(t, DatePtr(sql.NullTime{}))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *DatePtr(sql.NullTime{Time: local, Valid: true}))
}
