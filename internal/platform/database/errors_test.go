package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"mealcare/pkg/platform/sentinel"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, sentinel.ErrNotFound},
		{"deadline", context.DeadlineExceeded, sentinel.ErrUnavailable},
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "tenants_slug_key"}, sentinel.ErrAlreadyUsed},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, sentinel.ErrNotFound},
		{"pgx check", &pgconn.PgError{Code: "23514"}, sentinel.ErrInvalidValue},
		{"pgx restrict", &pgconn.PgError{Code: "23001"}, sentinel.ErrImmutable},
		{"pq unique", &pq.Error{Code: "23505", Constraint: "users_email_key"}, sentinel.ErrAlreadyUsed},
		{"pq restrict", &pq.Error{Code: "23001"}, sentinel.ErrImmutable},
		{"pq wrapped", fmt.Errorf("exec: %w", &pq.Error{Code: "23503"}), sentinel.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err, "driver error must stay in the chain")
		})
	}
}

func TestClassifyPassesThroughUnknownErrors(t *testing.T) {
	assert.NoError(t, Classify("op", nil))

	plain := errors.New("connection reset")
	err := Classify("insert tenant", plain)
	assert.ErrorIs(t, err, plain)
	assert.EqualError(t, err, "insert tenant: connection reset")

	syntax := &pgconn.PgError{Code: "42601"}
	err = Classify("insert tenant", syntax)
	for _, s := range []error{sentinel.ErrNotFound, sentinel.ErrAlreadyUsed, sentinel.ErrInvalidValue, sentinel.ErrImmutable} {
		assert.NotErrorIs(t, err, s)
	}
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "tenants_slug_key", ConstraintName(&pgconn.PgError{Code: "23505", ConstraintName: "tenants_slug_key"}))
	assert.Equal(t, "users_email_key", ConstraintName(fmt.Errorf("x: %w", &pq.Error{Constraint: "users_email_key"})))
	assert.Empty(t, ConstraintName(errors.New("plain")))
}
