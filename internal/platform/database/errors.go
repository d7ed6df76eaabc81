package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"mealcare/pkg/platform/sentinel"
)

// PostgreSQL SQLSTATE codes the stores care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeRestrictViolation   = "23001"
	codeQueryCanceled       = "57014"
)

// PgError is the driver-neutral view of a PostgreSQL error.
type PgError struct {
	Code       string
	Constraint string
	Message    string
}

// AsPgError extracts the SQLSTATE from either supported driver.
func AsPgError(err error) (PgError, bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return PgError{Code: pgxErr.Code, Constraint: pgxErr.ConstraintName, Message: pgxErr.Message}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return PgError{Code: string(pqErr.Code), Constraint: pqErr.Constraint, Message: pqErr.Message}, true
	}
	return PgError{}, false
}

// Classify wraps err with op and, where the cause is a known storage fact, the
// matching sentinel so services can use errors.Is. The driver error stays in
// the chain.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	pg, ok := AsPgError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	var fact error
	switch pg.Code {
	case codeUniqueViolation:
		fact = sentinel.ErrAlreadyUsed
	case codeForeignKeyViolation:
		fact = sentinel.ErrNotFound
	case codeCheckViolation, codeNotNullViolation:
		fact = sentinel.ErrInvalidValue
	case codeRestrictViolation:
		fact = sentinel.ErrImmutable
	case codeQueryCanceled:
		fact = sentinel.ErrUnavailable
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
	if pg.Constraint != "" {
		return fmt.Errorf("%s (%s): %w: %w", op, pg.Constraint, fact, err)
	}
	return fmt.Errorf("%s: %w: %w", op, fact, err)
}

// ConstraintName reports the violated constraint, if the driver supplied one.
func ConstraintName(err error) string {
	pg, _ := AsPgError(err)
	return pg.Constraint
}
