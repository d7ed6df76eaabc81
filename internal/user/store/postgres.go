// Package store persists users. Email uniqueness is enforced by a
// case-insensitive unique index.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mealcare/internal/platform/database"
	"mealcare/internal/user/models"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, tenant_id, email, password_hash, first_name, last_name, role, is_active, is_staff, date_joined, last_login, updated_at`

// Create inserts u. A taken email yields sentinel.ErrAlreadyUsed; an unknown
// tenant yields sentinel.ErrNotFound.
func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, first_name, last_name, role, is_active, is_staff, date_joined, last_login, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(u.ID), domain.NullableUUID(u.TenantID), u.Email, u.PasswordHash,
		u.FirstName, u.LastName, string(u.Role), u.IsActive, u.IsStaff,
		u.DateJoined, database.NullTime(u.LastLogin), u.UpdatedAt,
	)
	return database.Classify("insert user", err)
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.UserID) (*models.User, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(id))
	u, err := scanUser(row)
	if err != nil {
		return nil, database.Classify("find user", err)
	}
	return u, nil
}

// FindByEmail matches case-insensitively, using the unique index on LOWER(email).
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, database.Classify("find user by email", err)
	}
	return u, nil
}

func (s *PostgresStore) List(ctx context.Context, f models.Filter) ([]*models.User, error) {
	var (
		conds []string
		args  []any
	)
	if f.TenantID != nil {
		args = append(args, uuid.UUID(*f.TenantID))
		conds = append(conds, fmt.Sprintf("tenant_id = $%d", len(args)))
	}
	if f.Role != "" {
		args = append(args, string(f.Role))
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	query := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY last_name, first_name, email`

	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify("list users", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate users", err)
	}
	return users, nil
}

// Update writes the profile and active flag. The password hash and login
// timestamp have their own statements.
func (s *PostgresStore) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET tenant_id = $2, email = $3, first_name = $4, last_name = $5, role = $6,
		    is_active = $7, is_staff = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(u.ID), domain.NullableUUID(u.TenantID), u.Email, u.FirstName, u.LastName,
		string(u.Role), u.IsActive, u.IsStaff, u.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update user", err)
	}
	return requireRow(res, "update user")
}

func (s *PostgresStore) SetPasswordHash(ctx context.Context, id domain.UserID, hash string, at time.Time) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, uuid.UUID(id), hash, at)
	if err != nil {
		return database.Classify("set password", err)
	}
	return requireRow(res, "set password")
}

func (s *PostgresStore) TouchLastLogin(ctx context.Context, id domain.UserID, at time.Time) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, uuid.UUID(id), at)
	if err != nil {
		return database.Classify("touch last login", err)
	}
	return requireRow(res, "touch last login")
}

// Delete removes the user. Audit rows keep their history with the user cleared.
func (s *PostgresStore) Delete(ctx context.Context, id domain.UserID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return database.Classify("delete user", err)
	}
	return requireRow(res, "delete user")
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u         models.User
		id        uuid.UUID
		tenantID  uuid.NullUUID
		role      string
		lastLogin sql.NullTime
	)
	if err := row.Scan(&id, &tenantID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&role, &u.IsActive, &u.IsStaff, &u.DateJoined, &lastLogin, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.ID = domain.UserID(id)
	u.TenantID = domain.FromNullableUUID[domain.TenantID](tenantID)
	u.Role = models.Role(role)
	u.LastLogin = database.TimePtr(lastLogin)
	u.DateJoined = u.DateJoined.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
