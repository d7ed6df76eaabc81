package tenant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mealcare/internal/platform/database"
	"mealcare/internal/tenant/models"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
)

// PostgresStore persists tenants.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tenantColumns = `id, name, slug, contact_email, phone, address, timezone, settings::text, is_active, created_at, updated_at`

// Create inserts t. A taken slug yields sentinel.ErrAlreadyUsed.
func (s *PostgresStore) Create(ctx context.Context, t *models.Tenant) error {
	settings, err := encodeSettings(t.Settings)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tenants (id, name, slug, contact_email, phone, address, timezone, settings, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::jsonb, $9, $10, $11)
	`
	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(t.ID), t.Name, t.Slug, t.ContactEmail, t.Phone, t.Address, t.Timezone,
		settings, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	return database.Classify("insert tenant", err)
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.TenantID) (*models.Tenant, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, uuid.UUID(id))
	t, err := scanTenant(row)
	if err != nil {
		return nil, database.Classify("find tenant", err)
	}
	return t, nil
}

func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
	t, err := scanTenant(row)
	if err != nil {
		return nil, database.Classify("find tenant by slug", err)
	}
	return t, nil
}

// List returns tenants ordered by name.
func (s *PostgresStore) List(ctx context.Context, activeOnly bool) ([]*models.Tenant, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE ($1 = FALSE OR is_active) ORDER BY name, id`, activeOnly)
	if err != nil {
		return nil, database.Classify("list tenants", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate tenants", err)
	}
	return tenants, nil
}

// Execute locks the tenant row, hands it to fn and writes back whatever fn
// left in it. fn returning an error aborts without writing. Callers run it
// inside a transaction so the row lock spans the read and the write.
func (s *PostgresStore) Execute(ctx context.Context, id domain.TenantID, fn func(*models.Tenant) error) (*models.Tenant, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1 FOR UPDATE`, uuid.UUID(id))
	t, err := scanTenant(row)
	if err != nil {
		return nil, database.Classify("lock tenant", err)
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := s.update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PostgresStore) update(ctx context.Context, t *models.Tenant) error {
	settings, err := encodeSettings(t.Settings)
	if err != nil {
		return err
	}
	query := `
		UPDATE tenants
		SET name = $2, slug = $3, contact_email = $4, phone = $5, address = $6,
		    timezone = $7, settings = $8::text::jsonb, is_active = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(t.ID), t.Name, t.Slug, t.ContactEmail, t.Phone, t.Address,
		t.Timezone, settings, t.IsActive, t.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update tenant", err)
	}
	return requireRow(res, "update tenant")
}

// Delete removes the tenant; the schema cascades to every owned row.
func (s *PostgresStore) Delete(ctx context.Context, id domain.TenantID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return database.Classify("delete tenant", err)
	}
	return requireRow(res, "delete tenant")
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

func scanTenant(row scanner) (*models.Tenant, error) {
	var (
		t        models.Tenant
		id       uuid.UUID
		settings string
	)
	if err := row.Scan(&id, &t.Name, &t.Slug, &t.ContactEmail, &t.Phone, &t.Address, &t.Timezone,
		&settings, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.ID = domain.TenantID(id)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if err := json.Unmarshal([]byte(settings), &t.Settings); err != nil {
		return nil, fmt.Errorf("decode tenant settings: %w", err)
	}
	return &t, nil
}

func encodeSettings(settings map[string]any) (string, error) {
	if settings == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshal tenant settings: %w", err)
	}
	return string(raw), nil
}
