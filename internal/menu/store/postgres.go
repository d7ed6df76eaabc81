// Package store persists menus and menu items.
//
// Item tag sets live in text[] columns. They are bound through pq.Array as
// array literals and read back through their text form, which both drivers
// return the same way.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mealcare/internal/menu/models"
	"mealcare/internal/platform/database"
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

const menuColumns = `id, tenant_id, date, meal_type, is_published, published_at, published_by, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, m *models.Menu) error {
	query := `
		INSERT INTO menus (id, tenant_id, date, meal_type, is_published, published_at, published_by, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(m.ID), uuid.UUID(m.TenantID), database.DateParam(m.Date), string(m.MealType),
		m.IsPublished, database.NullTime(m.PublishedAt), domain.NullableUUID(m.PublishedBy),
		m.CreatedAt, m.UpdatedAt,
	)
	return database.Classify("insert menu", err)
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) (*models.Menu, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menus WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	m, err := scanMenu(row)
	if err != nil {
		return nil, database.Classify("find menu", err)
	}
	return m, nil
}

// FindBySlot returns the tenant's menu for date and mealType.
func (s *PostgresStore) FindBySlot(ctx context.Context, tenantID domain.TenantID, date time.Time, mealType models.MealType) (*models.Menu, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menus WHERE tenant_id = $1 AND date = $2::date AND meal_type = $3`,
		uuid.UUID(tenantID), database.DateParam(date), string(mealType))
	m, err := scanMenu(row)
	if err != nil {
		return nil, database.Classify("find menu", err)
	}
	return m, nil
}

// List returns menus by date, then in meal order through the day.
func (s *PostgresStore) List(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Menu, error) {
	query := `SELECT ` + menuColumns + `
		FROM menus
		WHERE tenant_id = $1
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		  AND ($4::text IS NULL OR meal_type = $4::text)
		  AND ($5 = FALSE OR is_published)
		ORDER BY date,
		  CASE meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END`
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query,
		uuid.UUID(tenantID), database.NullDate(f.From), database.NullDate(f.To),
		database.NullString(string(f.MealType)), f.PublishedOnly)
	if err != nil {
		return nil, database.Classify("list menus", err)
	}
	defer rows.Close()

	var menus []*models.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate menus", err)
	}
	return menus, nil
}

// Update writes the publication state. Date and meal type never change.
func (s *PostgresStore) Update(ctx context.Context, m *models.Menu) error {
	query := `
		UPDATE menus SET is_published = $3, published_at = $4, published_by = $5, updated_at = $6
		WHERE tenant_id = $1 AND id = $2
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(m.TenantID), uuid.UUID(m.ID), m.IsPublished,
		database.NullTime(m.PublishedAt), domain.NullableUUID(m.PublishedBy), m.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update menu", err)
	}
	return requireRow(res, "update menu")
}

// Delete removes the menu with its items and the orders placed against it.
func (s *PostgresStore) Delete(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM menus WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete menu", err)
	}
	return requireRow(res, "delete menu")
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

func scanMenu(row scanner) (*models.Menu, error) {
	var (
		m                    models.Menu
		id, tenantID         uuid.UUID
		date                 time.Time
		mealType             string
		publishedAt          sql.NullTime
		publishedBy          uuid.NullUUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &tenantID, &date, &mealType, &m.IsPublished, &publishedAt, &publishedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	m.ID = domain.MenuID(id)
	m.TenantID = domain.TenantID(tenantID)
	m.Date = database.DateValue(date)
	m.MealType = models.MealType(mealType)
	m.PublishedAt = database.TimePtr(publishedAt)
	m.PublishedBy = domain.FromNullableUUID[domain.UserID](publishedBy)
	m.CreatedAt = createdAt.UTC()
	m.UpdatedAt = updatedAt.UTC()
	return &m, nil
}
