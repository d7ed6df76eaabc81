// Package store persists meal orders and their components.
//
// Order updates are compare-and-increment and refuse locked rows in the same
// statement, so a write racing a lock either lands before it or fails.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	menumodels "mealcare/internal/menu/models"
	"mealcare/internal/order/models"
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

const orderColumns = `
	id, tenant_id, resident_id, menu_id, order_date, meal_type, is_submitted,
	submitted_at, submitted_by, is_locked, locked_at, notes, created_by, version,
	created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO meal_orders (
			id, tenant_id, resident_id, menu_id, order_date, meal_type, is_submitted,
			submitted_at, submitted_by, is_locked, locked_at, notes, created_by, version,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(o.ID), uuid.UUID(o.TenantID), uuid.UUID(o.ResidentID), uuid.UUID(o.MenuID),
		database.DateParam(o.OrderDate), string(o.MealType), o.IsSubmitted,
		database.NullTime(o.SubmittedAt), domain.NullableUUID(o.SubmittedBy),
		o.IsLocked, database.NullTime(o.LockedAt), o.Notes, domain.NullableUUID(o.CreatedBy),
		o.Version, o.CreatedAt, o.UpdatedAt,
	)
	return database.Classify("insert meal order", err)
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID) (*models.Order, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM meal_orders WHERE tenant_id = $1 AND id = $2`,
		uuid.UUID(tenantID), uuid.UUID(id))
	o, err := scanOrder(row)
	if err != nil {
		return nil, database.Classify("find meal order", err)
	}
	return o, nil
}

// List returns orders newest service first: by date descending, then through
// the day's meals.
func (s *PostgresStore) List(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM meal_orders
		WHERE tenant_id = $1
		  AND ($2::date IS NULL OR order_date = $2::date)
		  AND ($3::text IS NULL OR meal_type = $3::text)
		  AND ($4::uuid IS NULL OR resident_id = $4::uuid)
		  AND ($5 = FALSE OR is_submitted)
		ORDER BY order_date DESC,
		  CASE meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END,
		  created_at, id`
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query,
		uuid.UUID(tenantID), database.NullDate(f.Date), database.NullString(string(f.MealType)),
		domain.NullableUUID(f.ResidentID), f.SubmittedOnly)
	if err != nil {
		return nil, database.Classify("list meal orders", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate meal orders", err)
	}
	return orders, nil
}

// Update writes o if the stored row is unlocked and still at expectedVersion,
// then sets o.Version to the incremented value. Locking an order is itself an
// update of an unlocked row.
//
// A missed update yields sentinel.ErrNotFound, sentinel.ErrVersionConflict or,
// when the caller's version is current but the row is locked,
// sentinel.ErrInvalidState.
func (s *PostgresStore) Update(ctx context.Context, o *models.Order, expectedVersion int) error {
	query := `
		UPDATE meal_orders
		SET is_submitted = $4, submitted_at = $5, submitted_by = $6, is_locked = $7,
		    locked_at = $8, notes = $9, updated_at = $10, version = version + 1
		WHERE tenant_id = $1 AND id = $2 AND version = $3 AND NOT is_locked
		RETURNING version
	`
	conn := tx.Conn(ctx, s.db)
	var version int
	err := conn.QueryRowContext(ctx, query,
		uuid.UUID(o.TenantID), uuid.UUID(o.ID), expectedVersion,
		o.IsSubmitted, database.NullTime(o.SubmittedAt), domain.NullableUUID(o.SubmittedBy),
		o.IsLocked, database.NullTime(o.LockedAt), o.Notes, o.UpdatedAt,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.missedUpdate(ctx, conn, o.TenantID, o.ID, expectedVersion)
		}
		return database.Classify("update meal order", err)
	}
	o.Version = version
	return nil
}

func (s *PostgresStore) missedUpdate(ctx context.Context, conn tx.DBTX, tenantID domain.TenantID, id domain.MealOrderID, expected int) error {
	var (
		current int
		locked  bool
	)
	err := conn.QueryRowContext(ctx,
		`SELECT version, is_locked FROM meal_orders WHERE tenant_id = $1 AND id = $2`,
		uuid.UUID(tenantID), uuid.UUID(id)).Scan(&current, &locked)
	if err != nil {
		return database.Classify("update meal order", err)
	}
	if current != expected {
		return fmt.Errorf("update meal order: expected version %d, stored %d: %w", expected, current, sentinel.ErrVersionConflict)
	}
	if locked {
		return fmt.Errorf("update meal order: order is locked: %w", sentinel.ErrInvalidState)
	}
	// Row matched on re-read; the lost write raced a change that was rolled back.
	return fmt.Errorf("update meal order: %w", sentinel.ErrVersionConflict)
}

// Delete removes the order and its components.
func (s *PostgresStore) Delete(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM meal_orders WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete meal order", err)
	}
	return requireRow(res, "delete meal order")
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

func scanOrder(row scanner) (*models.Order, error) {
	var (
		order                            models.Order
		id, tenantID, residentID, menuID uuid.UUID
		orderDate                        time.Time
		mealType                         string
		submittedAt, lockedAt            sql.NullTime
		submittedBy, createdBy           uuid.NullUUID
		createdAt, updatedAt             time.Time
	)
	if err := row.Scan(&id, &tenantID, &residentID, &menuID, &orderDate, &mealType, &order.IsSubmitted,
		&submittedAt, &submittedBy, &order.IsLocked, &lockedAt, &order.Notes, &createdBy, &order.Version,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	order.ID = domain.MealOrderID(id)
	order.TenantID = domain.TenantID(tenantID)
	order.ResidentID = domain.ResidentID(residentID)
	order.MenuID = domain.MenuID(menuID)
	order.OrderDate = database.DateValue(orderDate)
	order.MealType = menumodels.MealType(mealType)
	order.SubmittedAt = database.TimePtr(submittedAt)
	order.SubmittedBy = domain.FromNullableUUID[domain.UserID](submittedBy)
	order.LockedAt = database.TimePtr(lockedAt)
	order.CreatedBy = domain.FromNullableUUID[domain.UserID](createdBy)
	order.CreatedAt = createdAt.UTC()
	order.UpdatedAt = updatedAt.UTC()
	return &order, nil
}
