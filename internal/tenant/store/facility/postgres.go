// Package facility persists the wings and rooms of a tenant. Every query is
// scoped by tenant id; a row owned by another tenant reads as not found.
package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mealcare/internal/platform/database"
	"mealcare/internal/tenant/models"
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

const (
	wingColumns = `id, tenant_id, name, floor_number, capacity, is_active, created_at, updated_at`
	roomColumns = `id, tenant_id, wing_id, room_number, bed_count, is_active, created_at, updated_at`
)

func (s *PostgresStore) CreateWing(ctx context.Context, w *models.Wing) error {
	query := `
		INSERT INTO wings (id, tenant_id, name, floor_number, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(w.ID), uuid.UUID(w.TenantID), w.Name,
		database.NullInt(w.FloorNumber), database.NullInt(w.Capacity),
		w.IsActive, w.CreatedAt, w.UpdatedAt,
	)
	return database.Classify("insert wing", err)
}

func (s *PostgresStore) FindWing(ctx context.Context, tenantID domain.TenantID, id domain.WingID) (*models.Wing, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+wingColumns+` FROM wings WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	w, err := scanWing(row)
	if err != nil {
		return nil, database.Classify("find wing", err)
	}
	return w, nil
}

func (s *PostgresStore) ListWings(ctx context.Context, tenantID domain.TenantID) ([]*models.Wing, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+wingColumns+` FROM wings WHERE tenant_id = $1 ORDER BY name, id`, uuid.UUID(tenantID))
	if err != nil {
		return nil, database.Classify("list wings", err)
	}
	defer rows.Close()

	var wings []*models.Wing
	for rows.Next() {
		w, err := scanWing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wing: %w", err)
		}
		wings = append(wings, w)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate wings", err)
	}
	return wings, nil
}

func (s *PostgresStore) UpdateWing(ctx context.Context, w *models.Wing) error {
	query := `
		UPDATE wings SET name = $3, floor_number = $4, capacity = $5, is_active = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(w.TenantID), uuid.UUID(w.ID), w.Name,
		database.NullInt(w.FloorNumber), database.NullInt(w.Capacity), w.IsActive, w.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update wing", err)
	}
	return requireRow(res, "update wing")
}

// DeleteWing removes the wing. Rooms and residents in it are kept with their
// wing cleared.
func (s *PostgresStore) DeleteWing(ctx context.Context, tenantID domain.TenantID, id domain.WingID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM wings WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete wing", err)
	}
	return requireRow(res, "delete wing")
}

func (s *PostgresStore) CreateRoom(ctx context.Context, r *models.Room) error {
	query := `
		INSERT INTO rooms (id, tenant_id, wing_id, room_number, bed_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(r.ID), uuid.UUID(r.TenantID), domain.NullableUUID(r.WingID),
		r.RoomNumber, r.BedCount, r.IsActive, r.CreatedAt, r.UpdatedAt,
	)
	return database.Classify("insert room", err)
}

func (s *PostgresStore) FindRoom(ctx context.Context, tenantID domain.TenantID, id domain.RoomID) (*models.Room, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	r, err := scanRoom(row)
	if err != nil {
		return nil, database.Classify("find room", err)
	}
	return r, nil
}

// ListRooms returns the tenant's rooms, optionally only those in one wing.
func (s *PostgresStore) ListRooms(ctx context.Context, tenantID domain.TenantID, wingID *domain.WingID) ([]*models.Room, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms
		 WHERE tenant_id = $1 AND ($2::uuid IS NULL OR wing_id = $2::uuid)
		 ORDER BY room_number, id`,
		uuid.UUID(tenantID), domain.NullableUUID(wingID))
	if err != nil {
		return nil, database.Classify("list rooms", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate rooms", err)
	}
	return rooms, nil
}

func (s *PostgresStore) UpdateRoom(ctx context.Context, r *models.Room) error {
	query := `
		UPDATE rooms SET wing_id = $3, room_number = $4, bed_count = $5, is_active = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(r.TenantID), uuid.UUID(r.ID), domain.NullableUUID(r.WingID),
		r.RoomNumber, r.BedCount, r.IsActive, r.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update room", err)
	}
	return requireRow(res, "update room")
}

func (s *PostgresStore) DeleteRoom(ctx context.Context, tenantID domain.TenantID, id domain.RoomID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM rooms WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete room", err)
	}
	return requireRow(res, "delete room")
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

func scanWing(row scanner) (*models.Wing, error) {
	var (
		w               models.Wing
		id, tenantID    uuid.UUID
		floor, capacity sql.NullInt64
	)
	if err := row.Scan(&id, &tenantID, &w.Name, &floor, &capacity, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.ID = domain.WingID(id)
	w.TenantID = domain.TenantID(tenantID)
	w.FloorNumber = database.IntPtr(floor)
	w.Capacity = database.IntPtr(capacity)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return &w, nil
}

func scanRoom(row scanner) (*models.Room, error) {
	var (
		r            models.Room
		id, tenantID uuid.UUID
		wingID       uuid.NullUUID
	)
	if err := row.Scan(&id, &tenantID, &wingID, &r.RoomNumber, &r.BedCount, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ID = domain.RoomID(id)
	r.TenantID = domain.TenantID(tenantID)
	r.WingID = domain.FromNullableUUID[domain.WingID](wingID)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return &r, nil
}
