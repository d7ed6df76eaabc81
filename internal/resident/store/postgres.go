// Package store persists residents and their allergies.
//
// Resident updates are compare-and-increment: one UPDATE guarded by the
// caller's version, so two writers holding the same version can never both
// land.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mealcare/internal/platform/database"
	"mealcare/internal/resident/models"
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

const residentColumns = `
	id, tenant_id, room_id, wing_id, first_name, last_name, date_of_birth,
	diet_type, iddsi_level, meal_size, fluid_restriction_ml, is_active,
	admission_date, discharge_date, notes, version, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, r *models.Resident) error {
	query := `
		INSERT INTO residents (
			id, tenant_id, room_id, wing_id, first_name, last_name, date_of_birth,
			diet_type, iddsi_level, meal_size, fluid_restriction_ml, is_active,
			admission_date, discharge_date, notes, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, $11, $12, $13::date, $14::date, $15, $16, $17, $18)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(r.ID), uuid.UUID(r.TenantID),
		domain.NullableUUID(r.RoomID), domain.NullableUUID(r.WingID),
		r.FirstName, r.LastName, database.NullDate(r.DateOfBirth),
		database.NullString(string(r.DietType)), database.NullString(string(r.IDDSILevel)),
		string(r.MealSize), database.NullInt(r.FluidRestrictionML), r.IsActive,
		database.NullDate(r.AdmissionDate), database.NullDate(r.DischargeDate),
		r.Notes, r.Version, r.CreatedAt, r.UpdatedAt,
	)
	return database.Classify("insert resident", err)
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID) (*models.Resident, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE tenant_id = $1 AND id = $2`,
		uuid.UUID(tenantID), uuid.UUID(id))
	r, err := scanResident(row)
	if err != nil {
		return nil, database.Classify("find resident", err)
	}
	return r, nil
}

// List returns the tenant's residents ordered by last name.
func (s *PostgresStore) List(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Resident, error) {
	query := `SELECT ` + residentColumns + `
		FROM residents
		WHERE tenant_id = $1
		  AND ($2::uuid IS NULL OR wing_id = $2::uuid)
		  AND ($3 = FALSE OR is_active)
		ORDER BY last_name, first_name, id`
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query,
		uuid.UUID(tenantID), domain.NullableUUID(f.WingID), f.ActiveOnly)
	if err != nil {
		return nil, database.Classify("list residents", err)
	}
	defer rows.Close()

	var residents []*models.Resident
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		residents = append(residents, r)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate residents", err)
	}
	return residents, nil
}

// Update writes r if the stored version still equals expectedVersion, and sets
// r.Version to the incremented value. A stale version yields
// sentinel.ErrVersionConflict; a missing row yields sentinel.ErrNotFound.
func (s *PostgresStore) Update(ctx context.Context, r *models.Resident, expectedVersion int) error {
	query := `
		UPDATE residents
		SET room_id = $4, wing_id = $5, first_name = $6, last_name = $7,
		    date_of_birth = $8::date, diet_type = $9, iddsi_level = $10, meal_size = $11,
		    fluid_restriction_ml = $12, is_active = $13, admission_date = $14::date,
		    discharge_date = $15::date, notes = $16, updated_at = $17,
		    version = version + 1
		WHERE tenant_id = $1 AND id = $2 AND version = $3
		RETURNING version
	`
	conn := tx.Conn(ctx, s.db)
	var version int
	err := conn.QueryRowContext(ctx, query,
		uuid.UUID(r.TenantID), uuid.UUID(r.ID), expectedVersion,
		domain.NullableUUID(r.RoomID), domain.NullableUUID(r.WingID),
		r.FirstName, r.LastName, database.NullDate(r.DateOfBirth),
		database.NullString(string(r.DietType)), database.NullString(string(r.IDDSILevel)),
		string(r.MealSize), database.NullInt(r.FluidRestrictionML), r.IsActive,
		database.NullDate(r.AdmissionDate), database.NullDate(r.DischargeDate),
		r.Notes, r.UpdatedAt,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.missedUpdate(ctx, conn, r.TenantID, r.ID, expectedVersion)
		}
		return database.Classify("update resident", err)
	}
	r.Version = version
	return nil
}

// missedUpdate explains why a guarded update touched no row.
func (s *PostgresStore) missedUpdate(ctx context.Context, conn tx.DBTX, tenantID domain.TenantID, id domain.ResidentID, expected int) error {
	var current int
	err := conn.QueryRowContext(ctx,
		`SELECT version FROM residents WHERE tenant_id = $1 AND id = $2`,
		uuid.UUID(tenantID), uuid.UUID(id)).Scan(&current)
	if err != nil {
		return database.Classify("update resident", err)
	}
	return fmt.Errorf("update resident: expected version %d, stored %d: %w", expected, current, sentinel.ErrVersionConflict)
}

func (s *PostgresStore) Delete(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM residents WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete resident", err)
	}
	return requireRow(res, "delete resident")
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

func scanResident(row scanner) (*models.Resident, error) {
	var (
		r                         models.Resident
		id, tenantID              uuid.UUID
		roomID, wingID            uuid.NullUUID
		dob, admission, discharge sql.NullTime
		dietType, iddsiLevel      sql.NullString
		mealSize                  string
		fluid                     sql.NullInt64
		createdAt, updatedAt      time.Time
	)
	if err := row.Scan(&id, &tenantID, &roomID, &wingID, &r.FirstName, &r.LastName, &dob,
		&dietType, &iddsiLevel, &mealSize, &fluid, &r.IsActive,
		&admission, &discharge, &r.Notes, &r.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	r.ID = domain.ResidentID(id)
	r.TenantID = domain.TenantID(tenantID)
	r.RoomID = domain.FromNullableUUID[domain.RoomID](roomID)
	r.WingID = domain.FromNullableUUID[domain.WingID](wingID)
	r.DateOfBirth = database.DatePtr(dob)
	r.DietType = models.DietType(dietType.String)
	r.IDDSILevel = models.IDDSILevel(iddsiLevel.String)
	r.MealSize = models.MealSize(mealSize)
	r.FluidRestrictionML = database.IntPtr(fluid)
	r.AdmissionDate = database.DatePtr(admission)
	r.DischargeDate = database.DatePtr(discharge)
	r.CreatedAt = createdAt.UTC()
	r.UpdatedAt = updatedAt.UTC()
	return &r, nil
}
