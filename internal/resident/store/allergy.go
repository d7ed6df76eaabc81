package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mealcare/internal/platform/database"
	"mealcare/internal/resident/models"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/tx"
)

const allergyColumns = `id, tenant_id, resident_id, allergen, severity, is_hard_restriction, notes, created_at, updated_at`

func (s *PostgresStore) CreateAllergy(ctx context.Context, a *models.Allergy) error {
	query := `
		INSERT INTO resident_allergies (id, tenant_id, resident_id, allergen, severity, is_hard_restriction, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(a.ID), uuid.UUID(a.TenantID), uuid.UUID(a.ResidentID), a.Allergen,
		database.NullString(string(a.Severity)), a.IsHardRestriction, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	return database.Classify("insert allergy", err)
}

func (s *PostgresStore) FindAllergy(ctx context.Context, tenantID domain.TenantID, id domain.AllergyID) (*models.Allergy, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+allergyColumns+` FROM resident_allergies WHERE tenant_id = $1 AND id = $2`,
		uuid.UUID(tenantID), uuid.UUID(id))
	a, err := scanAllergy(row)
	if err != nil {
		return nil, database.Classify("find allergy", err)
	}
	return a, nil
}

// ListAllergies returns a resident's allergies, hard restrictions first.
func (s *PostgresStore) ListAllergies(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID) ([]*models.Allergy, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+allergyColumns+` FROM resident_allergies
		 WHERE tenant_id = $1 AND resident_id = $2
		 ORDER BY is_hard_restriction DESC, allergen, id`,
		uuid.UUID(tenantID), uuid.UUID(residentID))
	if err != nil {
		return nil, database.Classify("list allergies", err)
	}
	defer rows.Close()

	var allergies []*models.Allergy
	for rows.Next() {
		a, err := scanAllergy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allergy: %w", err)
		}
		allergies = append(allergies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate allergies", err)
	}
	return allergies, nil
}

func (s *PostgresStore) UpdateAllergy(ctx context.Context, a *models.Allergy) error {
	query := `
		UPDATE resident_allergies
		SET allergen = $3, severity = $4, is_hard_restriction = $5, notes = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(a.TenantID), uuid.UUID(a.ID), a.Allergen,
		database.NullString(string(a.Severity)), a.IsHardRestriction, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update allergy", err)
	}
	return requireRow(res, "update allergy")
}

func (s *PostgresStore) DeleteAllergy(ctx context.Context, tenantID domain.TenantID, id domain.AllergyID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM resident_allergies WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete allergy", err)
	}
	return requireRow(res, "delete allergy")
}

func scanAllergy(row scanner) (*models.Allergy, error) {
	var (
		a                        models.Allergy
		id, tenantID, residentID uuid.UUID
		severity                 sql.NullString
	)
	if err := row.Scan(&id, &tenantID, &residentID, &a.Allergen, &severity,
		&a.IsHardRestriction, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ID = domain.AllergyID(id)
	a.TenantID = domain.TenantID(tenantID)
	a.ResidentID = domain.ResidentID(residentID)
	a.Severity = models.Severity(severity.String)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}
