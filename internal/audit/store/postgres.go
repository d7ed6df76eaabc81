// Package store persists audit records. Both implementations are append-only:
// Update and Delete are rejected before any storage access.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mealcare/internal/audit/models"
	"mealcare/internal/platform/database"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
)

// PostgresStore persists audit records in the audit_logs table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `
	SELECT id, tenant_id, user_id, action, entity_type, entity_id,
	       old_value::text, new_value::text, reason, host(ip_address), user_agent, created_at
	FROM audit_logs`

// Append inserts e. The caller assigns ID and CreatedAt.
func (s *PostgresStore) Append(ctx context.Context, e *models.Entry) error {
	oldValue, err := snapshotParam(e.OldValue)
	if err != nil {
		return err
	}
	newValue, err := snapshotParam(e.NewValue)
	if err != nil {
		return err
	}
	ip := sql.NullString{String: e.IPAddress, Valid: e.IPAddress != ""}

	query := `
		INSERT INTO audit_logs (
			id, tenant_id, user_id, action, entity_type, entity_id,
			old_value, new_value, reason, ip_address, user_agent, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::jsonb, $8::text::jsonb, $9, $10::text::inet, $11, $12)
	`
	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(e.ID),
		domain.NullableUUID(e.TenantID),
		domain.NullableUUID(e.UserID),
		string(e.Action),
		e.EntityType,
		nullUUID(e.EntityID),
		oldValue,
		newValue,
		e.Reason,
		ip,
		e.UserAgent,
		e.CreatedAt,
	)
	return database.Classify("insert audit log", err)
}

// FindByID returns the record or sentinel.ErrNotFound.
func (s *PostgresStore) FindByID(ctx context.Context, id domain.AuditRecordID) (*models.Entry, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+` WHERE id = $1`, uuid.UUID(id))
	e, err := scanEntry(row)
	if err != nil {
		return nil, database.Classify("find audit log", err)
	}
	return e, nil
}

// List returns matching records newest first. Records sharing a creation time
// come back in reverse insertion order. Every filter column is indexed.
func (s *PostgresStore) List(ctx context.Context, f models.Filter) ([]*models.Entry, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.TenantID != nil {
		add("tenant_id = $%d", uuid.UUID(*f.TenantID))
	}
	if f.EntityType != "" {
		add("entity_type = $%d", f.EntityType)
	}
	if f.EntityID != nil {
		add("entity_id = $%d", *f.EntityID)
	}
	if f.UserID != nil {
		add("user_id = $%d", uuid.UUID(*f.UserID))
	}

	var b strings.Builder
	b.WriteString(selectColumns)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	args = append(args, f.EffectiveLimit())
	fmt.Fprintf(&b, " ORDER BY created_at DESC, seq DESC LIMIT $%d", len(args))

	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, database.Classify("list audit logs", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate audit logs", err)
	}
	return entries, nil
}

// Update always fails with sentinel.ErrImmutable without touching storage.
func (s *PostgresStore) Update(_ context.Context, id domain.AuditRecordID, _ *models.Entry) error {
	return fmt.Errorf("update audit log %s: %w", id, sentinel.ErrImmutable)
}

// Delete always fails with sentinel.ErrImmutable without touching storage.
func (s *PostgresStore) Delete(_ context.Context, id domain.AuditRecordID) error {
	return fmt.Errorf("delete audit log %s: %w", id, sentinel.ErrImmutable)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.Entry, error) {
	var (
		e                  models.Entry
		id                 uuid.UUID
		tenantID, userID   uuid.NullUUID
		entityID           uuid.NullUUID
		action             string
		oldValue, newValue sql.NullString
		ip                 sql.NullString
	)
	if err := row.Scan(
		&id, &tenantID, &userID, &action, &e.EntityType, &entityID,
		&oldValue, &newValue, &e.Reason, &ip, &e.UserAgent, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.ID = domain.AuditRecordID(id)
	e.TenantID = domain.FromNullableUUID[domain.TenantID](tenantID)
	e.UserID = domain.FromNullableUUID[domain.UserID](userID)
	e.Action = models.Action(action)
	if entityID.Valid {
		eid := entityID.UUID
		e.EntityID = &eid
	}
	e.IPAddress = ip.String
	e.CreatedAt = e.CreatedAt.UTC()

	var err error
	if e.OldValue, err = decodeSnapshot(oldValue); err != nil {
		return nil, err
	}
	if e.NewValue, err = decodeSnapshot(newValue); err != nil {
		return nil, err
	}
	return &e, nil
}

// snapshotParam encodes a snapshot as JSON text. lib/pq sends []byte as bytea,
// so text is the form both drivers accept for a jsonb parameter.
func snapshotParam(s models.Snapshot) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func decodeSnapshot(v sql.NullString) (models.Snapshot, error) {
	if !v.Valid {
		return nil, nil
	}
	s, err := models.DecodeSnapshot([]byte(v.String))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
