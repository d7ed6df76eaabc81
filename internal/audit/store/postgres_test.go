package store

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcare/internal/audit/models"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
)

func TestPostgresStore_MutationsNeverReachStorage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewPostgres(db)
	id := domain.AuditRecordID(uuid.New())

	err = s.Update(context.Background(), id, &models.Entry{Reason: "tamper"})
	assert.ErrorIs(t, err, sentinel.ErrImmutable)

	err = s.Delete(context.Background(), id)
	assert.ErrorIs(t, err, sentinel.ErrImmutable)

	// No expectations were registered: any query would have failed the test.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendBindsNullsForMissingFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := &models.Entry{
		ID:         domain.AuditRecordID(uuid.New()),
		Action:     models.ActionCreate,
		EntityType: models.EntityTenant,
		NewValue:   models.Snapshot{"slug": "oakview"},
		CreatedAt:  time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WithArgs(
			uuid.UUID(e.ID).String(),
			nil, nil,
			"create", "Tenant",
			nil,
			nil, `{"slug":"oakview"}`,
			"", nil, "",
			e.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgres(db).Append(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM audit_logs WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewPostgres(db).FindByID(context.Background(), domain.AuditRecordID(uuid.New()))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBuildsFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tenantID := domain.TenantID(uuid.New())
	entityID := uuid.New()
	recordID := uuid.New()
	created := time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "user_id", "action", "entity_type", "entity_id",
		"old_value", "new_value", "reason", "host", "user_agent", "created_at",
	}).AddRow(
		recordID.String(), uuid.UUID(tenantID).String(), nil, "update", "Resident", entityID.String(),
		`{"version":0}`, `{"version":1}`, "", "10.0.0.7", "kiosk/2.1", created,
	)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3 ORDER BY created_at DESC, seq DESC LIMIT $4")).
		WithArgs(uuid.UUID(tenantID).String(), "Resident", entityID.String(), 100).
		WillReturnRows(rows)

	entries, err := NewPostgres(db).List(context.Background(), models.Filter{
		TenantID:   &tenantID,
		EntityType: "Resident",
		EntityID:   &entityID,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, domain.AuditRecordID(recordID), got.ID)
	assert.Equal(t, tenantID, *got.TenantID)
	assert.Nil(t, got.UserID)
	assert.Equal(t, models.ActionUpdate, got.Action)
	assert.Equal(t, entityID, *got.EntityID)
	assert.Equal(t, models.Snapshot{"version": json.Number("0")}, got.OldValue)
	assert.Equal(t, models.Snapshot{"version": json.Number("1")}, got.NewValue)
	assert.Equal(t, "10.0.0.7", got.IPAddress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByIDKeepsNumbersExact(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	recordID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "user_id", "action", "entity_type", "entity_id",
		"old_value", "new_value", "reason", "host", "user_agent", "created_at",
	}).AddRow(
		recordID.String(), nil, nil, "create", "MealOrder", nil,
		nil, `{"external_ref": 9007199254740993, "count": 3}`, "", nil, "", time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC),
	)
	mock.ExpectQuery("FROM audit_logs WHERE id").WillReturnRows(rows)

	got, err := NewPostgres(db).FindByID(context.Background(), domain.AuditRecordID(recordID))
	require.NoError(t, err)
	assert.Nil(t, got.OldValue)
	assert.Equal(t, models.Snapshot{
		"external_ref": json.Number("9007199254740993"),
		"count":        json.Number("3"),
	}, got.NewValue)
	require.NoError(t, mock.ExpectationsWereMet())
}
