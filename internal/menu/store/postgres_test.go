package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcare/internal/menu/models"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
)

func TestPostgresStore_CreateItemBindsArrayLiterals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)
	item := &models.Item{
		ID:            domain.MenuItemID(uuid.New()),
		TenantID:      domain.TenantID(uuid.New()),
		MenuID:        domain.MenuID(uuid.New()),
		ComponentType: models.ComponentMain,
		Name:          "Fish pie",
		IDDSILevels:   []string{"level_6", "level_7"},
		IsAvailable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO menu_items")).
		WithArgs(
			uuid.UUID(item.ID).String(), uuid.UUID(item.TenantID).String(), uuid.UUID(item.MenuID).String(),
			"main", "Fish pie", "",
			`{"level_6","level_7"}`, `{}`,
			nil, true, now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgres(db).CreateItem(context.Background(), item))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ScanItemReadsArrayText(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)
	id, tenantID, menuID := uuid.New(), uuid.New(), uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "menu_id", "component_type", "name", "description",
		"iddsi_levels", "allergens", "portion_size_g", "is_available", "created_at", "updated_at",
	}).AddRow(id.String(), tenantID.String(), menuID.String(), "soup", "Pumpkin soup", "",
		"{level_3}", "{dairy,celery}", int64(250), true, now, now)
	mock.ExpectQuery("FROM menu_items WHERE tenant_id").WillReturnRows(rows)

	item, err := NewPostgres(db).FindItem(context.Background(), domain.TenantID(tenantID), domain.MenuItemID(id))
	require.NoError(t, err)
	assert.Equal(t, []string{"level_3"}, item.IDDSILevels)
	assert.Equal(t, []string{"dairy", "celery"}, item.Allergens)
	require.NotNil(t, item.PortionSizeG)
	assert.Equal(t, 250, *item.PortionSizeG)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateMissingMenu(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE menus SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewPostgres(db).Update(context.Background(), &models.Menu{ID: domain.MenuID(uuid.New())})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
