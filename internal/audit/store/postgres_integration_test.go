//go:build integration

package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mealcare/internal/audit/models"
	"mealcare/internal/audit/store"
	"mealcare/internal/platform/database"
	tenantmodels "mealcare/internal/tenant/models"
	tenantstore "mealcare/internal/tenant/store/tenant"
	usermodels "mealcare/internal/user/models"
	userstore "mealcare/internal/user/store"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	tenants  *tenantstore.PostgresStore
	users    *userstore.PostgresStore
	tenant   *tenantmodels.Tenant
	user     *usermodels.User
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.tenants = tenantstore.NewPostgres(s.postgres.DB)
	s.users = userstore.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.Reset(ctx))

	now := time.Now().UTC()
	t, err := tenantmodels.NewTenant(domain.TenantID(uuid.New()), tenantmodels.TenantProfile{Name: "Oakview", Slug: "oakview"}, now)
	s.Require().NoError(err)
	s.Require().NoError(s.tenants.Create(ctx, t))
	s.tenant = t

	u, err := usermodels.NewUser(domain.UserID(uuid.New()), usermodels.Profile{
		TenantID: &t.ID,
		Email:    "admin@oakview.example",
		Role:     usermodels.RoleVenueAdmin,
	}, "hash", now)
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(ctx, u))
	s.user = u
}

func (s *PostgresStoreSuite) appendEntry(entityType string, at time.Time) *models.Entry {
	entityID := uuid.New()
	e := &models.Entry{
		ID:         domain.AuditRecordID(uuid.New()),
		TenantID:   &s.tenant.ID,
		UserID:     &s.user.ID,
		Action:     models.ActionUpdate,
		EntityType: entityType,
		EntityID:   &entityID,
		OldValue:   models.Snapshot{"diet_type": "regular"},
		NewValue:   models.Snapshot{"diet_type": "renal", "nested": map[string]any{"level": json.Number("4")}},
		Reason:     "dietitian review",
		IPAddress:  "10.0.0.7",
		UserAgent:  "mealcare-test",
		CreatedAt:  at,
	}
	s.Require().NoError(s.store.Append(context.Background(), e))
	return e
}

func (s *PostgresStoreSuite) TestAppendRoundTrip() {
	e := s.appendEntry(models.EntityResident, time.Now().UTC().Truncate(time.Microsecond))

	got, err := s.store.FindByID(context.Background(), e.ID)
	s.Require().NoError(err)
	s.Equal(e.NewValue, got.NewValue)
	s.Equal(e.OldValue, got.OldValue)
	s.Equal("10.0.0.7", got.IPAddress)
	s.Equal(e.CreatedAt, got.CreatedAt)
	s.Equal(s.user.ID, *got.UserID)
}

// TestDirectMutationRejectedByTrigger bypasses the store to show the table
// itself refuses UPDATE and DELETE.
func (s *PostgresStoreSuite) TestDirectMutationRejectedByTrigger() {
	ctx := context.Background()
	e := s.appendEntry(models.EntityResident, time.Now().UTC())

	_, err := s.postgres.DB.ExecContext(ctx, `UPDATE audit_logs SET reason = 'tampered' WHERE id = $1`, uuid.UUID(e.ID))
	s.ErrorIs(database.Classify("tamper", err), sentinel.ErrImmutable)

	_, err = s.postgres.DB.ExecContext(ctx, `DELETE FROM audit_logs WHERE id = $1`, uuid.UUID(e.ID))
	s.ErrorIs(database.Classify("tamper", err), sentinel.ErrImmutable)

	got, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("dietitian review", got.Reason)
}

func (s *PostgresStoreSuite) TestStoreMutationsRejected() {
	ctx := context.Background()
	e := s.appendEntry(models.EntityMealOrder, time.Now().UTC())

	s.ErrorIs(s.store.Update(ctx, e.ID, e), sentinel.ErrImmutable)
	s.ErrorIs(s.store.Delete(ctx, e.ID), sentinel.ErrImmutable)

	_, err := s.store.FindByID(ctx, e.ID)
	s.NoError(err)
}

func (s *PostgresStoreSuite) TestUserDeleteClearsUserReference() {
	ctx := context.Background()
	e := s.appendEntry(models.EntityResident, time.Now().UTC())

	s.Require().NoError(s.users.Delete(ctx, s.user.ID))

	got, err := s.store.FindByID(ctx, e.ID)
	s.Require().NoError(err)
	s.Nil(got.UserID)
	s.Equal("dietitian review", got.Reason)
}

func (s *PostgresStoreSuite) TestTenantDeleteCascades() {
	ctx := context.Background()
	e := s.appendEntry(models.EntityResident, time.Now().UTC())

	s.Require().NoError(s.tenants.Delete(ctx, s.tenant.ID))

	_, err := s.store.FindByID(ctx, e.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListNewestFirstWithFilters() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	oldest := s.appendEntry(models.EntityResident, base)
	order := s.appendEntry(models.EntityMealOrder, base.Add(time.Minute))
	newest := s.appendEntry(models.EntityResident, base.Add(2*time.Minute))

	all, err := s.store.List(ctx, models.Filter{TenantID: &s.tenant.ID})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(newest.ID, all[0].ID)
	s.Equal(oldest.ID, all[2].ID)

	residents, err := s.store.List(ctx, models.Filter{EntityType: models.EntityResident})
	s.Require().NoError(err)
	s.Len(residents, 2)

	one, err := s.store.List(ctx, models.Filter{EntityType: models.EntityMealOrder, EntityID: order.EntityID})
	s.Require().NoError(err)
	s.Require().Len(one, 1)
	s.Equal(order.ID, one[0].ID)

	limited, err := s.store.List(ctx, models.Filter{UserID: &s.user.ID, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Equal(newest.ID, limited[0].ID)
}

func (s *PostgresStoreSuite) TestSnapshotNumbersRoundTripExactly() {
	e := &models.Entry{
		ID:         domain.AuditRecordID(uuid.New()),
		TenantID:   &s.tenant.ID,
		Action:     models.ActionCreate,
		EntityType: models.EntityMealOrder,
		NewValue: models.Snapshot{
			"external_ref": json.Number("9007199254740993"),
			"portion":      json.Number("0.75"),
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.store.Append(context.Background(), e))

	got, err := s.store.FindByID(context.Background(), e.ID)
	s.Require().NoError(err)
	s.Equal(e.NewValue, got.NewValue)
}

func (s *PostgresStoreSuite) TestListBreaksTimestampTiesByInsertionOrder() {
	at := time.Now().UTC().Truncate(time.Microsecond)
	var appended []*models.Entry
	for i := 0; i < 5; i++ {
		appended = append(appended, s.appendEntry(models.EntityMealOrder, at))
	}

	got, err := s.store.List(context.Background(), models.Filter{TenantID: &s.tenant.ID})
	s.Require().NoError(err)
	s.Require().Len(got, len(appended))
	for i, e := range got {
		s.Equal(appended[len(appended)-1-i].ID, e.ID)
	}
}
