//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"mealcare/internal/resident/models"
	"mealcare/internal/resident/store"
	tenantmodels "mealcare/internal/tenant/models"
	"mealcare/internal/tenant/store/facility"
	tenantstore "mealcare/internal/tenant/store/tenant"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	store      *store.PostgresStore
	tenants    *tenantstore.PostgresStore
	facilities *facility.PostgresStore
	tenant     *tenantmodels.Tenant
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
	s.facilities = facility.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.Reset(ctx))
	t, err := tenantmodels.NewTenant(domain.TenantID(uuid.New()), tenantmodels.TenantProfile{Name: "Oakview", Slug: "oakview"}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.tenants.Create(ctx, t))
	s.tenant = t
}

func (s *PostgresStoreSuite) createJaneDoe() *models.Resident {
	admitted := time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC)
	fluid := 1200
	r, err := models.NewResident(domain.ResidentID(uuid.New()), s.tenant.ID, models.Profile{
		FirstName:          "Jane",
		LastName:           "Doe",
		DietType:           models.DietRenal,
		IDDSILevel:         models.IDDSILevel5,
		FluidRestrictionML: &fluid,
		AdmissionDate:      &admitted,
	}, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(context.Background(), r))
	return r
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	r := s.createJaneDoe()

	got, err := s.store.FindByID(context.Background(), s.tenant.ID, r.ID)
	s.Require().NoError(err)
	s.Equal(r, got)
}

// TestVersionedUpdate follows the Jane Doe example: version 0 updates to 1,
// and replaying version 0 is rejected.
func (s *PostgresStoreSuite) TestVersionedUpdate() {
	ctx := context.Background()
	r := s.createJaneDoe()

	r.Notes = "prefers tea"
	s.Require().NoError(s.store.Update(ctx, r, 0))
	s.Equal(1, r.Version)

	err := s.store.Update(ctx, r, 0)
	s.ErrorIs(err, sentinel.ErrVersionConflict)

	got, err := s.store.FindByID(ctx, s.tenant.ID, r.ID)
	s.Require().NoError(err)
	s.Equal(1, got.Version)
	s.Equal("prefers tea", got.Notes)
}

func (s *PostgresStoreSuite) TestUpdateMissingResident() {
	r := s.createJaneDoe()
	r.ID = domain.ResidentID(uuid.New())
	s.ErrorIs(s.store.Update(context.Background(), r, 0), sentinel.ErrNotFound)
}

// TestUpdateIsTenantScoped verifies a resident cannot be written through
// another tenant's id.
func (s *PostgresStoreSuite) TestUpdateIsTenantScoped() {
	r := s.createJaneDoe()
	r.TenantID = domain.TenantID(uuid.New())
	s.ErrorIs(s.store.Update(context.Background(), r, 0), sentinel.ErrNotFound)
}

// TestConcurrentUpdatesSameVersion races writers holding the same base
// version; exactly one lands and the version moves by exactly one.
func (s *PostgresStoreSuite) TestConcurrentUpdatesSameVersion() {
	ctx := context.Background()
	base := s.createJaneDoe()
	const writers = 10

	var successes, conflicts atomic.Int32
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		r := *base
		r.Notes = uuid.NewString()
		g.Go(func() error {
			err := s.store.Update(ctx, &r, 0)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrVersionConflict):
				conflicts.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(writers-1), conflicts.Load())

	got, err := s.store.FindByID(ctx, s.tenant.ID, base.ID)
	s.Require().NoError(err)
	s.Equal(1, got.Version)
}

func (s *PostgresStoreSuite) TestDischargeBeforeAdmissionRejected() {
	r := s.createJaneDoe()
	early := r.AdmissionDate.AddDate(0, 0, -1)
	r.DischargeDate = &early
	s.ErrorIs(s.store.Update(context.Background(), r, 0), sentinel.ErrInvalidValue)
}

func (s *PostgresStoreSuite) TestRoomDeleteUnassignsResident() {
	ctx := context.Background()
	room, err := tenantmodels.NewRoom(domain.RoomID(uuid.New()), s.tenant.ID, tenantmodels.RoomProfile{RoomNumber: "7"}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.facilities.CreateRoom(ctx, room))

	r := s.createJaneDoe()
	r.RoomID = &room.ID
	s.Require().NoError(s.store.Update(ctx, r, 0))

	s.Require().NoError(s.facilities.DeleteRoom(ctx, s.tenant.ID, room.ID))
	got, err := s.store.FindByID(ctx, s.tenant.ID, r.ID)
	s.Require().NoError(err)
	s.Nil(got.RoomID)
	s.Equal(1, got.Version)
}

func (s *PostgresStoreSuite) TestAllergiesCascadeWithResident() {
	ctx := context.Background()
	r := s.createJaneDoe()
	a, err := models.NewAllergy(domain.AllergyID(uuid.New()), s.tenant.ID, r.ID, models.AllergyProfile{
		Allergen: "Peanuts", Severity: models.SeverityAnaphylaxis,
	}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateAllergy(ctx, a))

	list, err := s.store.ListAllergies(ctx, s.tenant.ID, r.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(models.SeverityAnaphylaxis, list[0].Severity)
	s.True(list[0].IsHardRestriction)

	s.Require().NoError(s.store.Delete(ctx, s.tenant.ID, r.ID))
	_, err = s.store.FindAllergy(ctx, s.tenant.ID, a.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListFilters() {
	ctx := context.Background()
	wing, err := tenantmodels.NewWing(domain.WingID(uuid.New()), s.tenant.ID, tenantmodels.WingProfile{Name: "East"}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.facilities.CreateWing(ctx, wing))

	inWing := s.createJaneDoe()
	inWing.WingID = &wing.ID
	s.Require().NoError(s.store.Update(ctx, inWing, 0))
	discharged := s.createJaneDoe()
	discharged.IsActive = false
	s.Require().NoError(s.store.Update(ctx, discharged, 0))

	all, err := s.store.List(ctx, s.tenant.ID, models.Filter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	east, err := s.store.List(ctx, s.tenant.ID, models.Filter{WingID: &wing.ID})
	s.Require().NoError(err)
	s.Require().Len(east, 1)
	s.Equal(inWing.ID, east[0].ID)

	active, err := s.store.List(ctx, s.tenant.ID, models.Filter{ActiveOnly: true})
	s.Require().NoError(err)
	s.Len(active, 1)
}

func (s *PostgresStoreSuite) TestTenantDeleteCascades() {
	ctx := context.Background()
	r := s.createJaneDoe()
	s.Require().NoError(s.tenants.Delete(ctx, s.tenant.ID))
	_, err := s.store.FindByID(ctx, s.tenant.ID, r.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
