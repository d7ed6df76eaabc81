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

	menumodels "mealcare/internal/menu/models"
	menustore "mealcare/internal/menu/store"
	"mealcare/internal/order/models"
	"mealcare/internal/order/store"
	residentmodels "mealcare/internal/resident/models"
	residentstore "mealcare/internal/resident/store"
	tenantmodels "mealcare/internal/tenant/models"
	tenantstore "mealcare/internal/tenant/store/tenant"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	store     *store.PostgresStore
	tenants   *tenantstore.PostgresStore
	residents *residentstore.PostgresStore
	menus     *menustore.PostgresStore
	tenantID  domain.TenantID
	resident  *residentmodels.Resident
	menu      *menumodels.Menu
	item      *menumodels.Item
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
	s.residents = residentstore.NewPostgres(s.postgres.DB)
	s.menus = menustore.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	s.Require().NoError(s.postgres.Reset(ctx))

	t, err := tenantmodels.NewTenant(domain.TenantID(uuid.New()), tenantmodels.TenantProfile{Name: "Oakview", Slug: "oakview"}, now)
	s.Require().NoError(err)
	s.Require().NoError(s.tenants.Create(ctx, t))
	s.tenantID = t.ID

	s.resident, err = residentmodels.NewResident(domain.ResidentID(uuid.New()), t.ID, residentmodels.Profile{FirstName: "Jane", LastName: "Doe"}, now)
	s.Require().NoError(err)
	s.Require().NoError(s.residents.Create(ctx, s.resident))

	s.menu, err = menumodels.NewMenu(domain.MenuID(uuid.New()), t.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), menumodels.MealLunch, now)
	s.Require().NoError(err)
	s.Require().NoError(s.menus.Create(ctx, s.menu))

	s.item, err = menumodels.NewItem(domain.MenuItemID(uuid.New()), t.ID, s.menu.ID, menumodels.ItemProfile{
		ComponentType: menumodels.ComponentMain, Name: "Fish pie",
	}, now)
	s.Require().NoError(err)
	s.Require().NoError(s.menus.CreateItem(ctx, s.item))
}

func (s *PostgresStoreSuite) newOrder() *models.Order {
	o, err := models.NewOrder(domain.MealOrderID(uuid.New()), s.resident.ID, s.menu, "", nil, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	return o
}

func (s *PostgresStoreSuite) createOrder() *models.Order {
	o := s.newOrder()
	s.Require().NoError(s.store.Create(context.Background(), o))
	return o
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	o := s.createOrder()
	got, err := s.store.FindByID(context.Background(), s.tenantID, o.ID)
	s.Require().NoError(err)
	s.Equal(o, got)
}

// TestConcurrentIdenticalCreates races creates for the same resident, date
// and meal; exactly one row is stored.
func (s *PostgresStoreSuite) TestConcurrentIdenticalCreates() {
	ctx := context.Background()
	const writers = 8

	var successes, conflicts atomic.Int32
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		o := s.newOrder()
		g.Go(func() error {
			err := s.store.Create(ctx, o)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
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

	orders, err := s.store.List(ctx, s.tenantID, models.Filter{ResidentID: &s.resident.ID})
	s.Require().NoError(err)
	s.Len(orders, 1)
}

func (s *PostgresStoreSuite) TestVersionedUpdate() {
	ctx := context.Background()
	o := s.createOrder()

	s.Require().NoError(o.SetNotes("no gravy", time.Now().UTC()))
	s.Require().NoError(s.store.Update(ctx, o, 0))
	s.Equal(1, o.Version)

	s.ErrorIs(s.store.Update(ctx, o, 0), sentinel.ErrVersionConflict)
}

func (s *PostgresStoreSuite) TestConcurrentUpdatesSameVersion() {
	ctx := context.Background()
	base := s.createOrder()

	var successes atomic.Int32
	var g errgroup.Group
	for i := 0; i < 5; i++ {
		o := *base
		o.Notes = uuid.NewString()
		g.Go(func() error {
			err := s.store.Update(ctx, &o, 0)
			if err == nil {
				successes.Add(1)
				return nil
			}
			if errors.Is(err, sentinel.ErrVersionConflict) {
				return nil
			}
			return err
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(int32(1), successes.Load())

	got, err := s.store.FindByID(ctx, s.tenantID, base.ID)
	s.Require().NoError(err)
	s.Equal(1, got.Version)
}

func (s *PostgresStoreSuite) TestLockedOrderRejectsUpdate() {
	ctx := context.Background()
	o := s.createOrder()
	s.Require().NoError(o.Lock(time.Now().UTC()))
	s.Require().NoError(s.store.Update(ctx, o, 0))
	s.True(o.IsLocked)

	// A writer holding the current version of a locked row.
	o.IsLocked = false
	o.Notes = "late change"
	s.ErrorIs(s.store.Update(ctx, o, 1), sentinel.ErrInvalidState)

	got, err := s.store.FindByID(ctx, s.tenantID, o.ID)
	s.Require().NoError(err)
	s.True(got.IsLocked)
	s.Empty(got.Notes)
}

func (s *PostgresStoreSuite) TestComponents() {
	ctx := context.Background()
	o := s.createOrder()
	c, err := models.NewComponent(domain.ComponentID(uuid.New()), o, s.item, models.ComponentInput{Quantity: 1.5}, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateComponent(ctx, c))

	list, err := s.store.ListComponents(ctx, s.tenantID, o.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(c, list[0])

	// Removing the menu item keeps the component.
	s.Require().NoError(s.menus.DeleteItem(ctx, s.tenantID, s.item.ID))
	got, err := s.store.FindComponent(ctx, s.tenantID, o.ID, c.ID)
	s.Require().NoError(err)
	s.Nil(got.MenuItemID)
	s.Equal(menumodels.ComponentMain, got.ComponentType)

	s.Require().NoError(s.store.DeleteComponent(ctx, s.tenantID, o.ID, c.ID))
	s.ErrorIs(s.store.DeleteComponent(ctx, s.tenantID, o.ID, c.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestResidentDeleteCascades() {
	ctx := context.Background()
	o := s.createOrder()
	s.Require().NoError(s.residents.Delete(ctx, s.tenantID, s.resident.ID))
	_, err := s.store.FindByID(ctx, s.tenantID, o.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTenantDeleteCascades() {
	ctx := context.Background()
	o := s.createOrder()
	s.Require().NoError(s.tenants.Delete(ctx, s.tenantID))
	_, err := s.store.FindByID(ctx, s.tenantID, o.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.menus.FindByID(ctx, s.tenantID, s.menu.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByDate() {
	ctx := context.Background()
	s.createOrder()

	day := s.menu.Date
	orders, err := s.store.List(ctx, s.tenantID, models.Filter{Date: &day})
	s.Require().NoError(err)
	s.Len(orders, 1)

	next := day.AddDate(0, 0, 1)
	orders, err = s.store.List(ctx, s.tenantID, models.Filter{Date: &next})
	s.Require().NoError(err)
	s.Empty(orders)
}
