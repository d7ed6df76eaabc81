//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mealcare/internal/menu/models"
	"mealcare/internal/menu/store"
	tenantmodels "mealcare/internal/tenant/models"
	tenantstore "mealcare/internal/tenant/store/tenant"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	tenants  *tenantstore.PostgresStore
	tenantID domain.TenantID
	day      time.Time
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
	s.day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.Reset(ctx))
	t, err := tenantmodels.NewTenant(domain.TenantID(uuid.New()), tenantmodels.TenantProfile{Name: "Oakview", Slug: "oakview"}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.tenants.Create(ctx, t))
	s.tenantID = t.ID
}

func (s *PostgresStoreSuite) createMenu(date time.Time, mealType models.MealType) *models.Menu {
	m, err := models.NewMenu(domain.MenuID(uuid.New()), s.tenantID, date, mealType, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(context.Background(), m))
	return m
}

func (s *PostgresStoreSuite) TestMenuRoundTrip() {
	ctx := context.Background()
	m := s.createMenu(s.day, models.MealLunch)

	got, err := s.store.FindByID(ctx, s.tenantID, m.ID)
	s.Require().NoError(err)
	s.Equal(m, got)

	bySlot, err := s.store.FindBySlot(ctx, s.tenantID, s.day, models.MealLunch)
	s.Require().NoError(err)
	s.Equal(m.ID, bySlot.ID)
}

func (s *PostgresStoreSuite) TestOneMenuPerSlot() {
	s.createMenu(s.day, models.MealDinner)

	dup, err := models.NewMenu(domain.MenuID(uuid.New()), s.tenantID, s.day, models.MealDinner, time.Now().UTC())
	s.Require().NoError(err)
	s.ErrorIs(s.store.Create(context.Background(), dup), sentinel.ErrAlreadyUsed)
}

func (s *PostgresStoreSuite) TestListByDateRange() {
	ctx := context.Background()
	s.createMenu(s.day, models.MealDinner)
	s.createMenu(s.day, models.MealBreakfast)
	s.createMenu(s.day.AddDate(0, 0, 1), models.MealLunch)
	s.createMenu(s.day.AddDate(0, 0, 7), models.MealLunch)

	to := s.day.AddDate(0, 0, 1)
	menus, err := s.store.List(ctx, s.tenantID, models.Filter{From: &s.day, To: &to})
	s.Require().NoError(err)
	s.Require().Len(menus, 3)
	s.Equal(models.MealBreakfast, menus[0].MealType)
	s.Equal(models.MealDinner, menus[1].MealType)
	s.Equal(to, menus[2].Date)

	lunches, err := s.store.List(ctx, s.tenantID, models.Filter{MealType: models.MealLunch})
	s.Require().NoError(err)
	s.Len(lunches, 2)
}

func (s *PostgresStoreSuite) TestPublishState() {
	ctx := context.Background()
	m := s.createMenu(s.day, models.MealSupper)
	at := time.Now().UTC().Truncate(time.Microsecond)
	s.Require().NoError(m.Publish(nil, at))
	s.Require().NoError(s.store.Update(ctx, m))

	published, err := s.store.List(ctx, s.tenantID, models.Filter{PublishedOnly: true})
	s.Require().NoError(err)
	s.Require().Len(published, 1)
	s.Equal(&at, published[0].PublishedAt)
	s.Nil(published[0].PublishedBy)
}

func (s *PostgresStoreSuite) TestItemTagsRoundTrip() {
	ctx := context.Background()
	m := s.createMenu(s.day, models.MealLunch)
	portion := 300
	item, err := models.NewItem(domain.MenuItemID(uuid.New()), s.tenantID, m.ID, models.ItemProfile{
		ComponentType: models.ComponentMain,
		Name:          "Beef stew",
		IDDSILevels:   []string{"level_7", "level_6"},
		Allergens:     []string{"celery"},
		PortionSizeG:  &portion,
	}, time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateItem(ctx, item))

	got, err := s.store.FindItem(ctx, s.tenantID, item.ID)
	s.Require().NoError(err)
	s.Equal(item, got)

	item.Allergens = []string{}
	s.Require().NoError(s.store.UpdateItem(ctx, item))
	got, err = s.store.FindItem(ctx, s.tenantID, item.ID)
	s.Require().NoError(err)
	s.Empty(got.Allergens)
}

func (s *PostgresStoreSuite) TestItemsCascadeWithMenu() {
	ctx := context.Background()
	m := s.createMenu(s.day, models.MealLunch)
	item, err := models.NewItem(domain.MenuItemID(uuid.New()), s.tenantID, m.ID, models.ItemProfile{
		ComponentType: models.ComponentSoup, Name: "Leek soup",
	}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateItem(ctx, item))

	s.Require().NoError(s.store.Delete(ctx, s.tenantID, m.ID))
	_, err = s.store.FindItem(ctx, s.tenantID, item.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestItemForUnknownMenu() {
	item, err := models.NewItem(domain.MenuItemID(uuid.New()), s.tenantID, domain.MenuID(uuid.New()), models.ItemProfile{
		ComponentType: models.ComponentSoup, Name: "Leek soup",
	}, time.Now().UTC())
	s.Require().NoError(err)
	s.ErrorIs(s.store.CreateItem(context.Background(), item), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTenantDeleteCascades() {
	ctx := context.Background()
	m := s.createMenu(s.day, models.MealLunch)
	s.Require().NoError(s.tenants.Delete(ctx, s.tenantID))
	_, err := s.store.FindByID(ctx, s.tenantID, m.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
