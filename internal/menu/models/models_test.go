package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

var now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func TestNewMenuTruncatesDate(t *testing.T) {
	perth := time.FixedZone("AWST", 8*60*60)
	m, err := NewMenu(domain.MenuID(uuid.New()), domain.TenantID(uuid.New()), time.Date(2024, 3, 4, 18, 0, 0, 0, perth), MealDinner, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), m.Date)
	assert.False(t, m.IsPublished)
}

func TestNewMenuRejects(t *testing.T) {
	_, err := NewMenu(domain.MenuID(uuid.New()), domain.TenantID(uuid.New()), time.Time{}, MealLunch, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = NewMenu(domain.MenuID(uuid.New()), domain.TenantID(uuid.New()), now, MealType("brunch"), now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestPublishLifecycle(t *testing.T) {
	m, err := NewMenu(domain.MenuID(uuid.New()), domain.TenantID(uuid.New()), now, MealLunch, now)
	require.NoError(t, err)
	by := domain.UserID(uuid.New())

	require.NoError(t, m.Publish(&by, now))
	assert.True(t, m.IsPublished)
	assert.Equal(t, &now, m.PublishedAt)
	assert.Equal(t, &by, m.PublishedBy)
	assert.True(t, dErrors.HasCode(m.Publish(&by, now), dErrors.CodeInvalidState))

	require.NoError(t, m.Unpublish(now))
	assert.Nil(t, m.PublishedAt)
	assert.Nil(t, m.PublishedBy)
	assert.True(t, dErrors.HasCode(m.Unpublish(now), dErrors.CodeInvalidState))
}

func TestParseMealType(t *testing.T) {
	m, err := ParseMealType(" Supper ")
	require.NoError(t, err)
	assert.Equal(t, MealSupper, m)

	_, err = ParseMealType("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestFilterValidate(t *testing.T) {
	from := now
	to := now.AddDate(0, 0, -1)
	f := Filter{From: &from, To: &to}
	assert.True(t, dErrors.HasCode(f.Validate(), dErrors.CodeInvalidInput))

	f = Filter{MealType: "elevenses"}
	assert.True(t, dErrors.HasCode(f.Validate(), dErrors.CodeInvalidInput))

	assert.NoError(t, (&Filter{}).Validate())
}

func TestNewItemNormalisesSets(t *testing.T) {
	item, err := NewItem(domain.MenuItemID(uuid.New()), domain.TenantID(uuid.New()), domain.MenuID(uuid.New()), ItemProfile{
		ComponentType: ComponentMain,
		Name:          "  Roast chicken ",
		IDDSILevels:   []string{"level_7", "LEVEL_7", " level_5"},
		Allergens:     []string{"Gluten", "gluten", ""},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Roast chicken", item.Name)
	assert.Equal(t, []string{"level_7", "level_5"}, item.IDDSILevels)
	assert.Equal(t, []string{"gluten"}, item.Allergens)
	assert.True(t, item.IsAvailable)
}

func TestItemProfileValidate(t *testing.T) {
	negative := -1
	tests := []struct {
		name    string
		profile ItemProfile
	}{
		{"unknown component", ItemProfile{ComponentType: "starter", Name: "Soup"}},
		{"missing name", ItemProfile{ComponentType: ComponentSoup}},
		{"unknown IDDSI level", ItemProfile{ComponentType: ComponentSoup, Name: "Soup", IDDSILevels: []string{"level_9"}}},
		{"negative portion", ItemProfile{ComponentType: ComponentSoup, Name: "Soup", PortionSizeG: &negative}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItem(domain.MenuItemID(uuid.New()), domain.TenantID(uuid.New()), domain.MenuID(uuid.New()), tt.profile, now)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestConflictingAllergens(t *testing.T) {
	item := &Item{Allergens: []string{"peanuts", "dairy", "gluten"}}
	assert.Equal(t, []string{"peanuts", "gluten"}, item.ConflictingAllergens([]string{"gluten", "peanuts"}))
	assert.Empty(t, item.ConflictingAllergens([]string{"shellfish"}))
}
