package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menumodels "mealcare/internal/menu/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

var now = time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)

func lunchMenu(t *testing.T) *menumodels.Menu {
	t.Helper()
	m, err := menumodels.NewMenu(domain.MenuID(uuid.New()), domain.TenantID(uuid.New()), now, menumodels.MealLunch, now)
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(domain.MealOrderID(uuid.New()), domain.ResidentID(uuid.New()), lunchMenu(t), " no onions ", nil, now)
	require.NoError(t, err)
	return o
}

func TestNewOrderCopiesMenuSlot(t *testing.T) {
	menu := lunchMenu(t)
	by := domain.UserID(uuid.New())

	o, err := NewOrder(domain.MealOrderID(uuid.New()), domain.ResidentID(uuid.New()), menu, "", &by, now)
	require.NoError(t, err)
	assert.Equal(t, menu.TenantID, o.TenantID)
	assert.Equal(t, menu.Date, o.OrderDate)
	assert.Equal(t, menumodels.MealLunch, o.MealType)
	assert.Equal(t, &by, o.CreatedBy)
	assert.Zero(t, o.Version)
}

func TestOrderLifecycle(t *testing.T) {
	o := newOrder(t)
	assert.Equal(t, "no onions", o.Notes)
	by := domain.UserID(uuid.New())

	require.NoError(t, o.Submit(&by, now))
	assert.True(t, o.IsSubmitted)
	assert.Equal(t, &by, o.SubmittedBy)
	assert.True(t, dErrors.HasCode(o.Submit(&by, now), dErrors.CodeInvalidState))

	require.NoError(t, o.Lock(now))
	assert.Equal(t, &now, o.LockedAt)
	assert.True(t, dErrors.HasCode(o.Lock(now), dErrors.CodeInvalidState))
	assert.True(t, dErrors.HasCode(o.Touch(now), dErrors.CodeInvalidState))
	assert.True(t, dErrors.HasCode(o.SetNotes("extra gravy", now), dErrors.CodeInvalidState))
}

func TestLockWithoutSubmit(t *testing.T) {
	o := newOrder(t)
	require.NoError(t, o.Lock(now))
	assert.False(t, o.IsSubmitted)
	assert.True(t, dErrors.HasCode(o.Submit(nil, now), dErrors.CodeInvalidState))
}

func TestNotesTooLong(t *testing.T) {
	o := newOrder(t)
	err := o.SetNotes(string(make([]byte, maxNotesLength+1)), now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNewComponent(t *testing.T) {
	o := newOrder(t)
	item := &menumodels.Item{
		ID:            domain.MenuItemID(uuid.New()),
		MenuID:        o.MenuID,
		ComponentType: menumodels.ComponentMain,
		Name:          "Fish pie",
		IsAvailable:   true,
	}

	t.Run("takes the item's type and default quantity", func(t *testing.T) {
		c, err := NewComponent(domain.ComponentID(uuid.New()), o, item, ComponentInput{}, now)
		require.NoError(t, err)
		assert.Equal(t, menumodels.ComponentMain, c.ComponentType)
		assert.Equal(t, DefaultQuantity, c.Quantity)
		assert.Equal(t, &item.ID, c.MenuItemID)
		assert.Equal(t, o.ID, c.OrderID)
	})

	t.Run("rounds quantity to hundredths", func(t *testing.T) {
		c, err := NewComponent(domain.ComponentID(uuid.New()), o, nil, ComponentInput{ComponentType: menumodels.ComponentSoup, Quantity: 0.555}, now)
		require.NoError(t, err)
		assert.InDelta(t, 0.56, c.Quantity, 1e-9)
		assert.Nil(t, c.MenuItemID)
	})

	tests := []struct {
		name string
		item *menumodels.Item
		in   ComponentInput
		code dErrors.Code
	}{
		{"item from another menu", &menumodels.Item{MenuID: domain.MenuID(uuid.New()), ComponentType: menumodels.ComponentMain, IsAvailable: true}, ComponentInput{}, dErrors.CodeInvalidInput},
		{"unavailable item", &menumodels.Item{MenuID: o.MenuID, ComponentType: menumodels.ComponentMain}, ComponentInput{}, dErrors.CodeInvalidState},
		{"type mismatch", item, ComponentInput{ComponentType: menumodels.ComponentDessert}, dErrors.CodeInvalidInput},
		{"no type without item", nil, ComponentInput{}, dErrors.CodeInvalidInput},
		{"negative quantity", nil, ComponentInput{ComponentType: menumodels.ComponentSoup, Quantity: -1}, dErrors.CodeInvalidInput},
		{"quantity rounds to zero", nil, ComponentInput{ComponentType: menumodels.ComponentSoup, Quantity: 0.001}, dErrors.CodeInvalidInput},
		{"quantity overflows column", nil, ComponentInput{ComponentType: menumodels.ComponentSoup, Quantity: 1000}, dErrors.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewComponent(domain.ComponentID(uuid.New()), o, tt.item, tt.in, now)
			assert.True(t, dErrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}
