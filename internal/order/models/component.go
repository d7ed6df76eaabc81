package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	menumodels "mealcare/internal/menu/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

// Quantity bounds follow the NUMERIC(5, 2) column.
const (
	DefaultQuantity = 1.0
	MaxQuantity     = 999.99
)

// Component is one course on an order. MenuItemID is nil for free-text
// components and for items since removed from the menu.
type Component struct {
	ID                  domain.ComponentID       `json:"id"`
	TenantID            domain.TenantID          `json:"tenant_id"`
	OrderID             domain.MealOrderID       `json:"meal_order_id"`
	MenuItemID          *domain.MenuItemID       `json:"menu_item_id,omitempty"`
	ComponentType       menumodels.ComponentType `json:"component_type"`
	Quantity            float64                  `json:"quantity"`
	TextureModification string                   `json:"texture_modification"`
	SpecialInstructions string                   `json:"special_instructions"`
	CreatedAt           time.Time                `json:"created_at"`
}

// ComponentInput describes a component to add.
//
// When MenuItemID is set and ComponentType is empty, the item's type is used.
// A zero Quantity means DefaultQuantity. OverrideRestrictions lets a dietitian
// order an item that carries one of the resident's hard-restricted allergens;
// the change is audited as an override and needs a reason.
type ComponentInput struct {
	MenuItemID           *domain.MenuItemID
	ComponentType        menumodels.ComponentType
	Quantity             float64
	TextureModification  string
	SpecialInstructions  string
	OverrideRestrictions bool
}

func (in *ComponentInput) Normalize() {
	in.TextureModification = strings.TrimSpace(in.TextureModification)
	in.SpecialInstructions = strings.TrimSpace(in.SpecialInstructions)
	if in.Quantity == 0 {
		in.Quantity = DefaultQuantity
	}
	in.Quantity = math.Round(in.Quantity*100) / 100
}

func (in *ComponentInput) Validate() error {
	if !in.ComponentType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown component type %q", in.ComponentType))
	}
	if math.IsNaN(in.Quantity) || in.Quantity <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "quantity must be greater than zero")
	}
	if in.Quantity > MaxQuantity {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("quantity must be at most %.2f", MaxQuantity))
	}
	if len(in.TextureModification) > 50 {
		return dErrors.New(dErrors.CodeInvalidInput, "texture modification must be 50 characters or less")
	}
	return nil
}

// NewComponent builds a component for order from in. item, when given, must be
// the menu item in.MenuItemID refers to.
func NewComponent(id domain.ComponentID, order *Order, item *menumodels.Item, in ComponentInput, now time.Time) (*Component, error) {
	if item != nil {
		if item.MenuID != order.MenuID {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "menu item is not on this order's menu")
		}
		if !item.IsAvailable {
			return nil, dErrors.New(dErrors.CodeInvalidState, "menu item "+item.Name+" is not available")
		}
		if in.ComponentType == "" {
			in.ComponentType = item.ComponentType
		}
		if in.ComponentType != item.ComponentType {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "component type does not match the menu item")
		}
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &Component{
		ID:                  id,
		TenantID:            order.TenantID,
		OrderID:             order.ID,
		ComponentType:       in.ComponentType,
		Quantity:            in.Quantity,
		TextureModification: in.TextureModification,
		SpecialInstructions: in.SpecialInstructions,
		CreatedAt:           now,
	}
	if item != nil {
		itemID := item.ID
		c.MenuItemID = &itemID
	}
	return c, nil
}
