package models

import (
	"fmt"
	"strings"
	"time"

	residentmodels "mealcare/internal/resident/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	platformstrings "mealcare/pkg/platform/strings"
)

// ComponentType is the course a menu item or order component belongs to.
type ComponentType string

const (
	ComponentMain     ComponentType = "main"
	ComponentSoup     ComponentType = "soup"
	ComponentSandwich ComponentType = "sandwich"
	ComponentSalad    ComponentType = "salad"
	ComponentDessert  ComponentType = "dessert"
	ComponentBeverage ComponentType = "beverage"
)

func (c ComponentType) IsValid() bool {
	switch c {
	case ComponentMain, ComponentSoup, ComponentSandwich, ComponentSalad, ComponentDessert, ComponentBeverage:
		return true
	}
	return false
}

func ParseComponentType(s string) (ComponentType, error) {
	c := ComponentType(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown component type %q", s))
	}
	return c, nil
}

// Item is one dish on a menu.
//
// IDDSILevels lists the texture levels the dish can be served at, and
// Allergens the allergen tags it contains. Both are stored as de-duplicated,
// lowercased sets.
type Item struct {
	ID            domain.MenuItemID `json:"id"`
	TenantID      domain.TenantID   `json:"tenant_id"`
	MenuID        domain.MenuID     `json:"menu_id"`
	ComponentType ComponentType     `json:"component_type"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	IDDSILevels   []string          `json:"iddsi_levels"`
	Allergens     []string          `json:"allergens"`
	PortionSizeG  *int              `json:"portion_size_g,omitempty"`
	IsAvailable   bool              `json:"is_available"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ItemProfile is the editable part of an item. A nil IsAvailable means true.
type ItemProfile struct {
	ComponentType ComponentType
	Name          string
	Description   string
	IDDSILevels   []string
	Allergens     []string
	PortionSizeG  *int
	IsAvailable   *bool
}

func (p *ItemProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.IDDSILevels = platformstrings.TagSet(p.IDDSILevels)
	p.Allergens = platformstrings.TagSet(p.Allergens)
}

func (p *ItemProfile) Validate() error {
	if !p.ComponentType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown component type %q", p.ComponentType))
	}
	if p.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "item name is required")
	}
	if len(p.Name) > 255 {
		return dErrors.New(dErrors.CodeInvalidInput, "item name must be 255 characters or less")
	}
	for _, level := range p.IDDSILevels {
		if !residentmodels.IDDSILevel(level).IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown IDDSI level %q", level))
		}
	}
	if p.PortionSizeG != nil && *p.PortionSizeG < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "portion size cannot be negative")
	}
	return nil
}

func NewItem(id domain.MenuItemID, tenantID domain.TenantID, menuID domain.MenuID, p ItemProfile, now time.Time) (*Item, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	item := &Item{ID: id, TenantID: tenantID, MenuID: menuID, CreatedAt: now}
	item.apply(p, now)
	return item, nil
}

func (i *Item) ApplyProfile(p ItemProfile, now time.Time) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	i.apply(p, now)
	return nil
}

func (i *Item) apply(p ItemProfile, now time.Time) {
	i.ComponentType = p.ComponentType
	i.Name = p.Name
	i.Description = p.Description
	i.IDDSILevels = p.IDDSILevels
	i.Allergens = p.Allergens
	i.PortionSizeG = p.PortionSizeG
	i.IsAvailable = p.IsAvailable == nil || *p.IsAvailable
	i.UpdatedAt = now
}

// ConflictingAllergens returns the item's allergens found in restrictions,
// which must already be normalised tags.
func (i *Item) ConflictingAllergens(restrictions []string) []string {
	return platformstrings.Intersect(i.Allergens, restrictions)
}
