// Package models defines daily menus and the items offered on them.
package models

import (
	"fmt"
	"strings"
	"time"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

// MealType is one of the four daily meal services.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSupper    MealType = "supper"
)

func (m MealType) IsValid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSupper:
		return true
	}
	return false
}

func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown meal type %q", s))
	}
	return m, nil
}

// Menu is what the kitchen serves for one meal on one date. A tenant has at
// most one menu per date and meal type.
type Menu struct {
	ID          domain.MenuID   `json:"id"`
	TenantID    domain.TenantID `json:"tenant_id"`
	Date        time.Time       `json:"date"`
	MealType    MealType        `json:"meal_type"`
	IsPublished bool            `json:"is_published"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	PublishedBy *domain.UserID  `json:"published_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewMenu builds an unpublished menu. date is truncated to the calendar day.
func NewMenu(id domain.MenuID, tenantID domain.TenantID, date time.Time, mealType MealType, now time.Time) (*Menu, error) {
	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "menu date is required")
	}
	if !mealType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown meal type %q", mealType))
	}
	return &Menu{
		ID:        id,
		TenantID:  tenantID,
		Date:      DateOf(date),
		MealType:  mealType,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Publish makes the menu visible for ordering. by may be nil when no user is
// acting, such as a scheduled import.
func (m *Menu) Publish(by *domain.UserID, now time.Time) error {
	if m.IsPublished {
		return dErrors.New(dErrors.CodeInvalidState, "menu is already published")
	}
	m.IsPublished = true
	m.PublishedAt = &now
	m.PublishedBy = by
	m.UpdatedAt = now
	return nil
}

func (m *Menu) Unpublish(now time.Time) error {
	if !m.IsPublished {
		return dErrors.New(dErrors.CodeInvalidState, "menu is not published")
	}
	m.IsPublished = false
	m.PublishedAt = nil
	m.PublishedBy = nil
	m.UpdatedAt = now
	return nil
}

// Filter narrows a menu listing within one tenant. From and To are inclusive
// calendar days.
type Filter struct {
	From          *time.Time
	To            *time.Time
	MealType      MealType
	PublishedOnly bool
}

func (f *Filter) Validate() error {
	if f.MealType != "" && !f.MealType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown meal type %q", f.MealType))
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return dErrors.New(dErrors.CodeInvalidInput, "date range ends before it starts")
	}
	return nil
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
