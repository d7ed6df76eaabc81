// Package models defines meal orders and the components chosen for them.
//
// An order is versioned: every change, including adding or removing a
// component, moves the version by one. A locked order is frozen for the
// kitchen and rejects further changes.
package models

import (
	"fmt"
	"strings"
	"time"

	menumodels "mealcare/internal/menu/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

const maxNotesLength = 2000

type Order struct {
	ID          domain.MealOrderID  `json:"id"`
	TenantID    domain.TenantID     `json:"tenant_id"`
	ResidentID  domain.ResidentID   `json:"resident_id"`
	MenuID      domain.MenuID       `json:"menu_id"`
	OrderDate   time.Time           `json:"order_date"`
	MealType    menumodels.MealType `json:"meal_type"`
	IsSubmitted bool                `json:"is_submitted"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
	SubmittedBy *domain.UserID      `json:"submitted_by,omitempty"`
	IsLocked    bool                `json:"is_locked"`
	LockedAt    *time.Time          `json:"locked_at,omitempty"`
	Notes       string              `json:"notes"`
	CreatedBy   *domain.UserID      `json:"created_by,omitempty"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewOrder places an order for residentID against menu. The order date and
// meal type are copied from the menu.
func NewOrder(id domain.MealOrderID, residentID domain.ResidentID, menu *menumodels.Menu, notes string, createdBy *domain.UserID, now time.Time) (*Order, error) {
	notes, err := normalizeNotes(notes)
	if err != nil {
		return nil, err
	}
	return &Order{
		ID:         id,
		TenantID:   menu.TenantID,
		ResidentID: residentID,
		MenuID:     menu.ID,
		OrderDate:  menu.Date,
		MealType:   menu.MealType,
		Notes:      notes,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// EnsureEditable fails once the order is locked.
func (o *Order) EnsureEditable() error {
	if o.IsLocked {
		return dErrors.New(dErrors.CodeInvalidState, "order is locked")
	}
	return nil
}

// Touch marks a change to the order's components.
func (o *Order) Touch(now time.Time) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	o.UpdatedAt = now
	return nil
}

func (o *Order) SetNotes(notes string, now time.Time) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	notes, err := normalizeNotes(notes)
	if err != nil {
		return err
	}
	o.Notes = notes
	o.UpdatedAt = now
	return nil
}

// Submit hands the order to the kitchen. by may be nil for system submits.
func (o *Order) Submit(by *domain.UserID, now time.Time) error {
	if err := o.EnsureEditable(); err != nil {
		return err
	}
	if o.IsSubmitted {
		return dErrors.New(dErrors.CodeInvalidState, "order is already submitted")
	}
	o.IsSubmitted = true
	o.SubmittedAt = &now
	o.SubmittedBy = by
	o.UpdatedAt = now
	return nil
}

// Lock freezes the order. Unsubmitted orders can be locked too, for example
// when the kitchen cut-off passes.
func (o *Order) Lock(now time.Time) error {
	if o.IsLocked {
		return dErrors.New(dErrors.CodeInvalidState, "order is already locked")
	}
	o.IsLocked = true
	o.LockedAt = &now
	o.UpdatedAt = now
	return nil
}

func normalizeNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("notes must be %d characters or less", maxNotesLength))
	}
	return notes, nil
}

// Filter narrows an order listing within one tenant.
type Filter struct {
	Date          *time.Time
	MealType      menumodels.MealType
	ResidentID    *domain.ResidentID
	SubmittedOnly bool
}

func (f *Filter) Validate() error {
	if f.MealType != "" && !f.MealType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown meal type %q", f.MealType))
	}
	return nil
}
