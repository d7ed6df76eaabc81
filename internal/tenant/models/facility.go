package models

import (
	"strings"
	"time"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

// Wing is a named section of a facility. Names are unique per tenant.
type Wing struct {
	ID          domain.WingID   `json:"id"`
	TenantID    domain.TenantID `json:"tenant_id"`
	Name        string          `json:"name"`
	FloorNumber *int            `json:"floor_number,omitempty"`
	Capacity    *int            `json:"capacity,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WingProfile is the editable part of a wing. IsActive is ignored on create;
// new wings are always active.
type WingProfile struct {
	Name        string
	FloorNumber *int
	Capacity    *int
	IsActive    bool
}

func (p *WingProfile) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "wing name is required")
	}
	if len(p.Name) > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "wing name must be 100 characters or less")
	}
	if p.Capacity != nil && *p.Capacity < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "wing capacity cannot be negative")
	}
	return nil
}

func NewWing(wingID domain.WingID, tenantID domain.TenantID, p WingProfile, now time.Time) (*Wing, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := &Wing{ID: wingID, TenantID: tenantID, CreatedAt: now}
	w.apply(p, now)
	w.IsActive = true
	return w, nil
}

func (w *Wing) ApplyProfile(p WingProfile, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	w.apply(p, now)
	return nil
}

func (w *Wing) apply(p WingProfile, now time.Time) {
	w.Name = p.Name
	w.FloorNumber = p.FloorNumber
	w.Capacity = p.Capacity
	w.IsActive = p.IsActive
	w.UpdatedAt = now
}

// Room is a numbered room, optionally inside a wing. Room numbers are unique
// per tenant. Deleting the wing leaves the room unassigned.
type Room struct {
	ID         domain.RoomID   `json:"id"`
	TenantID   domain.TenantID `json:"tenant_id"`
	WingID     *domain.WingID  `json:"wing_id,omitempty"`
	RoomNumber string          `json:"room_number"`
	BedCount   int             `json:"bed_count"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DefaultBedCount applies when a room profile leaves BedCount nil.
const DefaultBedCount = 1

// RoomProfile is the editable part of a room. IsActive is ignored on create.
type RoomProfile struct {
	WingID     *domain.WingID
	RoomNumber string
	BedCount   *int
	IsActive   bool
}

func (p *RoomProfile) Validate() error {
	p.RoomNumber = strings.TrimSpace(p.RoomNumber)
	if p.RoomNumber == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "room number is required")
	}
	if len(p.RoomNumber) > 20 {
		return dErrors.New(dErrors.CodeInvalidInput, "room number must be 20 characters or less")
	}
	if p.BedCount != nil && *p.BedCount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "bed count cannot be negative")
	}
	return nil
}

func NewRoom(roomID domain.RoomID, tenantID domain.TenantID, p RoomProfile, now time.Time) (*Room, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	r := &Room{ID: roomID, TenantID: tenantID, CreatedAt: now}
	r.apply(p, now)
	r.IsActive = true
	return r, nil
}

func (r *Room) ApplyProfile(p RoomProfile, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.apply(p, now)
	return nil
}

func (r *Room) apply(p RoomProfile, now time.Time) {
	r.WingID = p.WingID
	r.RoomNumber = p.RoomNumber
	r.BedCount = DefaultBedCount
	if p.BedCount != nil {
		r.BedCount = *p.BedCount
	}
	r.IsActive = p.IsActive
	r.UpdatedAt = now
}
