// Package models defines residents, their dietary profile and allergies.
package models

import (
	"strings"
	"time"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

// Resident is a care subject. Version starts at 0 and increases by exactly one
// on every successful update; writers must present the version they read.
type Resident struct {
	ID                 domain.ResidentID `json:"id"`
	TenantID           domain.TenantID   `json:"tenant_id"`
	RoomID             *domain.RoomID    `json:"room_id,omitempty"`
	WingID             *domain.WingID    `json:"wing_id,omitempty"`
	FirstName          string            `json:"first_name"`
	LastName           string            `json:"last_name"`
	DateOfBirth        *time.Time        `json:"date_of_birth,omitempty"`
	DietType           DietType          `json:"diet_type,omitempty"`
	IDDSILevel         IDDSILevel        `json:"iddsi_level,omitempty"`
	MealSize           MealSize          `json:"meal_size"`
	FluidRestrictionML *int              `json:"fluid_restriction_ml,omitempty"`
	IsActive           bool              `json:"is_active"`
	AdmissionDate      *time.Time        `json:"admission_date,omitempty"`
	DischargeDate      *time.Time        `json:"discharge_date,omitempty"`
	Notes              string            `json:"notes"`
	Version            int               `json:"version"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func (r *Resident) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Profile is the editable part of a resident. An update replaces all of it.
// IsActive is ignored on create.
type Profile struct {
	RoomID             *domain.RoomID
	WingID             *domain.WingID
	FirstName          string
	LastName           string
	DateOfBirth        *time.Time
	DietType           DietType
	IDDSILevel         IDDSILevel
	MealSize           MealSize
	FluidRestrictionML *int
	IsActive           bool
	AdmissionDate      *time.Time
	DischargeDate      *time.Time
	Notes              string
}

func (p *Profile) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Notes = strings.TrimSpace(p.Notes)
	if p.MealSize == "" {
		p.MealSize = DefaultMealSize
	}
	p.DateOfBirth = dateOnly(p.DateOfBirth)
	p.AdmissionDate = dateOnly(p.AdmissionDate)
	p.DischargeDate = dateOnly(p.DischargeDate)
	if p.RoomID != nil && p.RoomID.IsNil() {
		p.RoomID = nil
	}
	if p.WingID != nil && p.WingID.IsNil() {
		p.WingID = nil
	}
}

func (p *Profile) Validate() error {
	if p.FirstName == "" || p.LastName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "resident first and last name are required")
	}
	if len(p.FirstName) > 100 || len(p.LastName) > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "resident names must be 100 characters or less")
	}
	if p.DietType != "" && !p.DietType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown diet type "+string(p.DietType))
	}
	if p.IDDSILevel != "" && !p.IDDSILevel.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown IDDSI level "+string(p.IDDSILevel))
	}
	if !p.MealSize.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown meal size "+string(p.MealSize))
	}
	if p.FluidRestrictionML != nil && *p.FluidRestrictionML < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "fluid restriction cannot be negative")
	}
	if p.AdmissionDate != nil && p.DischargeDate != nil && p.DischargeDate.Before(*p.AdmissionDate) {
		return dErrors.New(dErrors.CodeInvalidInput, "discharge date cannot be before admission date")
	}
	return nil
}

// NewResident builds an active resident at version 0.
func NewResident(id domain.ResidentID, tenantID domain.TenantID, p Profile, now time.Time) (*Resident, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	r := &Resident{ID: id, TenantID: tenantID, CreatedAt: now}
	r.apply(p, now)
	r.IsActive = true
	return r, nil
}

// ApplyProfile replaces the editable fields. It does not touch Version; the
// store bumps it when the write lands.
func (r *Resident) ApplyProfile(p Profile, now time.Time) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	r.apply(p, now)
	return nil
}

func (r *Resident) apply(p Profile, now time.Time) {
	r.RoomID = p.RoomID
	r.WingID = p.WingID
	r.FirstName = p.FirstName
	r.LastName = p.LastName
	r.DateOfBirth = p.DateOfBirth
	r.DietType = p.DietType
	r.IDDSILevel = p.IDDSILevel
	r.MealSize = p.MealSize
	r.FluidRestrictionML = p.FluidRestrictionML
	r.IsActive = p.IsActive
	r.AdmissionDate = p.AdmissionDate
	r.DischargeDate = p.DischargeDate
	r.Notes = p.Notes
	r.UpdatedAt = now
}

func (r *Resident) Profile() Profile {
	return Profile{
		RoomID:             r.RoomID,
		WingID:             r.WingID,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		DateOfBirth:        r.DateOfBirth,
		DietType:           r.DietType,
		IDDSILevel:         r.IDDSILevel,
		MealSize:           r.MealSize,
		FluidRestrictionML: r.FluidRestrictionML,
		IsActive:           r.IsActive,
		AdmissionDate:      r.AdmissionDate,
		DischargeDate:      r.DischargeDate,
		Notes:              r.Notes,
	}
}

// Discharge marks the resident inactive as of date and releases the room.
func (r *Resident) Discharge(date, now time.Time) error {
	if !r.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "resident is already discharged")
	}
	p := r.Profile()
	p.IsActive = false
	p.DischargeDate = &date
	p.RoomID = nil
	return r.ApplyProfile(p, now)
}

// Filter narrows a resident listing within one tenant.
type Filter struct {
	WingID     *domain.WingID
	ActiveOnly bool
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
