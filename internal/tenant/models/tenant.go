package models

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // timezone validation must not depend on the host's zoneinfo

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

// DefaultTimezone applies when a tenant is created without one.
const DefaultTimezone = "Australia/Perth"

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Tenant is an isolated aged-care facility. Every other row belongs to exactly
// one tenant and is removed with it.
//
// Invariants:
//   - Slug is globally unique, lowercase letters, digits and hyphens only
//   - Name is non-empty and at most 255 characters
//   - Settings is always a JSON object, never null
type Tenant struct {
	ID           domain.TenantID `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	ContactEmail string          `json:"contact_email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Timezone     string          `json:"timezone"`
	Settings     map[string]any  `json:"settings"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TenantProfile is the caller-editable part of a tenant. Updates replace the
// whole profile.
type TenantProfile struct {
	Name         string
	Slug         string
	ContactEmail string
	Phone        string
	Address      string
	Timezone     string
	Settings     map[string]any
}

// Normalize trims text fields, lowercases slug and email, and fills defaults.
func (p *TenantProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	p.ContactEmail = strings.ToLower(strings.TrimSpace(p.ContactEmail))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	p.Timezone = strings.TrimSpace(p.Timezone)
	if p.Timezone == "" {
		p.Timezone = DefaultTimezone
	}
	if p.Settings == nil {
		p.Settings = map[string]any{}
	}
}

func (p *TenantProfile) Validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant name is required")
	}
	if len(p.Name) > 255 {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant name must be 255 characters or less")
	}
	if p.Slug == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant slug is required")
	}
	if len(p.Slug) > 100 || !slugPattern.MatchString(p.Slug) {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant slug must be at most 100 lowercase letters, digits or hyphens")
	}
	if p.ContactEmail != "" {
		if _, err := mail.ParseAddress(p.ContactEmail); err != nil || len(p.ContactEmail) > 254 {
			return dErrors.New(dErrors.CodeInvalidInput, "invalid contact email")
		}
	}
	if len(p.Phone) > 20 {
		return dErrors.New(dErrors.CodeInvalidInput, "phone must be 20 characters or less")
	}
	if len(p.Timezone) > 50 {
		return dErrors.New(dErrors.CodeInvalidInput, "timezone must be 50 characters or less")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown timezone %q", p.Timezone))
	}
	return nil
}

// NewTenant builds an active tenant from a normalised, valid profile.
func NewTenant(tenantID domain.TenantID, p TenantProfile, now time.Time) (*Tenant, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t := &Tenant{ID: tenantID, IsActive: true, CreatedAt: now, UpdatedAt: now}
	t.apply(p)
	return t, nil
}

// ApplyProfile replaces the editable fields.
func (t *Tenant) ApplyProfile(p TenantProfile, now time.Time) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	t.apply(p)
	t.UpdatedAt = now
	return nil
}

func (t *Tenant) apply(p TenantProfile) {
	t.Name = p.Name
	t.Slug = p.Slug
	t.ContactEmail = p.ContactEmail
	t.Phone = p.Phone
	t.Address = p.Address
	t.Timezone = p.Timezone
	t.Settings = p.Settings
}

// Profile returns the editable fields, for read-modify-write callers.
func (t *Tenant) Profile() TenantProfile {
	settings := make(map[string]any, len(t.Settings))
	for k, v := range t.Settings {
		settings[k] = v
	}
	return TenantProfile{
		Name:         t.Name,
		Slug:         t.Slug,
		ContactEmail: t.ContactEmail,
		Phone:        t.Phone,
		Address:      t.Address,
		Timezone:     t.Timezone,
		Settings:     settings,
	}
}

// Deactivate suspends the tenant. Its data is kept.
func (t *Tenant) Deactivate(now time.Time) error {
	if !t.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "tenant is already inactive")
	}
	t.IsActive = false
	t.UpdatedAt = now
	return nil
}

func (t *Tenant) Reactivate(now time.Time) error {
	if t.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "tenant is already active")
	}
	t.IsActive = true
	t.UpdatedAt = now
	return nil
}
