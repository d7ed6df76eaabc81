// Package models defines staff accounts and their roles.
package models

import (
	"net/mail"
	"strings"
	"time"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleVenueAdmin Role = "venue_admin"
	RoleCarer      Role = "carer"
	RoleKitchen    Role = "kitchen"
	RoleDietitian  Role = "dietitian"
	RoleAuditor    Role = "auditor"
)

// DefaultRole applies when a profile leaves Role empty.
const DefaultRole = RoleCarer

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleVenueAdmin, RoleCarer, RoleKitchen, RoleDietitian, RoleAuditor:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return DefaultRole, nil
	}
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role "+s)
	}
	return r, nil
}

// User is a staff account. Only a super admin may exist outside a tenant.
// PasswordHash never leaves the process: it is excluded from JSON so audit
// snapshots cannot carry it.
type User struct {
	ID           domain.UserID    `json:"id"`
	TenantID     *domain.TenantID `json:"tenant_id,omitempty"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Role         Role             `json:"role"`
	IsActive     bool             `json:"is_active"`
	IsStaff      bool             `json:"is_staff"`
	DateJoined   time.Time        `json:"date_joined"`
	LastLogin    *time.Time       `json:"last_login,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Profile is the editable part of a user.
type Profile struct {
	TenantID  *domain.TenantID
	Email     string
	FirstName string
	LastName  string
	Role      Role
	IsStaff   bool
}

// NormalizeEmail lowercases and trims an address. Emails compare
// case-insensitively everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Profile) Normalize() {
	p.Email = NormalizeEmail(p.Email)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	if p.Role == "" {
		p.Role = DefaultRole
	}
	if p.TenantID != nil && p.TenantID.IsNil() {
		p.TenantID = nil
	}
}

func (p *Profile) Validate() error {
	if p.Email == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	addr, err := mail.ParseAddress(p.Email)
	if err != nil || addr.Address != p.Email || len(p.Email) > 254 {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid email")
	}
	if len(p.FirstName) > 150 || len(p.LastName) > 150 {
		return dErrors.New(dErrors.CodeInvalidInput, "names must be 150 characters or less")
	}
	if !p.Role.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown role "+string(p.Role))
	}
	if p.TenantID == nil && p.Role != RoleSuperAdmin {
		return dErrors.New(dErrors.CodeInvalidInput, "only a super admin may have no tenant")
	}
	return nil
}

// NewUser builds an active user. passwordHash must already be hashed.
func NewUser(userID domain.UserID, p Profile, passwordHash string, now time.Time) (*User, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password hash is required")
	}
	u := &User{
		ID:           userID,
		PasswordHash: passwordHash,
		IsActive:     true,
		DateJoined:   now,
	}
	u.apply(p, now)
	return u, nil
}

func (u *User) ApplyProfile(p Profile, now time.Time) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	u.apply(p, now)
	return nil
}

func (u *User) apply(p Profile, now time.Time) {
	u.TenantID = p.TenantID
	u.Email = p.Email
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Role = p.Role
	u.IsStaff = p.IsStaff
	u.UpdatedAt = now
}

func (u *User) Profile() Profile {
	return Profile{
		TenantID:  u.TenantID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsStaff:   u.IsStaff,
	}
}

func (u *User) Deactivate(now time.Time) error {
	if !u.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "user is already inactive")
	}
	u.IsActive = false
	u.UpdatedAt = now
	return nil
}

func (u *User) Reactivate(now time.Time) error {
	if u.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "user is already active")
	}
	u.IsActive = true
	u.UpdatedAt = now
	return nil
}

// Filter narrows a user listing. Zero fields match everything.
type Filter struct {
	TenantID   *domain.TenantID
	Role       Role
	ActiveOnly bool
}
