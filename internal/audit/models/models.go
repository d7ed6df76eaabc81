// Package models defines the audit record and the vocabulary used to describe
// what changed.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"
	"time"

	"github.com/google/uuid"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

// Action is the kind of mutation an entry records.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionOverride Action = "override"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionOverride:
		return true
	}
	return false
}

// ParseAction accepts one of the four action names.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown audit action %q", s))
	}
	return a, nil
}

// Entity types written by the services.
const (
	EntityTenant             = "Tenant"
	EntityWing               = "Wing"
	EntityRoom               = "Room"
	EntityUser               = "User"
	EntityResident           = "Resident"
	EntityResidentAllergy    = "ResidentAllergy"
	EntityMenu               = "Menu"
	EntityMenuItem           = "MenuItem"
	EntityMealOrder          = "MealOrder"
	EntityMealOrderComponent = "MealOrderComponent"
)

const maxEntityTypeLength = 100

// Snapshot is an opaque nested key/value image of an entity. It is stored and
// returned verbatim; numbers are held as json.Number so no digits are lost.
type Snapshot map[string]any

// DecodeSnapshot parses a JSON object into a Snapshot.
func DecodeSnapshot(raw []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after snapshot object")
	}
	return s, nil
}

// SnapshotOf captures v through its JSON form. A nil v yields a nil Snapshot.
func SnapshotOf(v any) (Snapshot, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(Snapshot); ok {
		return s, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	s, err := DecodeSnapshot(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot must be a JSON object: %w", err)
	}
	return s, nil
}

// Entry is one immutable audit record.
//
// TenantID is nil for platform-level events (super admin actions, tenant
// removal). UserID is nil when no principal acted, or once the acting user has
// been deleted.
type Entry struct {
	ID         domain.AuditRecordID `json:"id"`
	TenantID   *domain.TenantID     `json:"tenant_id,omitempty"`
	UserID     *domain.UserID       `json:"user_id,omitempty"`
	Action     Action               `json:"action"`
	EntityType string               `json:"entity_type"`
	EntityID   *uuid.UUID           `json:"entity_id,omitempty"`
	OldValue   Snapshot             `json:"old_value,omitempty"`
	NewValue   Snapshot             `json:"new_value,omitempty"`
	Reason     string               `json:"reason,omitempty"`
	IPAddress  string               `json:"ip_address,omitempty"`
	UserAgent  string               `json:"user_agent,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Validate checks the fields storage would otherwise reject.
func (e *Entry) Validate() error {
	if !e.Action.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown audit action %q", e.Action))
	}
	if strings.TrimSpace(e.EntityType) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "entity type is required")
	}
	if len(e.EntityType) > maxEntityTypeLength {
		return dErrors.New(dErrors.CodeInvalidInput, "entity type must be 100 characters or less")
	}
	if e.IPAddress != "" {
		if _, err := netip.ParseAddr(e.IPAddress); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid ip address")
		}
	}
	return nil
}

// NormalizeIP strips a port and zone so a transport's RemoteAddr can be stored
// as inet. Anything unparseable becomes empty.
func NormalizeIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if ap, err := netip.ParseAddrPort(raw); err == nil {
		return ap.Addr().WithZone("").String()
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr.WithZone("").String()
	}
	return ""
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Filter narrows a listing. Zero fields do not filter. EntityID is only
// meaningful together with EntityType.
type Filter struct {
	TenantID   *domain.TenantID
	EntityType string
	EntityID   *uuid.UUID
	UserID     *domain.UserID
	Limit      int
}

// EffectiveLimit clamps Limit into [1, MaxListLimit], defaulting to
// DefaultListLimit.
func (f Filter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Matches reports whether e satisfies every set field of f.
func (f Filter) Matches(e *Entry) bool {
	if f.TenantID != nil && (e.TenantID == nil || *e.TenantID != *f.TenantID) {
		return false
	}
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != nil && (e.EntityID == nil || *e.EntityID != *f.EntityID) {
		return false
	}
	if f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID) {
		return false
	}
	return true
}
