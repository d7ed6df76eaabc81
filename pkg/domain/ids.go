// Package domain holds the typed identifiers shared by every module.
//
// Each entity gets its own ID type over uuid.UUID so a ResidentID can never be
// passed where a TenantID is expected. IDs are random (v4) and generated in
// process, never by the database.
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "mealcare/pkg/domain-errors"
)

type (
	TenantID      uuid.UUID
	WingID        uuid.UUID
	RoomID        uuid.UUID
	UserID        uuid.UUID
	ResidentID    uuid.UUID
	AllergyID     uuid.UUID
	MenuID        uuid.UUID
	MenuItemID    uuid.UUID
	MealOrderID   uuid.UUID
	ComponentID   uuid.UUID
	AuditRecordID uuid.UUID
)

func (id TenantID) String() string      { return uuid.UUID(id).String() }
func (id WingID) String() string        { return uuid.UUID(id).String() }
func (id RoomID) String() string        { return uuid.UUID(id).String() }
func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id ResidentID) String() string    { return uuid.UUID(id).String() }
func (id AllergyID) String() string     { return uuid.UUID(id).String() }
func (id MenuID) String() string        { return uuid.UUID(id).String() }
func (id MenuItemID) String() string    { return uuid.UUID(id).String() }
func (id MealOrderID) String() string   { return uuid.UUID(id).String() }
func (id ComponentID) String() string   { return uuid.UUID(id).String() }
func (id AuditRecordID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id WingID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id RoomID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ResidentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AllergyID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id MenuID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id MenuItemID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id MealOrderID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id ComponentID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id AuditRecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps IDs in their canonical string form in JSON, which is
// what audit snapshots carry.
func (id TenantID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id WingID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id RoomID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id ResidentID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id AllergyID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id MenuID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id MenuItemID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id MealOrderID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id ComponentID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id AuditRecordID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *TenantID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *WingID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RoomID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UserID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ResidentID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AllergyID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *MenuID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *MenuItemID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *MealOrderID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ComponentID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AuditRecordID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// maxIDLength bounds input before it reaches the UUID parser. The longest
// accepted form is the braced/urn variant.
const maxIDLength = 45

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" || strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength || !utf8.ValidString(s) {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID("tenant ID", s)
	return TenantID(u), err
}

func ParseWingID(s string) (WingID, error) {
	u, err := parseUUID("wing ID", s)
	return WingID(u), err
}

func ParseRoomID(s string) (RoomID, error) {
	u, err := parseUUID("room ID", s)
	return RoomID(u), err
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user ID", s)
	return UserID(u), err
}

func ParseResidentID(s string) (ResidentID, error) {
	u, err := parseUUID("resident ID", s)
	return ResidentID(u), err
}

func ParseMenuID(s string) (MenuID, error) {
	u, err := parseUUID("menu ID", s)
	return MenuID(u), err
}

func ParseMealOrderID(s string) (MealOrderID, error) {
	u, err := parseUUID("meal order ID", s)
	return MealOrderID(u), err
}

func ParseAuditRecordID(s string) (AuditRecordID, error) {
	u, err := parseUUID("audit record ID", s)
	return AuditRecordID(u), err
}

// NullableUUID converts an optional typed ID into a value database/sql can bind.
func NullableUUID[T ~[16]byte](id *T) uuid.NullUUID {
	if id == nil || uuid.UUID(*id) == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*id), Valid: true}
}

// FromNullableUUID is the inverse of NullableUUID.
func FromNullableUUID[T ~[16]byte](n uuid.NullUUID) *T {
	if !n.Valid {
		return nil
	}
	id := T(n.UUID)
	return &id
}
