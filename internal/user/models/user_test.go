package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

var now = time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)

func tenantRef() *domain.TenantID {
	id := domain.TenantID(uuid.New())
	return &id
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(domain.UserID(uuid.New()), Profile{
		TenantID:  tenantRef(),
		Email:     "  Carer@Oakview.Example ",
		FirstName: " Sam ",
	}, "hash", now)
	require.NoError(t, err)

	assert.Equal(t, "carer@oakview.example", u.Email)
	assert.Equal(t, DefaultRole, u.Role)
	assert.Equal(t, "Sam", u.FullName())
	assert.True(t, u.IsActive)
	assert.Equal(t, now, u.DateJoined)
	assert.Nil(t, u.LastLogin)
}

func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		ok      bool
	}{
		{"super admin without tenant", Profile{Email: "root@mealcare.example", Role: RoleSuperAdmin}, true},
		{"carer without tenant", Profile{Email: "carer@oakview.example", Role: RoleCarer}, false},
		{"nil tenant id counts as missing", Profile{TenantID: &domain.TenantID{}, Email: "k@oakview.example", Role: RoleKitchen}, false},
		{"display name form rejected", Profile{TenantID: tenantRef(), Email: "Sam <sam@oakview.example>"}, false},
		{"missing email", Profile{TenantID: tenantRef()}, false},
		{"unknown role", Profile{TenantID: tenantRef(), Email: "a@b.example", Role: "chef"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(domain.UserID(uuid.New()), tt.profile, "hash", now)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "got %v", err)
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Dietitian ")
	require.NoError(t, err)
	assert.Equal(t, RoleDietitian, r)

	r, err = ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, r)

	_, err = ParseRole("chef")
	assert.Error(t, err)
}

func TestUserSnapshotOmitsPasswordHash(t *testing.T) {
	u, err := NewUser(domain.UserID(uuid.New()), Profile{TenantID: tenantRef(), Email: "a@b.example"}, "$2a$secret", now)
	require.NoError(t, err)

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "$2a$secret")
}

func TestUserLifecycle(t *testing.T) {
	u, err := NewUser(domain.UserID(uuid.New()), Profile{TenantID: tenantRef(), Email: "a@b.example"}, "hash", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, u.Deactivate(later))
	assert.False(t, u.IsActive)
	assert.Equal(t, later, u.UpdatedAt)
	assert.True(t, dErrors.HasCode(u.Deactivate(later), dErrors.CodeInvalidState))
	require.NoError(t, u.Reactivate(later))
	assert.True(t, u.IsActive)
}
