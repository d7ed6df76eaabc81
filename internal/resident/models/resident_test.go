package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

var now = time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)

func newJaneDoe(t *testing.T) *Resident {
	t.Helper()
	r, err := NewResident(domain.ResidentID(uuid.New()), domain.TenantID(uuid.New()), Profile{
		FirstName: "Jane",
		LastName:  "Doe",
		DietType:  DietRenal,
	}, now)
	require.NoError(t, err)
	return r
}

func TestNewResident(t *testing.T) {
	r := newJaneDoe(t)

	assert.Equal(t, 0, r.Version)
	assert.Equal(t, DietRenal, r.DietType)
	assert.Equal(t, DefaultMealSize, r.MealSize)
	assert.True(t, r.IsActive)
	assert.Equal(t, "Jane Doe", r.FullName())
}

func TestProfileValidation(t *testing.T) {
	admitted := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	before := admitted.AddDate(0, 0, -1)
	negative := -100

	tests := []struct {
		name    string
		profile Profile
	}{
		{"missing last name", Profile{FirstName: "Jane"}},
		{"unknown diet", Profile{FirstName: "Jane", LastName: "Doe", DietType: "keto"}},
		{"unknown IDDSI level", Profile{FirstName: "Jane", LastName: "Doe", IDDSILevel: "level_9"}},
		{"unknown meal size", Profile{FirstName: "Jane", LastName: "Doe", MealSize: "huge"}},
		{"negative fluid restriction", Profile{FirstName: "Jane", LastName: "Doe", FluidRestrictionML: &negative}},
		{"discharge before admission", Profile{FirstName: "Jane", LastName: "Doe", AdmissionDate: &admitted, DischargeDate: &before}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResident(domain.ResidentID(uuid.New()), domain.TenantID(uuid.New()), tt.profile, now)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "got %v", err)
		})
	}
}

func TestProfileNormalizesDates(t *testing.T) {
	perth := time.FixedZone("AWST", 8*60*60)
	dob := time.Date(1941, 6, 2, 23, 30, 0, 0, perth)

	r, err := NewResident(domain.ResidentID(uuid.New()), domain.TenantID(uuid.New()), Profile{
		FirstName: "Jane", LastName: "Doe", DateOfBirth: &dob,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1941, 6, 2, 0, 0, 0, 0, time.UTC), *r.DateOfBirth)
}

func TestApplyProfileLeavesVersion(t *testing.T) {
	r := newJaneDoe(t)
	r.Version = 3

	p := r.Profile()
	p.DietType = DietDiabetic
	require.NoError(t, r.ApplyProfile(p, now.Add(time.Hour)))
	assert.Equal(t, 3, r.Version)
	assert.Equal(t, DietDiabetic, r.DietType)
}

func TestDischarge(t *testing.T) {
	r := newJaneDoe(t)
	room := domain.RoomID(uuid.New())
	r.RoomID = &room

	require.NoError(t, r.Discharge(time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC), now))
	assert.False(t, r.IsActive)
	assert.Nil(t, r.RoomID)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *r.DischargeDate)

	err := r.Discharge(now, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestParseEnums(t *testing.T) {
	d, err := ParseDietType(" Low_Sodium ")
	require.NoError(t, err)
	assert.Equal(t, DietLowSodium, d)

	d, err = ParseDietType("")
	require.NoError(t, err)
	assert.Equal(t, DietType(""), d)

	m, err := ParseMealSize("")
	require.NoError(t, err)
	assert.Equal(t, MealSizeMedium, m)

	_, err = ParseIDDSILevel("level_8")
	assert.Error(t, err)

	s, err := ParseSeverity("ANAPHYLAXIS")
	require.NoError(t, err)
	assert.Equal(t, SeverityAnaphylaxis, s)
}

func TestAllergies(t *testing.T) {
	tenantID := domain.TenantID(uuid.New())
	residentID := domain.ResidentID(uuid.New())
	soft := false

	hard, err := NewAllergy(domain.AllergyID(uuid.New()), tenantID, residentID, AllergyProfile{Allergen: " Peanuts ", Severity: SeverityAnaphylaxis}, now)
	require.NoError(t, err)
	assert.True(t, hard.IsHardRestriction)
	assert.Equal(t, "Peanuts", hard.Allergen)

	advisory, err := NewAllergy(domain.AllergyID(uuid.New()), tenantID, residentID, AllergyProfile{Allergen: "Dairy", IsHardRestriction: &soft}, now)
	require.NoError(t, err)
	duplicate, err := NewAllergy(domain.AllergyID(uuid.New()), tenantID, residentID, AllergyProfile{Allergen: "PEANUTS"}, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"peanuts"}, HardRestrictions([]*Allergy{hard, advisory, duplicate}))

	_, err = NewAllergy(domain.AllergyID(uuid.New()), tenantID, residentID, AllergyProfile{Allergen: "x", Severity: "fatal"}, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
