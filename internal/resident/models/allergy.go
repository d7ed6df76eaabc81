package models

import (
	"strings"
	"time"

	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	platformstrings "mealcare/pkg/platform/strings"
)

// Allergy records one allergen for a resident. A hard restriction must block
// any order containing the allergen; soft ones are advisory.
type Allergy struct {
	ID                domain.AllergyID  `json:"id"`
	TenantID          domain.TenantID   `json:"tenant_id"`
	ResidentID        domain.ResidentID `json:"resident_id"`
	Allergen          string            `json:"allergen"`
	Severity          Severity          `json:"severity,omitempty"`
	IsHardRestriction bool              `json:"is_hard_restriction"`
	Notes             string            `json:"notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// AllergyProfile is the editable part of an allergy. A nil IsHardRestriction
// means true.
type AllergyProfile struct {
	Allergen          string
	Severity          Severity
	IsHardRestriction *bool
	Notes             string
}

func (p *AllergyProfile) Validate() error {
	p.Allergen = strings.TrimSpace(p.Allergen)
	p.Notes = strings.TrimSpace(p.Notes)
	if p.Allergen == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "allergen is required")
	}
	if len(p.Allergen) > 255 {
		return dErrors.New(dErrors.CodeInvalidInput, "allergen must be 255 characters or less")
	}
	if p.Severity != "" && !p.Severity.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown severity "+string(p.Severity))
	}
	return nil
}

func NewAllergy(id domain.AllergyID, tenantID domain.TenantID, residentID domain.ResidentID, p AllergyProfile, now time.Time) (*Allergy, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	a := &Allergy{ID: id, TenantID: tenantID, ResidentID: residentID, CreatedAt: now}
	a.apply(p, now)
	return a, nil
}

func (a *Allergy) ApplyProfile(p AllergyProfile, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	a.apply(p, now)
	return nil
}

func (a *Allergy) apply(p AllergyProfile, now time.Time) {
	a.Allergen = p.Allergen
	a.Severity = p.Severity
	a.IsHardRestriction = p.IsHardRestriction == nil || *p.IsHardRestriction
	a.Notes = p.Notes
	a.UpdatedAt = now
}

// HardRestrictions returns the normalised allergen tags that must block an
// order, de-duplicated in first-seen order.
func HardRestrictions(allergies []*Allergy) []string {
	var tags []string
	for _, a := range allergies {
		if a.IsHardRestriction {
			tags = append(tags, a.Allergen)
		}
	}
	return platformstrings.TagSet(tags)
}
