package service

import (
	"context"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	"mealcare/internal/resident/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/requestcontext"
)

// AddAllergy attaches an allergy to a resident of the same tenant.
func (s *Service) AddAllergy(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID, p models.AllergyProfile) (*models.Allergy, error) {
	var allergy *models.Allergy
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindByID(txCtx, tenantID, residentID); err != nil {
			return dErrors.FromStore(err, "resident")
		}
		a, err := models.NewAllergy(domain.AllergyID(uuid.New()), tenantID, residentID, p, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.CreateAllergy(txCtx, a); err != nil {
			return dErrors.FromStore(err, "allergy")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityResidentAllergy, uuid.UUID(a.ID), tenantID, nil, a, ""); err != nil {
			return err
		}
		allergy = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allergy, nil
}

func (s *Service) UpdateAllergy(ctx context.Context, tenantID domain.TenantID, id domain.AllergyID, p models.AllergyProfile, reason string) (*models.Allergy, error) {
	var allergy *models.Allergy
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.store.FindAllergy(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "allergy")
		}
		before := *a
		if err := a.ApplyProfile(p, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.store.UpdateAllergy(txCtx, a); err != nil {
			return dErrors.FromStore(err, "allergy")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityResidentAllergy, uuid.UUID(a.ID), tenantID, before, a, reason); err != nil {
			return err
		}
		allergy = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allergy, nil
}

func (s *Service) RemoveAllergy(ctx context.Context, tenantID domain.TenantID, id domain.AllergyID, reason string) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.store.FindAllergy(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "allergy")
		}
		if err := s.store.DeleteAllergy(txCtx, tenantID, id); err != nil {
			return dErrors.FromStore(err, "allergy")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityResidentAllergy, uuid.UUID(a.ID), tenantID, a, nil, reason)
	})
}

func (s *Service) ListAllergies(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID) ([]*models.Allergy, error) {
	allergies, err := s.store.ListAllergies(ctx, tenantID, residentID)
	if err != nil {
		return nil, dErrors.FromStore(err, "allergies")
	}
	return allergies, nil
}

// HardRestrictions returns the allergen tags that must block any order for
// the resident. Order validation against menu items happens downstream.
func (s *Service) HardRestrictions(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID) ([]string, error) {
	allergies, err := s.ListAllergies(ctx, tenantID, residentID)
	if err != nil {
		return nil, err
	}
	return models.HardRestrictions(allergies), nil
}
