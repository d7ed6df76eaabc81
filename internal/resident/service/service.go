// Package service manages residents and their allergies. Resident updates use
// optimistic concurrency: callers pass the version they read, and a stale
// version fails with a version conflict instead of overwriting.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	auditsvc "mealcare/internal/audit/service"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	"mealcare/internal/resident/models"
	tenantmodels "mealcare/internal/tenant/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
	"mealcare/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, r *models.Resident) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID) (*models.Resident, error)
	List(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Resident, error)
	Update(ctx context.Context, r *models.Resident, expectedVersion int) error
	Delete(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID) error

	CreateAllergy(ctx context.Context, a *models.Allergy) error
	FindAllergy(ctx context.Context, tenantID domain.TenantID, id domain.AllergyID) (*models.Allergy, error)
	ListAllergies(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID) ([]*models.Allergy, error)
	UpdateAllergy(ctx context.Context, a *models.Allergy) error
	DeleteAllergy(ctx context.Context, tenantID domain.TenantID, id domain.AllergyID) error
}

// Facility resolves rooms and wings within a tenant. Lookups for another
// tenant's rows report not found.
type Facility interface {
	FindWing(ctx context.Context, tenantID domain.TenantID, id domain.WingID) (*tenantmodels.Wing, error)
	FindRoom(ctx context.Context, tenantID domain.TenantID, id domain.RoomID) (*tenantmodels.Room, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, c auditsvc.Change) (*auditmodels.Entry, error)
}

type Service struct {
	store    Store
	facility Facility
	audit    AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tx       tx.Runner
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTx(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

func New(store Store, facility Facility, audit AuditRecorder, opts ...Option) *Service {
	s := &Service{
		store:    store,
		facility: facility,
		audit:    audit,
		logger:   logger.Discard(),
		tx:       tx.NoopRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateResident(ctx context.Context, tenantID domain.TenantID, p models.Profile) (*models.Resident, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	var resident *models.Resident
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := models.NewResident(domain.ResidentID(uuid.New()), tenantID, p, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.placeResident(txCtx, r); err != nil {
			return err
		}
		if err := s.store.Create(txCtx, r); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeNotFound, "tenant not found")
			}
			return dErrors.FromStore(err, "resident")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityResident, uuid.UUID(r.ID), tenantID, nil, r, ""); err != nil {
			return err
		}
		resident = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "resident created", "tenant_id", tenantID.String(), "resident_id", resident.ID.String())
	return resident, nil
}

func (s *Service) GetResident(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID) (*models.Resident, error) {
	r, err := s.store.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, dErrors.FromStore(err, "resident")
	}
	return r, nil
}

func (s *Service) ListResidents(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Resident, error) {
	residents, err := s.store.List(ctx, tenantID, f)
	if err != nil {
		return nil, dErrors.FromStore(err, "residents")
	}
	return residents, nil
}

// UpdateResident replaces the resident's profile if version is still current.
// On success the returned resident carries version+1.
func (s *Service) UpdateResident(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID, version int, p models.Profile, reason string) (*models.Resident, error) {
	return s.mutate(ctx, tenantID, id, version, reason, func(r *models.Resident, now time.Time) error {
		return r.ApplyProfile(p, now)
	})
}

// DischargeResident marks the resident inactive from date and frees the room.
func (s *Service) DischargeResident(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID, version int, date time.Time, reason string) (*models.Resident, error) {
	return s.mutate(ctx, tenantID, id, version, reason, func(r *models.Resident, now time.Time) error {
		return r.Discharge(date, now)
	})
}

func (s *Service) mutate(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID, version int, reason string, fn func(*models.Resident, time.Time) error) (*models.Resident, error) {
	if version < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "version cannot be negative")
	}
	var updated *models.Resident
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.store.FindByID(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "resident")
		}
		if r.Version != version {
			return s.versionConflict(txCtx, id, fmt.Errorf("expected version %d, stored %d: %w", version, r.Version, sentinel.ErrVersionConflict))
		}
		before := *r
		if err := fn(r, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.placeResident(txCtx, r); err != nil {
			return err
		}
		if err := s.store.Update(txCtx, r, version); err != nil {
			if errors.Is(err, sentinel.ErrVersionConflict) {
				return s.versionConflict(txCtx, id, err)
			}
			return dErrors.FromStore(err, "resident")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityResident, uuid.UUID(r.ID), tenantID, before, r, reason); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) versionConflict(ctx context.Context, id domain.ResidentID, cause error) error {
	s.metrics.IncVersionConflict("resident")
	s.logger.InfoContext(ctx, "resident version conflict", "resident_id", id.String(), "error", cause)
	return dErrors.Wrap(cause, dErrors.CodeVersionConflict, "resident was modified by another writer; reload and retry")
}

// DeleteResident removes the resident with its allergies and orders.
func (s *Service) DeleteResident(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID, reason string) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.store.FindByID(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "resident")
		}
		if err := s.store.Delete(txCtx, tenantID, id); err != nil {
			return dErrors.FromStore(err, "resident")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityResident, uuid.UUID(r.ID), tenantID, r, nil, reason)
	})
}

// placeResident checks the room and wing belong to the resident's tenant. A
// room inside a wing fills in a missing wing; a room in a different wing than
// the one given is rejected.
func (s *Service) placeResident(ctx context.Context, r *models.Resident) error {
	if r.WingID != nil {
		if _, err := s.facility.FindWing(ctx, r.TenantID, *r.WingID); err != nil {
			return dErrors.FromStore(err, "wing")
		}
	}
	if r.RoomID == nil {
		return nil
	}
	room, err := s.facility.FindRoom(ctx, r.TenantID, *r.RoomID)
	if err != nil {
		return dErrors.FromStore(err, "room")
	}
	if room.WingID == nil {
		return nil
	}
	if r.WingID == nil {
		wing := *room.WingID
		r.WingID = &wing
		return nil
	}
	if *r.WingID != *room.WingID {
		return dErrors.New(dErrors.CodeInvalidInput, "room is not in the given wing")
	}
	return nil
}

func (s *Service) record(ctx context.Context, action auditmodels.Action, entityType string, entityID uuid.UUID, tenantID domain.TenantID, before, after any, reason string) error {
	_, err := s.audit.Record(ctx, auditsvc.Change{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		TenantID:   &tenantID,
		Old:        before,
		New:        after,
		Reason:     reason,
	})
	return err
}
