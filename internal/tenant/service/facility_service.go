package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	auditsvc "mealcare/internal/audit/service"
	"mealcare/internal/platform/metrics"
	"mealcare/internal/tenant/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
	"mealcare/pkg/requestcontext"
)

// FacilityService manages the wing/room hierarchy inside one tenant.
type FacilityService struct {
	store   FacilityStore
	audit   AuditRecorder
	logger  *slog.Logger
	metrics *metrics.Metrics
	tx      tx.Runner
}

func NewFacilityService(store FacilityStore, audit AuditRecorder, opts ...Option) *FacilityService {
	cfg := newConfig(opts)
	return &FacilityService{
		store:   store,
		audit:   audit,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		tx:      cfg.tx,
	}
}

func (s *FacilityService) CreateWing(ctx context.Context, tenantID domain.TenantID, p models.WingProfile) (*models.Wing, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	var wing *models.Wing
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		w, err := models.NewWing(domain.WingID(uuid.New()), tenantID, p, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.CreateWing(txCtx, w); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("wing")
			}
			return createErr(err, "wing", "tenant", "wing name already used in this facility")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityWing, uuid.UUID(w.ID), tenantID, nil, w); err != nil {
			return err
		}
		wing = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wing, nil
}

func (s *FacilityService) GetWing(ctx context.Context, tenantID domain.TenantID, wingID domain.WingID) (*models.Wing, error) {
	w, err := s.store.FindWing(ctx, tenantID, wingID)
	if err != nil {
		return nil, dErrors.FromStore(err, "wing")
	}
	return w, nil
}

func (s *FacilityService) ListWings(ctx context.Context, tenantID domain.TenantID) ([]*models.Wing, error) {
	wings, err := s.store.ListWings(ctx, tenantID)
	if err != nil {
		return nil, dErrors.FromStore(err, "wings")
	}
	return wings, nil
}

func (s *FacilityService) UpdateWing(ctx context.Context, tenantID domain.TenantID, wingID domain.WingID, p models.WingProfile) (*models.Wing, error) {
	var wing *models.Wing
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		w, err := s.store.FindWing(txCtx, tenantID, wingID)
		if err != nil {
			return dErrors.FromStore(err, "wing")
		}
		before := *w
		if err := w.ApplyProfile(p, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.store.UpdateWing(txCtx, w); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("wing")
				return dErrors.Wrap(err, dErrors.CodeConflict, "wing name already used in this facility")
			}
			return dErrors.FromStore(err, "wing")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityWing, uuid.UUID(w.ID), tenantID, before, w); err != nil {
			return err
		}
		wing = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wing, nil
}

// DeleteWing removes a wing. Its rooms and residents stay, unassigned.
func (s *FacilityService) DeleteWing(ctx context.Context, tenantID domain.TenantID, wingID domain.WingID) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		w, err := s.store.FindWing(txCtx, tenantID, wingID)
		if err != nil {
			return dErrors.FromStore(err, "wing")
		}
		if err := s.store.DeleteWing(txCtx, tenantID, wingID); err != nil {
			return dErrors.FromStore(err, "wing")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityWing, uuid.UUID(w.ID), tenantID, w, nil)
	})
}

func (s *FacilityService) CreateRoom(ctx context.Context, tenantID domain.TenantID, p models.RoomProfile) (*models.Room, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	var room *models.Room
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := models.NewRoom(domain.RoomID(uuid.New()), tenantID, p, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.requireWing(txCtx, tenantID, r.WingID); err != nil {
			return err
		}
		if err := s.store.CreateRoom(txCtx, r); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("room")
			}
			return createErr(err, "room", "tenant", "room number already used in this facility")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityRoom, uuid.UUID(r.ID), tenantID, nil, r); err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *FacilityService) GetRoom(ctx context.Context, tenantID domain.TenantID, roomID domain.RoomID) (*models.Room, error) {
	r, err := s.store.FindRoom(ctx, tenantID, roomID)
	if err != nil {
		return nil, dErrors.FromStore(err, "room")
	}
	return r, nil
}

// ListRooms lists the tenant's rooms, or only those in wingID when set.
func (s *FacilityService) ListRooms(ctx context.Context, tenantID domain.TenantID, wingID *domain.WingID) ([]*models.Room, error) {
	rooms, err := s.store.ListRooms(ctx, tenantID, wingID)
	if err != nil {
		return nil, dErrors.FromStore(err, "rooms")
	}
	return rooms, nil
}

func (s *FacilityService) UpdateRoom(ctx context.Context, tenantID domain.TenantID, roomID domain.RoomID, p models.RoomProfile) (*models.Room, error) {
	var room *models.Room
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.store.FindRoom(txCtx, tenantID, roomID)
		if err != nil {
			return dErrors.FromStore(err, "room")
		}
		before := *r
		if err := r.ApplyProfile(p, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.requireWing(txCtx, tenantID, r.WingID); err != nil {
			return err
		}
		if err := s.store.UpdateRoom(txCtx, r); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("room")
				return dErrors.Wrap(err, dErrors.CodeConflict, "room number already used in this facility")
			}
			return dErrors.FromStore(err, "room")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityRoom, uuid.UUID(r.ID), tenantID, before, r); err != nil {
			return err
		}
		room = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (s *FacilityService) DeleteRoom(ctx context.Context, tenantID domain.TenantID, roomID domain.RoomID) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.store.FindRoom(txCtx, tenantID, roomID)
		if err != nil {
			return dErrors.FromStore(err, "room")
		}
		if err := s.store.DeleteRoom(txCtx, tenantID, roomID); err != nil {
			return dErrors.FromStore(err, "room")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityRoom, uuid.UUID(r.ID), tenantID, r, nil)
	})
}

// requireWing rejects a wing reference that does not belong to the tenant. The
// foreign key alone would accept another tenant's wing.
func (s *FacilityService) requireWing(ctx context.Context, tenantID domain.TenantID, wingID *domain.WingID) error {
	if wingID == nil {
		return nil
	}
	if _, err := s.store.FindWing(ctx, tenantID, *wingID); err != nil {
		return dErrors.FromStore(err, "wing")
	}
	return nil
}

func (s *FacilityService) record(ctx context.Context, action auditmodels.Action, entityType string, entityID uuid.UUID, tenantID domain.TenantID, before, after any) error {
	_, err := s.audit.Record(ctx, auditsvc.Change{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		TenantID:   &tenantID,
		Old:        before,
		New:        after,
	})
	return err
}
