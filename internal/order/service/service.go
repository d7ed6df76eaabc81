// Package service places and edits meal orders.
//
// Orders use optimistic concurrency. Every mutating call takes the version
// the caller last read; the store applies the change only if that version is
// still current and the order is unlocked, and bumps the version by one.
// Nothing retries: on a version conflict the caller reloads and decides.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	auditsvc "mealcare/internal/audit/service"
	menumodels "mealcare/internal/menu/models"
	"mealcare/internal/order/models"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	residentmodels "mealcare/internal/resident/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
	"mealcare/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID) (*models.Order, error)
	List(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Order, error)
	Update(ctx context.Context, o *models.Order, expectedVersion int) error
	Delete(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID) error

	CreateComponent(ctx context.Context, c *models.Component) error
	FindComponent(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID, id domain.ComponentID) (*models.Component, error)
	ListComponents(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID) ([]*models.Component, error)
	DeleteComponent(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID, id domain.ComponentID) error
}

// Menus resolves menus and menu items. Errors carry domain codes.
type Menus interface {
	GetMenu(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) (*menumodels.Menu, error)
	GetItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) (*menumodels.Item, error)
}

// Residents resolves residents and their hard allergen restrictions. Errors
// carry domain codes.
type Residents interface {
	GetResident(ctx context.Context, tenantID domain.TenantID, id domain.ResidentID) (*residentmodels.Resident, error)
	HardRestrictions(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID) ([]string, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, c auditsvc.Change) (*auditmodels.Entry, error)
}

type Service struct {
	store     Store
	menus     Menus
	residents Residents
	audit     AuditRecorder
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tx        tx.Runner
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

func New(store Store, menus Menus, residents Residents, audit AuditRecorder, opts ...Option) *Service {
	s := &Service{
		store:     store,
		menus:     menus,
		residents: residents,
		audit:     audit,
		logger:    logger.Discard(),
		tx:        tx.NoopRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder places an order for a resident against a menu of the same
// tenant. A resident has at most one order per date and meal type; a second
// create for the same slot, concurrent or not, is a conflict.
func (s *Service) CreateOrder(ctx context.Context, tenantID domain.TenantID, residentID domain.ResidentID, menuID domain.MenuID, notes string) (*models.Order, error) {
	var order *models.Order
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		resident, err := s.residents.GetResident(txCtx, tenantID, residentID)
		if err != nil {
			return err
		}
		if !resident.IsActive {
			return dErrors.New(dErrors.CodeInvalidState, "resident is discharged")
		}
		menu, err := s.menus.GetMenu(txCtx, tenantID, menuID)
		if err != nil {
			return err
		}
		var createdBy *domain.UserID
		if userID, ok := requestcontext.UserID(txCtx); ok {
			createdBy = &userID
		}
		o, err := models.NewOrder(domain.MealOrderID(uuid.New()), residentID, menu, notes, createdBy, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.Create(txCtx, o); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("meal_order")
				s.logger.InfoContext(txCtx, "duplicate meal order",
					"tenant_id", tenantID.String(),
					"resident_id", residentID.String(),
					"order_date", o.OrderDate.Format(time.DateOnly),
					"meal_type", string(o.MealType),
				)
				return dErrors.Wrap(err, dErrors.CodeConflict,
					fmt.Sprintf("resident already has a %s order for %s", o.MealType, o.OrderDate.Format(time.DateOnly)))
			}
			return dErrors.FromStore(err, "meal order")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityMealOrder, uuid.UUID(o.ID), tenantID, nil, o, ""); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID) (*models.Order, error) {
	o, err := s.store.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, dErrors.FromStore(err, "meal order")
	}
	return o, nil
}

// ListOrders lists by service date, meal type or resident.
func (s *Service) ListOrders(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Order, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Date != nil {
		day := menumodels.DateOf(*f.Date)
		f.Date = &day
	}
	orders, err := s.store.List(ctx, tenantID, f)
	if err != nil {
		return nil, dErrors.FromStore(err, "meal orders")
	}
	return orders, nil
}

func (s *Service) ListComponents(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID) ([]*models.Component, error) {
	components, err := s.store.ListComponents(ctx, tenantID, orderID)
	if err != nil {
		return nil, dErrors.FromStore(err, "order components")
	}
	return components, nil
}

func (s *Service) UpdateNotes(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID, version int, notes string) (*models.Order, error) {
	return s.mutate(ctx, tenantID, id, version, "", func(txCtx context.Context, o *models.Order) error {
		return o.SetNotes(notes, requestcontext.Now(txCtx))
	}, nil)
}

// SubmitOrder hands the order to the kitchen on behalf of the acting user.
func (s *Service) SubmitOrder(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID, version int) (*models.Order, error) {
	return s.mutate(ctx, tenantID, id, version, "", func(txCtx context.Context, o *models.Order) error {
		var by *domain.UserID
		if userID, ok := requestcontext.UserID(txCtx); ok {
			by = &userID
		}
		return o.Submit(by, requestcontext.Now(txCtx))
	}, nil)
}

// LockOrder freezes the order against further changes.
func (s *Service) LockOrder(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID, version int, reason string) (*models.Order, error) {
	return s.mutate(ctx, tenantID, id, version, reason, func(txCtx context.Context, o *models.Order) error {
		return o.Lock(requestcontext.Now(txCtx))
	}, nil)
}

// AddComponent adds a course to the order and bumps its version. An item
// carrying one of the resident's hard-restricted allergens is refused unless
// in.OverrideRestrictions is set with a reason.
func (s *Service) AddComponent(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID, version int, in models.ComponentInput, reason string) (*models.Order, *models.Component, error) {
	reason = strings.TrimSpace(reason)
	if in.OverrideRestrictions && reason == "" {
		return nil, nil, dErrors.New(dErrors.CodeInvalidInput, "a reason is required to override a dietary restriction")
	}
	var (
		component *models.Component
		action    auditmodels.Action
	)
	order, err := s.mutate(ctx, tenantID, orderID, version, reason, func(txCtx context.Context, o *models.Order) error {
		if err := o.Touch(requestcontext.Now(txCtx)); err != nil {
			return err
		}
		var item *menumodels.Item
		if in.MenuItemID != nil {
			var err error
			if item, err = s.menus.GetItem(txCtx, tenantID, *in.MenuItemID); err != nil {
				return err
			}
		}
		c, err := models.NewComponent(domain.ComponentID(uuid.New()), o, item, in, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if action, err = s.screenAllergens(txCtx, o, item, in.OverrideRestrictions); err != nil {
			return err
		}
		component = c
		return nil
	}, func(txCtx context.Context, _ *models.Order) error {
		if err := s.store.CreateComponent(txCtx, component); err != nil {
			return dErrors.FromStore(err, "order component")
		}
		return s.record(txCtx, action, auditmodels.EntityMealOrderComponent, uuid.UUID(component.ID), tenantID, nil, component, reason)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, component, nil
}

// RemoveComponent deletes a course from the order and bumps its version.
func (s *Service) RemoveComponent(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID, version int, componentID domain.ComponentID, reason string) (*models.Order, error) {
	var component *models.Component
	return s.mutate(ctx, tenantID, orderID, version, reason, func(txCtx context.Context, o *models.Order) error {
		if err := o.Touch(requestcontext.Now(txCtx)); err != nil {
			return err
		}
		c, err := s.store.FindComponent(txCtx, tenantID, orderID, componentID)
		if err != nil {
			return dErrors.FromStore(err, "order component")
		}
		component = c
		return nil
	}, func(txCtx context.Context, _ *models.Order) error {
		if err := s.store.DeleteComponent(txCtx, tenantID, orderID, componentID); err != nil {
			return dErrors.FromStore(err, "order component")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityMealOrderComponent, uuid.UUID(component.ID), tenantID, component, nil, reason)
	})
}

// DeleteOrder removes an unlocked order and its components.
func (s *Service) DeleteOrder(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID, reason string) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		o, err := s.store.FindByID(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "meal order")
		}
		if err := o.EnsureEditable(); err != nil {
			return err
		}
		if err := s.store.Delete(txCtx, tenantID, id); err != nil {
			return dErrors.FromStore(err, "meal order")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityMealOrder, uuid.UUID(o.ID), tenantID, o, nil, reason)
	})
}

type step func(ctx context.Context, o *models.Order) error

// mutate applies change to the order at version, writes it through the
// guarded update and records it. after, when set, runs once the version bump
// has landed, so a lost race fails before any component row is touched.
func (s *Service) mutate(ctx context.Context, tenantID domain.TenantID, id domain.MealOrderID, version int, reason string, change, after step) (*models.Order, error) {
	if version < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "version cannot be negative")
	}
	var updated *models.Order
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		o, err := s.store.FindByID(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "meal order")
		}
		if o.Version != version {
			return s.versionConflict(txCtx, id, fmt.Errorf("expected version %d, stored %d: %w", version, o.Version, sentinel.ErrVersionConflict))
		}
		before := *o
		if err := change(txCtx, o); err != nil {
			return err
		}
		if err := s.store.Update(txCtx, o, version); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrVersionConflict):
				return s.versionConflict(txCtx, id, err)
			case errors.Is(err, sentinel.ErrInvalidState):
				return dErrors.Wrap(err, dErrors.CodeInvalidState, "order is locked")
			}
			return dErrors.FromStore(err, "meal order")
		}
		if after != nil {
			if err := after(txCtx, o); err != nil {
				return err
			}
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityMealOrder, uuid.UUID(o.ID), tenantID, before, o, reason); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) versionConflict(ctx context.Context, id domain.MealOrderID, cause error) error {
	s.metrics.IncVersionConflict("meal_order")
	s.logger.InfoContext(ctx, "meal order version conflict", "meal_order_id", id.String(), "error", cause)
	return dErrors.Wrap(cause, dErrors.CodeVersionConflict, "meal order was modified by another writer; reload and retry")
}

// screenAllergens checks item against the resident's hard restrictions and
// returns the audit action to record the component under.
func (s *Service) screenAllergens(ctx context.Context, o *models.Order, item *menumodels.Item, override bool) (auditmodels.Action, error) {
	if item == nil || len(item.Allergens) == 0 {
		return auditmodels.ActionCreate, nil
	}
	restrictions, err := s.residents.HardRestrictions(ctx, o.TenantID, o.ResidentID)
	if err != nil {
		return "", err
	}
	conflicts := item.ConflictingAllergens(restrictions)
	if len(conflicts) == 0 {
		return auditmodels.ActionCreate, nil
	}
	if !override {
		return "", dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("%s contains allergens the resident must avoid: %s", item.Name, strings.Join(conflicts, ", ")))
	}
	s.logger.WarnContext(ctx, "dietary restriction overridden",
		"meal_order_id", o.ID.String(),
		"resident_id", o.ResidentID.String(),
		"menu_item_id", item.ID.String(),
		"allergens", conflicts,
	)
	return auditmodels.ActionOverride, nil
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
