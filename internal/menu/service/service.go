// Package service manages daily menus and their items.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	auditsvc "mealcare/internal/audit/service"
	"mealcare/internal/menu/models"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
	"mealcare/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, m *models.Menu) error
	FindByID(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) (*models.Menu, error)
	FindBySlot(ctx context.Context, tenantID domain.TenantID, date time.Time, mealType models.MealType) (*models.Menu, error)
	List(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Menu, error)
	Update(ctx context.Context, m *models.Menu) error
	Delete(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) error

	CreateItem(ctx context.Context, i *models.Item) error
	FindItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) (*models.Item, error)
	ListItems(ctx context.Context, tenantID domain.TenantID, menuID domain.MenuID) ([]*models.Item, error)
	UpdateItem(ctx context.Context, i *models.Item) error
	DeleteItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) error
}

type AuditRecorder interface {
	Record(ctx context.Context, c auditsvc.Change) (*auditmodels.Entry, error)
}

type Service struct {
	store   Store
	audit   AuditRecorder
	logger  *slog.Logger
	metrics *metrics.Metrics
	tx      tx.Runner
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

func New(store Store, audit AuditRecorder, opts ...Option) *Service {
	s := &Service{
		store:  store,
		audit:  audit,
		logger: logger.Discard(),
		tx:     tx.NoopRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMenu opens an unpublished menu for one meal on date. A tenant holds at
// most one menu per date and meal type.
func (s *Service) CreateMenu(ctx context.Context, tenantID domain.TenantID, date time.Time, mealType models.MealType) (*models.Menu, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	var menu *models.Menu
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := models.NewMenu(domain.MenuID(uuid.New()), tenantID, date, mealType, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.Create(txCtx, m); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				s.metrics.IncUniqueConflict("menu")
				return dErrors.Wrap(err, dErrors.CodeConflict, "a "+string(mealType)+" menu already exists for "+m.Date.Format(time.DateOnly))
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.Wrap(err, dErrors.CodeNotFound, "tenant not found")
			}
			return dErrors.FromStore(err, "menu")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityMenu, uuid.UUID(m.ID), tenantID, nil, m); err != nil {
			return err
		}
		menu = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "menu created",
		"tenant_id", tenantID.String(),
		"menu_id", menu.ID.String(),
		"date", menu.Date.Format(time.DateOnly),
		"meal_type", string(menu.MealType),
	)
	return menu, nil
}

func (s *Service) GetMenu(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) (*models.Menu, error) {
	m, err := s.store.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, dErrors.FromStore(err, "menu")
	}
	return m, nil
}

// FindMenu returns the menu for date and mealType.
func (s *Service) FindMenu(ctx context.Context, tenantID domain.TenantID, date time.Time, mealType models.MealType) (*models.Menu, error) {
	if !mealType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown meal type "+string(mealType))
	}
	m, err := s.store.FindBySlot(ctx, tenantID, models.DateOf(date), mealType)
	if err != nil {
		return nil, dErrors.FromStore(err, "menu")
	}
	return m, nil
}

func (s *Service) ListMenus(ctx context.Context, tenantID domain.TenantID, f models.Filter) ([]*models.Menu, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	menus, err := s.store.List(ctx, tenantID, f)
	if err != nil {
		return nil, dErrors.FromStore(err, "menus")
	}
	return menus, nil
}

// PublishMenu marks the menu published by the acting user.
func (s *Service) PublishMenu(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) (*models.Menu, error) {
	return s.mutate(ctx, tenantID, id, func(m *models.Menu, now time.Time) error {
		var by *domain.UserID
		if userID, ok := requestcontext.UserID(ctx); ok {
			by = &userID
		}
		return m.Publish(by, now)
	})
}

func (s *Service) UnpublishMenu(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) (*models.Menu, error) {
	return s.mutate(ctx, tenantID, id, func(m *models.Menu, now time.Time) error {
		return m.Unpublish(now)
	})
}

func (s *Service) mutate(ctx context.Context, tenantID domain.TenantID, id domain.MenuID, fn func(*models.Menu, time.Time) error) (*models.Menu, error) {
	var updated *models.Menu
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := s.store.FindByID(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "menu")
		}
		before := *m
		if err := fn(m, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.store.Update(txCtx, m); err != nil {
			return dErrors.FromStore(err, "menu")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityMenu, uuid.UUID(m.ID), tenantID, before, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMenu removes the menu, its items and every order placed against it.
func (s *Service) DeleteMenu(ctx context.Context, tenantID domain.TenantID, id domain.MenuID) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := s.store.FindByID(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "menu")
		}
		if err := s.store.Delete(txCtx, tenantID, id); err != nil {
			return dErrors.FromStore(err, "menu")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityMenu, uuid.UUID(m.ID), tenantID, m, nil)
	})
}

func (s *Service) record(ctx context.Context, action auditmodels.Action, entityType string, entityID uuid.UUID, tenantID domain.TenantID, before, after any) error {
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
