package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

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

// TenantService orchestrates tenant lifecycle management.
type TenantService struct {
	tenants TenantStore
	audit   AuditRecorder
	logger  *slog.Logger
	metrics *metrics.Metrics
	tx      tx.Runner
}

func NewTenantService(tenants TenantStore, audit AuditRecorder, opts ...Option) *TenantService {
	cfg := newConfig(opts)
	return &TenantService{
		tenants: tenants,
		audit:   audit,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		tx:      cfg.tx,
	}
}

func (s *TenantService) CreateTenant(ctx context.Context, p models.TenantProfile) (*models.Tenant, error) {
	var tenant *models.Tenant
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := models.NewTenant(domain.TenantID(uuid.New()), p, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.tenants.Create(txCtx, t); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("tenant")
				return dErrors.Wrap(err, dErrors.CodeConflict, "tenant slug must be unique")
			}
			return dErrors.FromStore(err, "tenant")
		}
		if _, err := s.audit.Record(txCtx, auditsvc.Change{
			Action:     auditmodels.ActionCreate,
			EntityType: auditmodels.EntityTenant,
			EntityID:   uuid.UUID(t.ID),
			TenantID:   &t.ID,
			New:        t,
		}); err != nil {
			return err
		}
		tenant = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "tenant created", "tenant_id", tenant.ID.String(), "slug", tenant.Slug)
	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, tenantID domain.TenantID) (*models.Tenant, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, dErrors.FromStore(err, "tenant")
	}
	return t, nil
}

func (s *TenantService) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant slug is required")
	}
	t, err := s.tenants.FindBySlug(ctx, slug)
	if err != nil {
		return nil, dErrors.FromStore(err, "tenant")
	}
	return t, nil
}

func (s *TenantService) ListTenants(ctx context.Context, activeOnly bool) ([]*models.Tenant, error) {
	tenants, err := s.tenants.List(ctx, activeOnly)
	if err != nil {
		return nil, dErrors.FromStore(err, "tenants")
	}
	return tenants, nil
}

// UpdateTenant replaces the tenant's profile.
func (s *TenantService) UpdateTenant(ctx context.Context, tenantID domain.TenantID, p models.TenantProfile) (*models.Tenant, error) {
	now := requestcontext.Now(ctx)
	return s.mutate(ctx, tenantID, "", func(t *models.Tenant) error {
		return t.ApplyProfile(p, now)
	})
}

// DeactivateTenant suspends a tenant without removing its data.
func (s *TenantService) DeactivateTenant(ctx context.Context, tenantID domain.TenantID, reason string) (*models.Tenant, error) {
	now := requestcontext.Now(ctx)
	return s.mutate(ctx, tenantID, reason, func(t *models.Tenant) error {
		return t.Deactivate(now)
	})
}

func (s *TenantService) ReactivateTenant(ctx context.Context, tenantID domain.TenantID, reason string) (*models.Tenant, error) {
	now := requestcontext.Now(ctx)
	return s.mutate(ctx, tenantID, reason, func(t *models.Tenant) error {
		return t.Reactivate(now)
	})
}

func (s *TenantService) mutate(ctx context.Context, tenantID domain.TenantID, reason string, fn func(*models.Tenant) error) (*models.Tenant, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	var updated *models.Tenant
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var before models.Tenant
		t, err := s.tenants.Execute(txCtx, tenantID, func(t *models.Tenant) error {
			before = *t
			return fn(t)
		})
		if err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				s.metrics.IncUniqueConflict("tenant")
				return dErrors.Wrap(err, dErrors.CodeConflict, "tenant slug must be unique")
			}
			return dErrors.FromStore(err, "tenant")
		}
		if _, err := s.audit.Record(txCtx, auditsvc.Change{
			Action:     auditmodels.ActionUpdate,
			EntityType: auditmodels.EntityTenant,
			EntityID:   uuid.UUID(t.ID),
			TenantID:   &t.ID,
			Old:        before,
			New:        t,
			Reason:     reason,
		}); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTenant removes the tenant and, through the schema's cascades, every
// row it owns, including its own audit history. The deletion itself is
// recorded without a tenant so it survives.
func (s *TenantService) DeleteTenant(ctx context.Context, tenantID domain.TenantID, reason string) error {
	if tenantID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.tenants.FindByID(txCtx, tenantID)
		if err != nil {
			return dErrors.FromStore(err, "tenant")
		}
		// Recorded first: if the actor belongs to this tenant, the cascade
		// clears the entry's user reference instead of the insert failing.
		if _, err := s.audit.Record(txCtx, auditsvc.Change{
			Action:     auditmodels.ActionDelete,
			EntityType: auditmodels.EntityTenant,
			EntityID:   uuid.UUID(t.ID),
			Detached:   true,
			Old:        t,
			Reason:     reason,
		}); err != nil {
			return err
		}
		if err := s.tenants.Delete(txCtx, tenantID); err != nil {
			return dErrors.FromStore(err, "tenant")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.WarnContext(ctx, "tenant deleted", "tenant_id", tenantID.String())
	return nil
}
