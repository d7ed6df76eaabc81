// Package service manages tenants and their wings and rooms. Every mutation
// writes an audit record in the same transaction.
package service

import (
	"context"
	"errors"
	"log/slog"

	auditmodels "mealcare/internal/audit/models"
	auditsvc "mealcare/internal/audit/service"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	"mealcare/internal/tenant/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
)

type TenantStore interface {
	Create(ctx context.Context, t *models.Tenant) error
	FindByID(ctx context.Context, id domain.TenantID) (*models.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Tenant, error)
	Execute(ctx context.Context, id domain.TenantID, fn func(*models.Tenant) error) (*models.Tenant, error)
	Delete(ctx context.Context, id domain.TenantID) error
}

type FacilityStore interface {
	CreateWing(ctx context.Context, w *models.Wing) error
	FindWing(ctx context.Context, tenantID domain.TenantID, id domain.WingID) (*models.Wing, error)
	ListWings(ctx context.Context, tenantID domain.TenantID) ([]*models.Wing, error)
	UpdateWing(ctx context.Context, w *models.Wing) error
	DeleteWing(ctx context.Context, tenantID domain.TenantID, id domain.WingID) error

	CreateRoom(ctx context.Context, r *models.Room) error
	FindRoom(ctx context.Context, tenantID domain.TenantID, id domain.RoomID) (*models.Room, error)
	ListRooms(ctx context.Context, tenantID domain.TenantID, wingID *domain.WingID) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, r *models.Room) error
	DeleteRoom(ctx context.Context, tenantID domain.TenantID, id domain.RoomID) error
}

// AuditRecorder appends an audit entry through the caller's transaction.
type AuditRecorder interface {
	Record(ctx context.Context, c auditsvc.Change) (*auditmodels.Entry, error)
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tx      tx.Runner
}

type Option func(*serviceConfig)

func WithLogger(l *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

// WithTx sets the transaction runner. Without one, calls run directly against
// the stores, which suits unit tests with in-memory collaborators.
func WithTx(r tx.Runner) Option {
	return func(c *serviceConfig) {
		c.tx = r
	}
}

func newConfig(opts []Option) serviceConfig {
	cfg := serviceConfig{logger: logger.Discard(), tx: tx.NoopRunner{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// createErr maps a failed insert. A missing parent reads as "<parent> not found"
// rather than "<subject> not found".
func createErr(err error, subject, parent, conflictMsg string) error {
	switch {
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.Wrap(err, dErrors.CodeConflict, conflictMsg)
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, parent+" not found")
	default:
		return dErrors.FromStore(err, subject)
	}
}
