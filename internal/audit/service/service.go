// Package service records and reads the audit trail.
//
// Other services call Record inside their own transaction so the audit row
// commits or rolls back with the mutation it describes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"mealcare/internal/audit/models"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/requestcontext"
)

type Store interface {
	Append(ctx context.Context, e *models.Entry) error
	FindByID(ctx context.Context, id domain.AuditRecordID) (*models.Entry, error)
	List(ctx context.Context, f models.Filter) ([]*models.Entry, error)
	Update(ctx context.Context, id domain.AuditRecordID, e *models.Entry) error
	Delete(ctx context.Context, id domain.AuditRecordID) error
}

// Change describes one mutation to record. The acting user, tenant, client IP
// and user agent come from the context.
type Change struct {
	Action     models.Action
	EntityType string
	EntityID   uuid.UUID
	// TenantID overrides the tenant from the context.
	TenantID *domain.TenantID
	// Detached records the entry without a tenant. Used when the tenant itself
	// is being removed in the same transaction.
	Detached bool
	Old      any
	New      any
	Reason   string
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
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

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends an entry for c on behalf of the principal in ctx.
func (s *Service) Record(ctx context.Context, c Change) (*models.Entry, error) {
	oldValue, err := models.SnapshotOf(c.Old)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid old value")
	}
	newValue, err := models.SnapshotOf(c.New)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid new value")
	}

	e := models.Entry{
		Action:     c.Action,
		EntityType: c.EntityType,
		OldValue:   oldValue,
		NewValue:   newValue,
		Reason:     c.Reason,
		IPAddress:  models.NormalizeIP(requestcontext.ClientIP(ctx)),
		UserAgent:  requestcontext.UserAgent(ctx),
	}
	if c.EntityID != uuid.Nil {
		entityID := c.EntityID
		e.EntityID = &entityID
	}
	switch {
	case c.Detached:
	case c.TenantID != nil:
		tenantID := *c.TenantID
		e.TenantID = &tenantID
	default:
		if tenantID, ok := requestcontext.TenantID(ctx); ok {
			e.TenantID = &tenantID
		}
	}
	if userID, ok := requestcontext.UserID(ctx); ok {
		e.UserID = &userID
	}
	return s.Append(ctx, e)
}

// Append stores e as given, assigning its ID and creation time.
func (s *Service) Append(ctx context.Context, e models.Entry) (*models.Entry, error) {
	e.EntityType = strings.TrimSpace(e.EntityType)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.ID = domain.AuditRecordID(uuid.New())
	e.CreatedAt = requestcontext.Now(ctx)

	if err := s.store.Append(ctx, &e); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "audit actor or tenant not found")
		}
		return nil, dErrors.FromStore(err, "audit record")
	}
	s.metrics.IncAuditEntry(string(e.Action))
	return &e, nil
}

func (s *Service) Get(ctx context.Context, id domain.AuditRecordID) (*models.Entry, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, dErrors.FromStore(err, "audit record")
	}
	return e, nil
}

// List returns records newest first.
func (s *Service) List(ctx context.Context, f models.Filter) ([]*models.Entry, error) {
	if f.EntityID != nil && f.EntityType == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "entity id filter requires an entity type")
	}
	entries, err := s.store.List(ctx, f)
	if err != nil {
		return nil, dErrors.FromStore(err, "audit records")
	}
	return entries, nil
}

// Update always fails: audit records are immutable for every caller.
func (s *Service) Update(ctx context.Context, id domain.AuditRecordID, e models.Entry) error {
	return s.rejectMutation(ctx, "update", id, s.store.Update(ctx, id, &e))
}

// Delete always fails: audit records are immutable for every caller.
func (s *Service) Delete(ctx context.Context, id domain.AuditRecordID) error {
	return s.rejectMutation(ctx, "delete", id, s.store.Delete(ctx, id))
}

func (s *Service) rejectMutation(ctx context.Context, op string, id domain.AuditRecordID, err error) error {
	s.metrics.IncImmutableRejection()
	s.logger.WarnContext(ctx, "rejected audit record mutation",
		"operation", op,
		"audit_id", id.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if err == nil {
		err = sentinel.ErrImmutable
	}
	return dErrors.Wrap(err, dErrors.CodeImmutable, "audit records cannot be modified or deleted")
}
