// Package service manages staff accounts and verifies their credentials.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	auditsvc "mealcare/internal/audit/service"
	"mealcare/internal/platform/logger"
	"mealcare/internal/platform/metrics"
	"mealcare/internal/user/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/platform/sentinel"
	"mealcare/pkg/platform/tx"
	"mealcare/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id domain.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f models.Filter) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	SetPasswordHash(ctx context.Context, id domain.UserID, hash string, at time.Time) error
	TouchLastLogin(ctx context.Context, id domain.UserID, at time.Time) error
	Delete(ctx context.Context, id domain.UserID) error
}

// PasswordHasher hashes new passwords and checks presented ones. Compare
// returns a non-nil error for any mismatch.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, c auditsvc.Change) (*auditmodels.Entry, error)
}

type Service struct {
	users   Store
	hasher  PasswordHasher
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

func New(users Store, hasher PasswordHasher, audit AuditRecorder, opts ...Option) *Service {
	s := &Service{
		users:  users,
		hasher: hasher,
		audit:  audit,
		logger: logger.Discard(),
		tx:     tx.NoopRunner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const emailConflictMsg = "email is already registered"

// CreateUser hashes password and stores a new active user.
func (s *Service) CreateUser(ctx context.Context, p models.Profile, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	var user *models.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := models.NewUser(domain.UserID(uuid.New()), p, hash, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.users.Create(txCtx, u); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				s.metrics.IncUniqueConflict("user")
				return dErrors.Wrap(err, dErrors.CodeConflict, emailConflictMsg)
			case errors.Is(err, sentinel.ErrNotFound):
				return dErrors.Wrap(err, dErrors.CodeNotFound, "tenant not found")
			}
			return dErrors.FromStore(err, "user")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, u, nil, u, ""); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID.String(), "role", string(user.Role))
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id domain.UserID) (*models.User, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, dErrors.FromStore(err, "user")
	}
	return u, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, dErrors.FromStore(err, "user")
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, f models.Filter) ([]*models.User, error) {
	if f.Role != "" && !f.Role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown role "+string(f.Role))
	}
	users, err := s.users.List(ctx, f)
	if err != nil {
		return nil, dErrors.FromStore(err, "users")
	}
	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, id domain.UserID, p models.Profile) (*models.User, error) {
	return s.mutate(ctx, id, "", func(u *models.User, now time.Time) error {
		return u.ApplyProfile(p, now)
	})
}

func (s *Service) DeactivateUser(ctx context.Context, id domain.UserID, reason string) (*models.User, error) {
	return s.mutate(ctx, id, reason, func(u *models.User, now time.Time) error {
		return u.Deactivate(now)
	})
}

func (s *Service) ReactivateUser(ctx context.Context, id domain.UserID, reason string) (*models.User, error) {
	return s.mutate(ctx, id, reason, func(u *models.User, now time.Time) error {
		return u.Reactivate(now)
	})
}

func (s *Service) mutate(ctx context.Context, id domain.UserID, reason string, fn func(*models.User, time.Time) error) (*models.User, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	var updated *models.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.FindByID(txCtx, id)
		if err != nil {
			return dErrors.FromStore(err, "user")
		}
		before := *u
		if err := fn(u, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.users.Update(txCtx, u); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				s.metrics.IncUniqueConflict("user")
				return dErrors.Wrap(err, dErrors.CodeConflict, emailConflictMsg)
			case errors.Is(err, sentinel.ErrNotFound) && u.TenantID != nil && !sameTenant(before.TenantID, u.TenantID):
				return dErrors.Wrap(err, dErrors.CodeNotFound, "tenant not found")
			}
			return dErrors.FromStore(err, "user")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, u, before, u, reason); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetPassword replaces the user's password. The audit entry names the change
// but carries no hash.
func (s *Service) SetPassword(ctx context.Context, id domain.UserID, password string) error {
	if id.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.FindByID(txCtx, id)
		if err != nil {
			return dErrors.FromStore(err, "user")
		}
		if err := s.users.SetPasswordHash(txCtx, id, hash, requestcontext.Now(txCtx)); err != nil {
			return dErrors.FromStore(err, "user")
		}
		return s.record(txCtx, auditmodels.ActionUpdate, u, nil, map[string]any{"password_changed": true}, "password reset")
	})
}

// DeleteUser removes the account. Audit entries the user wrote survive with
// their user reference cleared.
func (s *Service) DeleteUser(ctx context.Context, id domain.UserID, reason string) error {
	if id.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		u, err := s.users.FindByID(txCtx, id)
		if err != nil {
			return dErrors.FromStore(err, "user")
		}
		if err := s.record(txCtx, auditmodels.ActionDelete, u, u, nil, reason); err != nil {
			return err
		}
		if err := s.users.Delete(txCtx, id); err != nil {
			return dErrors.FromStore(err, "user")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", id.String())
	return nil
}

// VerifyCredentials checks email and password and stamps last_login on
// success. Unknown email, wrong password and inactive accounts all fail
// with the same unauthorized error.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")

	u, err := s.users.FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, invalid
		}
		return nil, dErrors.FromStore(err, "user")
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.logger.InfoContext(ctx, "credential check failed", "user_id", u.ID.String())
		return nil, invalid
	}
	if !u.IsActive {
		s.logger.InfoContext(ctx, "inactive user rejected", "user_id", u.ID.String())
		return nil, invalid
	}
	now := requestcontext.Now(ctx)
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, dErrors.FromStore(err, "user")
	}
	u.LastLogin = &now
	return u, nil
}

func (s *Service) record(ctx context.Context, action auditmodels.Action, u *models.User, before, after any, reason string) error {
	_, err := s.audit.Record(ctx, auditsvc.Change{
		Action:     action,
		EntityType: auditmodels.EntityUser,
		EntityID:   uuid.UUID(u.ID),
		TenantID:   u.TenantID,
		Old:        before,
		New:        after,
		Reason:     reason,
	})
	return err
}

func sameTenant(a, b *domain.TenantID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
