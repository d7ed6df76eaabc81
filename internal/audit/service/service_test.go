package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"mealcare/internal/audit/models"
	"mealcare/internal/audit/store"
	"mealcare/internal/platform/metrics"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store    *store.InMemoryStore
	metrics  *metrics.Metrics
	service  *Service
	ctx      context.Context
	userID   domain.UserID
	tenantID domain.TenantID
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store, WithMetrics(s.metrics))
	s.userID = domain.UserID(uuid.New())
	s.tenantID = domain.TenantID(uuid.New())
	s.now = time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC)

	ctx := requestcontext.WithActor(context.Background(), s.userID, s.tenantID)
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.7:53122", "kiosk/2.1")
	s.ctx = requestcontext.WithTime(ctx, s.now)
}

func (s *ServiceSuite) TestRecordCapturesActor() {
	residentID := uuid.New()
	entry, err := s.service.Record(s.ctx, Change{
		Action:     models.ActionUpdate,
		EntityType: models.EntityResident,
		EntityID:   residentID,
		Old:        map[string]any{"diet_type": "regular", "version": 0},
		New:        map[string]any{"diet_type": "renal", "version": 1},
	})
	s.Require().NoError(err)

	s.Equal(s.userID, *entry.UserID)
	s.Equal(s.tenantID, *entry.TenantID)
	s.Equal(residentID, *entry.EntityID)
	s.Equal("10.0.0.7", entry.IPAddress)
	s.Equal("kiosk/2.1", entry.UserAgent)
	s.Equal(s.now, entry.CreatedAt)
	s.Equal("renal", entry.NewValue["diet_type"])
	s.Equal(1.0, testutil.ToFloat64(s.metrics.AuditEntries.WithLabelValues("update")))
}

func (s *ServiceSuite) TestRecordTenantOverrides() {
	s.Run("explicit tenant wins over context", func() {
		other := domain.TenantID(uuid.New())
		entry, err := s.service.Record(s.ctx, Change{
			Action: models.ActionCreate, EntityType: models.EntityWing, TenantID: &other,
		})
		s.Require().NoError(err)
		s.Equal(other, *entry.TenantID)
	})
	s.Run("detached entry has no tenant", func() {
		entry, err := s.service.Record(s.ctx, Change{
			Action: models.ActionDelete, EntityType: models.EntityTenant, EntityID: uuid.UUID(s.tenantID), Detached: true,
		})
		s.Require().NoError(err)
		s.Nil(entry.TenantID)
	})
	s.Run("anonymous context", func() {
		entry, err := s.service.Record(context.Background(), Change{
			Action: models.ActionCreate, EntityType: models.EntityTenant,
		})
		s.Require().NoError(err)
		s.Nil(entry.UserID)
		s.Nil(entry.TenantID)
		s.Empty(entry.IPAddress)
	})
}

func (s *ServiceSuite) TestRecordRejectsInvalidInput() {
	_, err := s.service.Record(s.ctx, Change{Action: "purge", EntityType: models.EntityResident})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.Record(s.ctx, Change{Action: models.ActionUpdate, EntityType: ""})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.Record(s.ctx, Change{Action: models.ActionUpdate, EntityType: models.EntityResident, New: "scalar"})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// Append an update entry for a Resident, try to delete it, and read it back.
func (s *ServiceSuite) TestDeleteIsRejectedAndRecordSurvives() {
	entry, err := s.service.Record(s.ctx, Change{
		Action:     models.ActionUpdate,
		EntityType: models.EntityResident,
		EntityID:   uuid.New(),
	})
	s.Require().NoError(err)

	err = s.service.Delete(s.ctx, entry.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeImmutable))

	found, err := s.service.Get(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal(*entry, *found)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ImmutableRejections))
}

func (s *ServiceSuite) TestUpdateIsRejectedForEveryCaller() {
	entry, err := s.service.Record(s.ctx, Change{Action: models.ActionCreate, EntityType: models.EntityMenu})
	s.Require().NoError(err)

	superAdmin := requestcontext.WithUserID(context.Background(), domain.UserID(uuid.New()))
	for _, ctx := range []context.Context{s.ctx, superAdmin, context.Background()} {
		changed := *entry
		changed.Reason = "rewritten"
		err := s.service.Update(ctx, entry.ID, changed)
		s.True(dErrors.HasCode(err, dErrors.CodeImmutable))
	}

	found, err := s.service.Get(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Empty(found.Reason)
}

func (s *ServiceSuite) TestList() {
	residentID := uuid.New()
	for i := 0; i < 3; i++ {
		ctx := requestcontext.WithTime(s.ctx, s.now.Add(time.Duration(i)*time.Minute))
		_, err := s.service.Record(ctx, Change{Action: models.ActionUpdate, EntityType: models.EntityResident, EntityID: residentID})
		s.Require().NoError(err)
	}
	_, err := s.service.Record(s.ctx, Change{Action: models.ActionCreate, EntityType: models.EntityMenu})
	s.Require().NoError(err)

	entries, err := s.service.List(s.ctx, models.Filter{EntityType: models.EntityResident, EntityID: &residentID})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.True(entries[0].CreatedAt.After(entries[1].CreatedAt))
	s.True(entries[1].CreatedAt.After(entries[2].CreatedAt))

	_, err = s.service.List(s.ctx, models.Filter{EntityID: &residentID})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, domain.AuditRecordID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
