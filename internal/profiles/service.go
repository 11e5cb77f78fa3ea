package profiles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Service keeps users.full_name and the role profile row in step.
type Service interface {
	Synchronize(ctx context.Context, identityID uuid.UUID, fields ProfileFields) (*SyncedProfile, error)
}

type store interface {
	db.TxRunner
	DB() *gorm.DB
}

type identityUpdater interface {
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type profileWriter interface {
	UpdateStudent(ctx context.Context, s *models.Student) (int64, error)
	InsertStudent(ctx context.Context, s *models.Student) error
	UpdateTeacher(ctx context.Context, t *models.Teacher) (int64, error)
	InsertTeacher(ctx context.Context, t *models.Teacher) error
}

type profileReader interface {
	StudentView(ctx context.Context, userID uuid.UUID) (*users.StudentView, error)
	TeacherView(ctx context.Context, userID uuid.UUID) (*users.TeacherView, error)
}

// ServiceParams bundles the dependencies of the sync workflow.
type ServiceParams struct {
	Store           store
	IdentityRepo    func(tx *gorm.DB) identityUpdater
	ProfileRepo     func(tx *gorm.DB) profileWriter
	ViewRepo        func(conn *gorm.DB) profileReader
	WorkflowMetrics *metrics.WorkflowMetrics
}

type service struct {
	store    store
	identity func(tx *gorm.DB) identityUpdater
	profiles func(tx *gorm.DB) profileWriter
	views    func(conn *gorm.DB) profileReader
	metrics  *metrics.WorkflowMetrics
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	svc := &service{
		store:    params.Store,
		identity: params.IdentityRepo,
		profiles: params.ProfileRepo,
		views:    params.ViewRepo,
		metrics:  params.WorkflowMetrics,
	}
	if svc.identity == nil {
		svc.identity = func(tx *gorm.DB) identityUpdater { return users.NewRepository(tx) }
	}
	if svc.profiles == nil {
		svc.profiles = func(tx *gorm.DB) profileWriter { return users.NewProfileRepository(tx) }
	}
	if svc.views == nil {
		svc.views = func(conn *gorm.DB) profileReader { return users.NewProfileRepository(conn) }
	}
	return svc, nil
}

func (s *service) Synchronize(ctx context.Context, identityID uuid.UUID, fields ProfileFields) (synced *SyncedProfile, err error) {
	started := time.Now()
	defer func() {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = string(pkgerrors.CodeOf(err))
		}
		s.metrics.Observe(metrics.WorkflowProfileSync, outcome, time.Since(started))
	}()

	if fields == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile fields are required")
	}
	fullName := strings.TrimSpace(fields.fullName())
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name is required").
			WithDetails(map[string]any{"full_name": "is required"})
	}
	if identityID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identity id is required")
	}

	err = s.store.WithTx(ctx, func(tx *gorm.DB) error {
		identity := s.identity(tx)

		rows, err := identity.UpdateFullName(ctx, identityID, fullName)
		if err != nil {
			return users.TranslateStoreError(err, "update identity")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}

		user, err := identity.FindByID(ctx, identityID)
		if err != nil {
			return users.TranslateStoreError(err, "load identity")
		}
		if user.Role != fields.Role() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("user is a %s, not a %s", user.Role, fields.Role())).
				WithDetails(map[string]any{"role": user.Role.String()})
		}

		return s.upsertProfile(ctx, s.profiles(tx), identityID, fields)
	})
	if err != nil {
		return nil, users.TranslateStoreError(err, "commit profile sync")
	}

	return s.readBack(ctx, identityID, fields)
}

func (s *service) upsertProfile(ctx context.Context, repo profileWriter, identityID uuid.UUID, fields ProfileFields) error {
	switch f := fields.(type) {
	case StudentFields:
		row := &models.Student{UserID: identityID, GroupName: blankToNil(f.GroupName), Phone: blankToNil(f.Phone)}
		rows, err := repo.UpdateStudent(ctx, row)
		if err != nil {
			return users.TranslateStoreError(err, "update student profile")
		}
		if rows == 0 {
			if err := repo.InsertStudent(ctx, row); err != nil {
				return users.TranslateStoreError(err, "insert student profile")
			}
		}
		return nil
	case TeacherFields:
		row := &models.Teacher{UserID: identityID, Department: blankToNil(f.Department), Position: blankToNil(f.Position)}
		rows, err := repo.UpdateTeacher(ctx, row)
		if err != nil {
			return users.TranslateStoreError(err, "update teacher profile")
		}
		if rows == 0 {
			if err := repo.InsertTeacher(ctx, row); err != nil {
				return users.TranslateStoreError(err, "insert teacher profile")
			}
		}
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported profile kind")
	}
}

func (s *service) readBack(ctx context.Context, identityID uuid.UUID, fields ProfileFields) (*SyncedProfile, error) {
	views := s.views(s.store.DB())
	out := &SyncedProfile{Role: fields.Role()}
	switch fields.(type) {
	case StudentFields:
		view, err := views.StudentView(ctx, identityID)
		if err != nil {
			return nil, users.TranslateStoreError(err, "read student profile")
		}
		out.Student = view
	case TeacherFields:
		view, err := views.TeacherView(ctx, identityID)
		if err != nil {
			return nil, users.TranslateStoreError(err, "read teacher profile")
		}
		out.Teacher = view
	}
	return out, nil
}
