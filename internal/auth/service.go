package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/metrics"
	"github.com/topicdesk/topicdesk-backend/pkg/security"
)

// Service verifies credentials. It never mutates state.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type userRepository interface {
	FindByLogin(ctx context.Context, login string) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo        userRepository
	Hasher          security.Hasher
	WorkflowMetrics *metrics.WorkflowMetrics
}

type service struct {
	users   userRepository
	hasher  security.Hasher
	metrics *metrics.WorkflowMetrics
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	return &service{
		users:   params.UserRepo,
		hasher:  params.Hasher,
		metrics: params.WorkflowMetrics,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (resp *LoginResponse, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.WorkflowLogin, outcomeOf(err), time.Since(started)) }()

	login := strings.TrimSpace(req.Login)
	if login == "" || strings.TrimSpace(req.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "login and password are required")
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such user")
		}
		return nil, users.TranslateStoreError(err, "find identity")
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "wrong password")
	}

	return &LoginResponse{User: users.FromModel(user)}, nil
}
