package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/metrics"
	"github.com/topicdesk/topicdesk-backend/pkg/security"
	"gorm.io/gorm"
)

// RegisterService creates an identity and its empty role profile as one unit.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
}

type identityWriter interface {
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type profileCreator interface {
	CreateEmpty(ctx context.Context, userID uuid.UUID, role enums.Role) error
}

// RegisterServiceParams packages the dependencies for the registration flow.
// Repository factories default to the gorm-backed repositories.
type RegisterServiceParams struct {
	Tx              db.TxRunner
	Hasher          security.Hasher
	IdentityRepo    func(tx *gorm.DB) identityWriter
	ProfileRepo     func(tx *gorm.DB) profileCreator
	WorkflowMetrics *metrics.WorkflowMetrics
}

type registerService struct {
	tx       db.TxRunner
	hasher   security.Hasher
	identity func(tx *gorm.DB) identityWriter
	profiles func(tx *gorm.DB) profileCreator
	metrics  *metrics.WorkflowMetrics
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "password hasher required")
	}
	svc := &registerService{
		tx:       params.Tx,
		hasher:   params.Hasher,
		identity: params.IdentityRepo,
		profiles: params.ProfileRepo,
		metrics:  params.WorkflowMetrics,
	}
	if svc.identity == nil {
		svc.identity = func(tx *gorm.DB) identityWriter { return users.NewRepository(tx) }
	}
	if svc.profiles == nil {
		svc.profiles = func(tx *gorm.DB) profileCreator { return users.NewProfileRepository(tx) }
	}
	return svc, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (result *RegisterResult, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe(metrics.WorkflowRegister, outcomeOf(err), time.Since(started)) }()

	login := strings.TrimSpace(req.Login)
	fullName := strings.TrimSpace(req.FullName)
	if login == "" || fullName == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Role) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "login, password, role and full_name are required")
	}
	role, parseErr := enums.ParseRole(req.Role)
	if parseErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "role must be student or teacher").
			WithDetails(map[string]any{"role": "must be one of student, teacher"})
	}

	// hashing is slow; keep it outside the transaction
	passwordHash, hashErr := s.hasher.Hash(req.Password)
	if hashErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, hashErr, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		identity := s.identity(tx)

		exists, err := identity.ExistsByLogin(ctx, login)
		if err != nil {
			return users.TranslateStoreError(err, "check login")
		}
		if exists {
			return users.LoginTaken()
		}

		user, err := identity.Create(ctx, users.CreateUserDTO{
			Login:        login,
			PasswordHash: passwordHash,
			Role:         role,
			FullName:     fullName,
		})
		if err != nil {
			return users.TranslateStoreError(err, "insert identity")
		}

		if err := s.profiles(tx).CreateEmpty(ctx, user.ID, role); err != nil {
			return users.TranslateStoreError(err, "insert profile")
		}

		created = user
		return nil
	})
	if err != nil {
		return nil, users.TranslateStoreError(err, "commit registration")
	}

	return &RegisterResult{ID: created.ID}, nil
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	return string(pkgerrors.CodeOf(err))
}
