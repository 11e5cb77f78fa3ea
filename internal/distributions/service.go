package distributions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
)

type distributionRepository interface {
	Create(ctx context.Context, d *models.Distribution) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Distribution, error)
	List(ctx context.Context) ([]DistributionDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DistributionStatus) (int64, error)
}

// Service manages topic distributions.
type Service interface {
	List(ctx context.Context) ([]DistributionDTO, error)
	Create(ctx context.Context, input CreateDistributionInput) (*DistributionDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*DistributionDTO, error)
}

type service struct {
	repo distributionRepository
}

func NewService(repo distributionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("distribution repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]DistributionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "list distributions")
	}
	return rows, nil
}

// Create stores an active distribution.
func (s *service) Create(ctx context.Context, input CreateDistributionInput) (*DistributionDTO, error) {
	model := &models.Distribution{
		ID:         uuid.New(),
		Discipline: strings.TrimSpace(input.Discipline),
		GroupName:  strings.TrimSpace(input.GroupName),
		TeacherID:  input.TeacherID,
		Type:       strings.TrimSpace(input.Type),
		Status:     enums.DistributionStatusActive,
	}

	missing := map[string]any{}
	if model.Discipline == "" {
		missing["discipline"] = "is required"
	}
	if model.GroupName == "" {
		missing["group_name"] = "is required"
	}
	if model.TeacherID == uuid.Nil {
		missing["teacher_id"] = "is required"
	}
	if model.Type == "" {
		missing["type"] = "is required"
	}
	if strings.TrimSpace(input.Deadline) == "" {
		missing["deadline"] = "is required"
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").WithDetails(missing)
	}

	deadline, err := ParseDeadline(input.Deadline)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deadline").
			WithDetails(map[string]any{"deadline": "expected RFC3339 or YYYY-MM-DD"})
	}
	model.Deadline = deadline

	if err := s.repo.Create(ctx, model); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "teacher does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "create distribution")
	}
	return fromModel(model), nil
}

// UpdateStatus moves a distribution between active and closed.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*DistributionDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distribution id is required")
	}
	parsed, err := enums.ParseDistributionStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
			WithDetails(map[string]any{"status": "must be active or closed"})
	}

	rows, err := s.repo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "update distribution status")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "distribution not found")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "distribution not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "load distribution")
	}
	return fromModel(updated), nil
}

// ParseDeadline accepts RFC3339 timestamps and bare dates. Dates resolve to
// midnight UTC.
func ParseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse deadline %q: %w", raw, err)
	}
	return t, nil
}
