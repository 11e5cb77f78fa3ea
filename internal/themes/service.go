package themes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
)

type themeRepository interface {
	Create(ctx context.Context, theme *models.Theme) error
	List(ctx context.Context) ([]ThemeDTO, error)
}

// Service exposes theme creation and the theme catalogue.
type Service interface {
	Create(ctx context.Context, creatorID uuid.UUID, input CreateThemeInput) (*ThemeDTO, error)
	List(ctx context.Context) ([]ThemeDTO, error)
}

type service struct {
	repo themeRepository
}

func NewService(repo themeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("theme repository required")
	}
	return &service{repo: repo}, nil
}

// Create stores a new available theme owned by creatorID.
func (s *service) Create(ctx context.Context, creatorID uuid.UUID, input CreateThemeInput) (*ThemeDTO, error) {
	if creatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller identity is required")
	}

	theme, err := buildTheme(creatorID, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, theme); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "supervisor or creator does not exist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "create theme")
	}
	return fromModel(theme), nil
}

func (s *service) List(ctx context.Context) ([]ThemeDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "list themes")
	}
	return rows, nil
}

func buildTheme(creatorID uuid.UUID, input CreateThemeInput) (*models.Theme, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationError("title", "is required")
	}
	themeType, err := enums.ParseThemeType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, validationError("type", err.Error())
	}
	source, err := enums.ParseThemeSource(strings.TrimSpace(input.Source))
	if err != nil {
		return nil, validationError("source", err.Error())
	}

	priority := MinPriority
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority < MinPriority || priority > MaxPriority {
		return nil, validationError("priority", fmt.Sprintf("must be between %d and %d", MinPriority, MaxPriority))
	}

	var description *string
	if input.Description != nil {
		if trimmed := strings.TrimSpace(*input.Description); trimmed != "" {
			description = &trimmed
		}
	}

	supervisor := input.SupervisorID
	if supervisor != nil && *supervisor == uuid.Nil {
		supervisor = nil
	}

	return &models.Theme{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		Type:         themeType,
		Source:       source,
		Status:       enums.ThemeStatusAvailable,
		SupervisorID: supervisor,
		CreatedBy:    creatorID,
		Priority:     priority,
	}, nil
}

func validationError(field, reason string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", field)).
		WithDetails(map[string]any{field: reason})
}
