package themes

import (
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

const (
	MinPriority = 0
	MaxPriority = 3
)

// CreateThemeInput is the payload accepted by POST /user/themes.
type CreateThemeInput struct {
	Title        string     `json:"title" validate:"required"`
	Description  *string    `json:"description"`
	Type         string     `json:"type" validate:"required"`
	Source       string     `json:"source" validate:"required"`
	SupervisorID *uuid.UUID `json:"supervisor_id"`
	Priority     *int       `json:"priority"`
}

// ThemeDTO is a theme joined with its supervisor's name.
type ThemeDTO struct {
	ID             uuid.UUID         `json:"id" gorm:"column:id"`
	Title          string            `json:"title" gorm:"column:title"`
	Description    *string           `json:"description" gorm:"column:description"`
	Type           enums.ThemeType   `json:"type" gorm:"column:type"`
	Source         enums.ThemeSource `json:"source" gorm:"column:source"`
	Status         enums.ThemeStatus `json:"status" gorm:"column:status"`
	SupervisorID   *uuid.UUID        `json:"supervisor_id" gorm:"column:supervisor_id"`
	SupervisorName *string           `json:"supervisor_name" gorm:"column:supervisor_name"`
	CreatedBy      uuid.UUID         `json:"created_by" gorm:"column:created_by"`
	Priority       int               `json:"priority" gorm:"column:priority"`
	CreatedAt      time.Time         `json:"created_at" gorm:"column:created_at"`
}

func fromModel(m *models.Theme) *ThemeDTO {
	return &ThemeDTO{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Type:         m.Type,
		Source:       m.Source,
		Status:       m.Status,
		SupervisorID: m.SupervisorID,
		CreatedBy:    m.CreatedBy,
		Priority:     m.Priority,
		CreatedAt:    m.CreatedAt,
	}
}
