package distributions

import (
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

const dateOnlyLayout = "2006-01-02"

// CreateDistributionInput is the payload accepted by POST /user/distributions.
// Deadline is RFC3339 or a bare YYYY-MM-DD date.
type CreateDistributionInput struct {
	Discipline string    `json:"discipline" validate:"required"`
	GroupName  string    `json:"group_name" validate:"required"`
	TeacherID  uuid.UUID `json:"teacher_id" validate:"required"`
	Type       string    `json:"type" validate:"required"`
	Deadline   string    `json:"deadline" validate:"required"`
}

// UpdateStatusInput is the payload of PATCH /user/distributions/{id}/status.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// DistributionDTO is a distribution joined with the teacher's name.
type DistributionDTO struct {
	ID          uuid.UUID                `json:"id" gorm:"column:id"`
	Discipline  string                   `json:"discipline" gorm:"column:discipline"`
	GroupName   string                   `json:"group_name" gorm:"column:group_name"`
	TeacherID   uuid.UUID                `json:"teacher_id" gorm:"column:teacher_id"`
	TeacherName *string                  `json:"teacher_name,omitempty" gorm:"column:teacher_name"`
	Type        string                   `json:"type" gorm:"column:type"`
	Deadline    time.Time                `json:"deadline" gorm:"column:deadline"`
	Status      enums.DistributionStatus `json:"status" gorm:"column:status"`
	CreatedAt   time.Time                `json:"created_at" gorm:"column:created_at"`
}

func fromModel(m *models.Distribution) *DistributionDTO {
	return &DistributionDTO{
		ID:         m.ID,
		Discipline: m.Discipline,
		GroupName:  m.GroupName,
		TeacherID:  m.TeacherID,
		Type:       m.Type,
		Deadline:   m.Deadline,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}
