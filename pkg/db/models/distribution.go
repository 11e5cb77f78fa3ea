package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

// Distribution assigns a discipline's topics to a student group under a teacher.
type Distribution struct {
	ID         uuid.UUID                `gorm:"type:uuid;primaryKey"`
	Discipline string                   `gorm:"column:discipline;not null"`
	GroupName  string                   `gorm:"column:group_name;not null"`
	TeacherID  uuid.UUID                `gorm:"column:teacher_id;type:uuid;not null"`
	Type       string                   `gorm:"column:type;not null"`
	Deadline   time.Time                `gorm:"column:deadline;not null"`
	Status     enums.DistributionStatus `gorm:"column:status;not null"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
}

func (Distribution) TableName() string { return "distributions" }
