package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

// Theme is a proposed thesis or coursework topic.
type Theme struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Title        string            `gorm:"column:title;not null"`
	Description  *string           `gorm:"column:description"`
	Type         enums.ThemeType   `gorm:"column:type;not null"`
	Source       enums.ThemeSource `gorm:"column:source;not null"`
	Status       enums.ThemeStatus `gorm:"column:status;not null"`
	SupervisorID *uuid.UUID        `gorm:"column:supervisor_id;type:uuid"`
	CreatedBy    uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	Priority     int               `gorm:"column:priority;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (Theme) TableName() string { return "themes" }
