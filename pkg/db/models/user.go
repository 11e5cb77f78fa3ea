package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

// User is the identity row. PasswordHash never leaves the store layer.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Login        string     `gorm:"column:login;type:text;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.Role `gorm:"column:role;not null"`
	FullName     string     `gorm:"column:full_name;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }
