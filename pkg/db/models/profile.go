package models

import "github.com/google/uuid"

// Student is the role profile of a student identity.
type Student struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	GroupName *string   `gorm:"column:group_name"`
	Phone     *string   `gorm:"column:phone"`
}

func (Student) TableName() string { return "students" }

// Teacher is the role profile of a teacher identity.
type Teacher struct {
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Department *string   `gorm:"column:department"`
	Position   *string   `gorm:"column:position"`
}

func (Teacher) TableName() string { return "teachers" }
