package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

// UserDTO is the transport shape of an identity. It never carries the hash.
type UserDTO struct {
	ID       uuid.UUID  `json:"id"`
	Login    string     `json:"login"`
	FullName string     `json:"full_name"`
	Role     enums.Role `json:"role"`
}

// CreateUserDTO holds the data required by the repo to persist a new identity.
type CreateUserDTO struct {
	Login        string
	PasswordHash string
	Role         enums.Role
	FullName     string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID,
		Login:    u.Login,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Login:        c.Login,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		FullName:     c.FullName,
	}
}

// StudentView is the joined identity + student profile row. Profile columns
// are nil when no student row exists.
type StudentView struct {
	UserID    uuid.UUID `json:"user_id" gorm:"column:user_id"`
	FullName  string    `json:"full_name" gorm:"column:full_name"`
	Login     string    `json:"login" gorm:"column:login"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	GroupName *string   `json:"group_name" gorm:"column:group_name"`
	Phone     *string   `json:"phone" gorm:"column:phone"`
}

// TeacherView is the joined identity + teacher profile row.
type TeacherView struct {
	UserID     uuid.UUID `json:"user_id" gorm:"column:user_id"`
	FullName   string    `json:"full_name" gorm:"column:full_name"`
	Login      string    `json:"login" gorm:"column:login"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	Department *string   `json:"department" gorm:"column:department"`
	Position   *string   `json:"position" gorm:"column:position"`
}

// TeacherListing is one row of the teacher directory.
type TeacherListing struct {
	ID         uuid.UUID `json:"id" gorm:"column:id"`
	Name       string    `json:"name" gorm:"column:name"`
	Department *string   `json:"department" gorm:"column:department"`
	Position   *string   `json:"position" gorm:"column:position"`
}
