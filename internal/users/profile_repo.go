package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/repo"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	"gorm.io/gorm"
)

// ProfileRepository persists the role-specific profile rows.
type ProfileRepository struct {
	repo.Base
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{Base: repo.NewBase(db)}
}

// CreateEmpty inserts the empty profile row that matches role.
func (r *ProfileRepository) CreateEmpty(ctx context.Context, userID uuid.UUID, role enums.Role) error {
	switch role {
	case enums.RoleStudent:
		return r.InsertStudent(ctx, &models.Student{UserID: userID})
	case enums.RoleTeacher:
		return r.InsertTeacher(ctx, &models.Teacher{UserID: userID})
	default:
		return fmt.Errorf("no profile table for role %q", role)
	}
}

// UpdateStudent overwrites both student columns, nil clears a column.
func (r *ProfileRepository) UpdateStudent(ctx context.Context, s *models.Student) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Student{}).
		Where("user_id = ?", s.UserID).
		UpdateColumns(map[string]any{
			"group_name": s.GroupName,
			"phone":      s.Phone,
		})
	return res.RowsAffected, res.Error
}

func (r *ProfileRepository) InsertStudent(ctx context.Context, s *models.Student) error {
	return r.DB(ctx).Create(s).Error
}

// UpdateTeacher overwrites both teacher columns, nil clears a column.
func (r *ProfileRepository) UpdateTeacher(ctx context.Context, t *models.Teacher) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Teacher{}).
		Where("user_id = ?", t.UserID).
		UpdateColumns(map[string]any{
			"department": t.Department,
			"position":   t.Position,
		})
	return res.RowsAffected, res.Error
}

func (r *ProfileRepository) InsertTeacher(ctx context.Context, t *models.Teacher) error {
	return r.DB(ctx).Create(t).Error
}

// StudentView reads the identity left-joined with its student row.
func (r *ProfileRepository) StudentView(ctx context.Context, userID uuid.UUID) (*StudentView, error) {
	var view StudentView
	res := r.DB(ctx).
		Table("users AS u").
		Select("u.id AS user_id, u.full_name, u.login, u.created_at, s.group_name, s.phone").
		Joins("LEFT JOIN students s ON s.user_id = u.id").
		Where("u.id = ?", userID).
		Limit(1).
		Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &view, nil
}

// TeacherView reads the identity left-joined with its teacher row.
func (r *ProfileRepository) TeacherView(ctx context.Context, userID uuid.UUID) (*TeacherView, error) {
	var view TeacherView
	res := r.DB(ctx).
		Table("users AS u").
		Select("u.id AS user_id, u.full_name, u.login, u.created_at, t.department, t.position").
		Joins("LEFT JOIN teachers t ON t.user_id = u.id").
		Where("u.id = ?", userID).
		Limit(1).
		Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &view, nil
}

// CountProfiles returns how many student and teacher rows reference userID.
func (r *ProfileRepository) CountProfiles(ctx context.Context, userID uuid.UUID) (students, teachers int64, err error) {
	if err = r.DB(ctx).Model(&models.Student{}).Where("user_id = ?", userID).Count(&students).Error; err != nil {
		return 0, 0, err
	}
	if err = r.DB(ctx).Model(&models.Teacher{}).Where("user_id = ?", userID).Count(&teachers).Error; err != nil {
		return 0, 0, err
	}
	return students, teachers, nil
}
