package users

import (
	"context"
	"fmt"

	"github.com/topicdesk/topicdesk-backend/internal/repo"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"gorm.io/gorm"
)

// DirectoryRepository runs the read-only listings over identities and profiles.
type DirectoryRepository struct {
	repo.Base
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{Base: repo.NewBase(db)}
}

// ListTeachers returns teacher identities that have a teacher row, by name.
func (r *DirectoryRepository) ListTeachers(ctx context.Context) ([]TeacherListing, error) {
	rows := []TeacherListing{}
	err := r.DB(ctx).
		Table("teachers AS t").
		Select("t.user_id AS id, u.full_name AS name, t.department, t.position").
		Joins("INNER JOIN users u ON u.id = t.user_id").
		Where("u.role = ?", enums.RoleTeacher).
		Order("u.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

// ListStudents returns student identities that have a student row, by name.
func (r *DirectoryRepository) ListStudents(ctx context.Context) ([]StudentView, error) {
	rows := []StudentView{}
	err := r.DB(ctx).
		Table("users AS u").
		Select("u.id AS user_id, u.full_name, u.login, u.created_at, s.group_name, s.phone").
		Joins("INNER JOIN students s ON s.user_id = u.id").
		Where("u.role = ?", enums.RoleStudent).
		Order("u.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

type directoryRepository interface {
	ListTeachers(ctx context.Context) ([]TeacherListing, error)
	ListStudents(ctx context.Context) ([]StudentView, error)
}

// DirectoryService exposes the teacher and student listings.
type DirectoryService interface {
	Teachers(ctx context.Context) ([]TeacherListing, error)
	Students(ctx context.Context) ([]StudentView, error)
}

type directoryService struct {
	repo directoryRepository
}

func NewDirectoryService(repo directoryRepository) (DirectoryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("directory repository required")
	}
	return &directoryService{repo: repo}, nil
}

func (s *directoryService) Teachers(ctx context.Context) ([]TeacherListing, error) {
	rows, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "list teachers")
	}
	return rows, nil
}

// Students fails with NOT_FOUND when the directory is empty.
func (s *directoryService) Students(ctx context.Context) ([]StudentView, error) {
	rows, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "list students")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no students found")
	}
	return rows, nil
}
