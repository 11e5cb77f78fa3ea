package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/repo"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes identity persistence operations. Bind it to a
// transaction handle to take part in a unit of work.
type Repository struct {
	repo.Base
}

// NewRepository constructs an identity repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new identity and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByLogin retrieves the identity matching login. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByLogin reports whether an identity already uses login.
func (r *Repository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID loads an identity by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFullName overwrites full_name and reports how many rows matched.
// Role and credentials are never touched here.
func (r *Repository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (int64, error) {
	res := r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("full_name", fullName)
	return res.RowsAffected, res.Error
}
