package themes

import (
	"context"

	"github.com/topicdesk/topicdesk-backend/internal/repo"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists themes.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, theme *models.Theme) error {
	return r.DB(ctx).Create(theme).Error
}

// List returns every theme with the supervisor's full name, newest first.
func (r *Repository) List(ctx context.Context) ([]ThemeDTO, error) {
	rows := []ThemeDTO{}
	err := r.DB(ctx).
		Table("themes AS th").
		Select(`th.id, th.title, th.description, th.type, th.source, th.status,
			th.supervisor_id, u.full_name AS supervisor_name, th.created_by,
			th.priority, th.created_at`).
		Joins("LEFT JOIN teachers t ON t.user_id = th.supervisor_id").
		Joins("LEFT JOIN users u ON u.id = t.user_id").
		Order("th.created_at DESC").
		Order("th.id ASC").
		Scan(&rows).Error
	return rows, err
}
