package distributions

import (
	"context"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/repo"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists topic distributions.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, d *models.Distribution) error {
	return r.DB(ctx).Create(d).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Distribution, error) {
	var d models.Distribution
	if err := r.DB(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all distributions, latest deadline first.
func (r *Repository) List(ctx context.Context) ([]DistributionDTO, error) {
	rows := []DistributionDTO{}
	err := r.DB(ctx).
		Table("distributions AS d").
		Select(`d.id, d.discipline, d.group_name, d.teacher_id, u.full_name AS teacher_name,
			d.type, d.deadline, d.status, d.created_at`).
		Joins("LEFT JOIN users u ON u.id = d.teacher_id").
		Order("d.deadline DESC").
		Order("d.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// UpdateStatus sets status and reports how many rows matched id.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.DistributionStatus) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Distribution{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return res.RowsAffected, res.Error
}
