package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

type SprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

func (r *SprintRepository) Create(ctx context.Context, sprint *domain.Sprint) error {
	return writeErr(r.db.WithContext(ctx).Create(sprint).Error, "sprint number already taken for this project")
}

func (r *SprintRepository) GetByID(ctx context.Context, id uint) (*domain.Sprint, error) {
	var sprint domain.Sprint
	if err := r.db.WithContext(ctx).Preload("Project").First(&sprint, id).Error; err != nil {
		return nil, notFound(err, "sprint not found")
	}
	return &sprint, nil
}

func (r *SprintRepository) ListByProject(ctx context.Context, projectID uint) ([]domain.Sprint, error) {
	var sprints []domain.Sprint
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("display_order").
		Preload("Project").
		Find(&sprints).Error
	return sprints, err
}

func (r *SprintRepository) ActiveByProject(ctx context.Context, projectID uint) (*domain.Sprint, error) {
	var sprint domain.Sprint
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, domain.SprintActive).
		Preload("Project").
		First(&sprint).Error
	if err != nil {
		return nil, notFound(err, "no active sprint for this project")
	}
	return &sprint, nil
}

func (r *SprintRepository) MaxSprintNumber(ctx context.Context, projectID uint) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&domain.Sprint{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(sprint_number), 0)").
		Scan(&max).Error
	return max, err
}

func (r *SprintRepository) Update(ctx context.Context, sprint *domain.Sprint) error {
	return writeErr(r.db.WithContext(ctx).Omit("Project").Save(sprint).Error,
		"sprint number already taken for this project")
}

func (r *SprintRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Sprint{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("sprint not found")
	}
	return nil
}

func (r *SprintRepository) SetOrder(ctx context.Context, projectID, sprintID uint, order int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Sprint{}).
		Where("id = ? AND project_id = ?", sprintID, projectID).
		Update("display_order", order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("sprint not found")
	}
	return nil
}
