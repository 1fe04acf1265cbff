package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("TeamMembers").
		Preload("Managers")
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return writeErr(r.db.WithContext(ctx).Create(project).Error, "project slug already exists")
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*domain.Project, error) {
	var project domain.Project
	if err := r.preload(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err, "project not found")
	}
	return &project, nil
}

func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	var project domain.Project
	if err := r.preload(ctx).Where("slug = ?", slug).First(&project).Error; err != nil {
		return nil, notFound(err, "project not found")
	}
	return &project, nil
}

func (r *ProjectRepository) applyFilter(q *gorm.DB, filter domain.ProjectFilter) *gorm.DB {
	if filter.Search != "" {
		pat := searchPattern(filter.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(client) LIKE ? OR LOWER(description) LIKE ?", pat, pat, pat)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Client != "" {
		q = q.Where("LOWER(client) LIKE ?", searchPattern(filter.Client))
	}
	if filter.StartDateFrom != nil {
		q = q.Where("start_date >= ?", *filter.StartDateFrom)
	}
	if filter.StartDateTo != nil {
		q = q.Where("start_date <= ?", *filter.StartDateTo)
	}
	return q
}

func (r *ProjectRepository) List(ctx context.Context, filter domain.ProjectFilter, page pagination.Params) ([]domain.Project, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Project{}), filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []domain.Project
	err := q.Scopes(page.Scope()).
		Preload("CreatedBy").
		Preload("TeamMembers").
		Preload("Managers").
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID uint, filter domain.ProjectFilter, page pagination.Params) ([]domain.Project, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Project{}), filter).
		Where(`projects.created_by_id = ?
			OR projects.id IN (SELECT project_id FROM project_members WHERE user_id = ?)
			OR projects.id IN (SELECT project_id FROM project_managers WHERE user_id = ?)`,
			userID, userID, userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []domain.Project
	err := q.Scopes(page.Scope()).
		Preload("CreatedBy").
		Preload("Managers").
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return writeErr(r.db.WithContext(ctx).
		Omit("TeamMembers", "Managers", "CreatedBy").
		Save(project).Error, "project slug already exists")
}

// Delete removes the project and cascades to its sprints and tasks.
// Comments on those tasks are intentionally left in place.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project domain.Project
		if err := tx.First(&project, id).Error; err != nil {
			return notFound(err, "project not found")
		}

		if err := tx.Exec("DELETE FROM subtasks WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&domain.Sprint{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_managers WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

func (r *ProjectRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Project{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectRepository) AddMembers(ctx context.Context, projectID uint, users []domain.User) error {
	project := domain.Project{ID: projectID}
	return r.db.WithContext(ctx).
		Model(&project).
		Association("TeamMembers").
		Append(toInterfaces(users)...)
}

func (r *ProjectRepository) RemoveMembers(ctx context.Context, projectID uint, userIDs []uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM project_members WHERE project_id = ? AND user_id IN ?", projectID, userIDs).Error
}

func toInterfaces(users []domain.User) []any {
	out := make([]any, len(users))
	for i := range users {
		out[i] = &users[i]
	}
	return out
}
