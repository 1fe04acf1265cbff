package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Project").
		Preload("Sprint").
		Preload("Assignees").
		Preload("CreatedBy").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		})
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.preload(ctx).First(&task, id).Error; err != nil {
		return nil, notFound(err, "task not found")
	}
	return &task, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.preload(ctx).
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListBySprint(ctx context.Context, sprintID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.preload(ctx).
		Where("sprint_id = ?", sprintID).
		Order("created_at").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListAssigned(ctx context.Context, userID uint, filter domain.TaskFilter) ([]domain.Task, error) {
	q := r.preload(ctx).
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID)

	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		pat := searchPattern(filter.Search)
		q = q.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pat, pat)
	}

	var tasks []domain.Task
	err := q.Order("tasks.due_date, tasks.priority DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) CountBySprint(ctx context.Context, sprintID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("sprint_id = ?", sprintID).
		Count(&count).Error
	return count, err
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	// Associations are managed through dedicated methods; Save only the
	// task row itself. Select("*") keeps cleared pointer fields (sprint,
	// due date) writing NULL.
	return r.db.WithContext(ctx).
		Omit("Project", "Sprint", "Assignees", "CreatedBy", "ReviewedBy", "Subtasks").
		Select("*").
		Save(task).Error
}

func (r *TaskRepository) ReplaceAssignees(ctx context.Context, task *domain.Task, assignees []domain.User) error {
	if err := r.db.WithContext(ctx).Model(task).Association("Assignees").Clear(); err != nil {
		return err
	}
	if len(assignees) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(task).Association("Assignees").Append(toInterfaces(assignees)...)
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task domain.Task
		if err := tx.First(&task, id).Error; err != nil {
			return notFound(err, "task not found")
		}
		if err := tx.Where("task_id = ?", id).Delete(&domain.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

// --- Subtasks ---

func (r *TaskRepository) AddSubtask(ctx context.Context, subtask *domain.Subtask) error {
	return r.db.WithContext(ctx).Create(subtask).Error
}

func (r *TaskRepository) GetSubtask(ctx context.Context, taskID uint, subtaskID string) (*domain.Subtask, error) {
	var subtask domain.Subtask
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND id = ?", taskID, subtaskID).
		First(&subtask).Error
	if err != nil {
		return nil, notFound(err, "subtask not found")
	}
	return &subtask, nil
}

func (r *TaskRepository) UpdateSubtask(ctx context.Context, subtask *domain.Subtask) error {
	return r.db.WithContext(ctx).Select("*").Save(subtask).Error
}

func (r *TaskRepository) DeleteSubtask(ctx context.Context, taskID uint, subtaskID string) error {
	result := r.db.WithContext(ctx).
		Where("task_id = ? AND id = ?", taskID, subtaskID).
		Delete(&domain.Subtask{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("subtask not found")
	}
	return nil
}
