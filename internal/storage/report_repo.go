package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// ReportRepository holds the read-only rollup queries. Grouping results
// come back as status->count maps keyed by the enum's string value.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Overview(ctx context.Context) (domain.Overview, error) {
	var o domain.Overview
	db := r.db.WithContext(ctx)

	if err := db.Model(&domain.Project{}).Count(&o.TotalProjects).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Project{}).Where("status = ?", domain.ProjectActive).Count(&o.ActiveProjects).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Task{}).Count(&o.TotalTasks).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Task{}).Where("status = ?", domain.TaskDone).Count(&o.CompletedTasks).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.User{}).Where("is_active = ?", true).Count(&o.TotalUsers).Error; err != nil {
		return o, err
	}
	if err := db.Model(&domain.Task{}).Select("COALESCE(SUM(time_logged), 0)").Scan(&o.HoursLogged).Error; err != nil {
		return o, err
	}
	return o, nil
}

type statusCount struct {
	Key   string
	Count int64
}

func (r *ReportRepository) groupCount(ctx context.Context, model any, column string) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(model).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (r *ReportRepository) ProjectsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, &domain.Project{}, "status")
}

func (r *ReportRepository) TasksByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, &domain.Task{}, "status")
}

func (r *ReportRepository) TasksByPriority(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, &domain.Task{}, "priority")
}

func (r *ReportRepository) ProjectTasksByPriority(ctx context.Context, projectID uint) (map[string]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("priority AS key, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (r *ReportRepository) RecentProjects(ctx context.Context, limit int) ([]domain.ProjectSummary, error) {
	var summaries []domain.ProjectSummary
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Select("id, title, status").
		Order("created_at DESC").
		Limit(limit).
		Scan(&summaries).Error
	return summaries, err
}

func (r *ReportRepository) UpcomingDeadlines(ctx context.Context, limit int) ([]domain.Task, error) {
	now := time.Now()
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date <= ? AND status <> ?",
			now, now.Add(domain.DeadlineWindow), domain.TaskDone).
		Order("due_date").
		Limit(limit).
		Preload("Project").
		Find(&tasks).Error
	return tasks, err
}

func (r *ReportRepository) ProjectTaskStats(ctx context.Context, projectID uint) (domain.TaskStats, error) {
	var stats domain.TaskStats
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END) AS in_progress,
			SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END) AS todo,
			SUM(CASE WHEN status = 'review' THEN 1 ELSE 0 END) AS review,
			COALESCE(SUM(estimate), 0) AS estimated_hours,
			COALESCE(SUM(time_logged), 0) AS logged_hours`).
		Where("project_id = ?", projectID).
		Scan(&stats).Error
	return stats, err
}

func (r *ReportRepository) ProjectSprintStats(ctx context.Context, projectID uint) (domain.SprintStats, error) {
	var stats domain.SprintStats
	err := r.db.WithContext(ctx).
		Model(&domain.Sprint{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END) AS active,
			SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed`).
		Where("project_id = ?", projectID).
		Scan(&stats).Error
	return stats, err
}

func (r *ReportRepository) SprintTaskStats(ctx context.Context, sprintID uint) (domain.TaskStats, error) {
	var stats domain.TaskStats
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END) AS in_progress,
			SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END) AS todo,
			SUM(CASE WHEN status = 'review' THEN 1 ELSE 0 END) AS review,
			COALESCE(SUM(estimate), 0) AS estimated_hours,
			COALESCE(SUM(time_logged), 0) AS logged_hours`).
		Where("sprint_id = ?", sprintID).
		Scan(&stats).Error
	return stats, err
}

func (r *ReportRepository) UserTaskStats(ctx context.Context, userID uint) (domain.UserTaskStats, error) {
	var row struct {
		Assigned    int64
		Completed   int64
		InProgress  int64
		HoursLogged float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select(`COUNT(*) AS assigned,
			SUM(CASE WHEN tasks.status = 'done' THEN 1 ELSE 0 END) AS completed,
			SUM(CASE WHEN tasks.status = 'in_progress' THEN 1 ELSE 0 END) AS in_progress,
			COALESCE(SUM(tasks.time_logged), 0) AS hours_logged`).
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return domain.UserTaskStats{}, err
	}

	stats := domain.UserTaskStats{
		AssignedTasks:   row.Assigned,
		CompletedTasks:  row.Completed,
		InProgressTasks: row.InProgress,
		HoursLogged:     row.HoursLogged,
	}
	if row.Assigned > 0 {
		stats.CompletionRate = int(float64(row.Completed)/float64(row.Assigned)*100 + 0.5)
	}
	return stats, nil
}

func (r *ReportRepository) UserTasksByProject(ctx context.Context, userID uint) ([]domain.ProjectTaskBreakdown, error) {
	var rows []domain.ProjectTaskBreakdown
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select(`tasks.project_id AS project_id,
			projects.title AS project_title,
			COUNT(*) AS task_count,
			SUM(CASE WHEN tasks.status = 'done' THEN 1 ELSE 0 END) AS completed_count`).
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("task_assignees.user_id = ?", userID).
		Group("tasks.project_id, projects.title").
		Scan(&rows).Error
	return rows, err
}
