package service

import (
	"context"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// Reports assembles the read-only rollup payloads.
type Reports struct {
	reports  domain.ReportRepository
	users    domain.UserRepository
	projects domain.ProjectRepository
}

func NewReports(reports domain.ReportRepository, users domain.UserRepository, projects domain.ProjectRepository) *Reports {
	return &Reports{reports: reports, users: users, projects: projects}
}

func (s *Reports) Dashboard(ctx context.Context) (*domain.DashboardReport, error) {
	overview, err := s.reports.Overview(ctx)
	if err != nil {
		return nil, err
	}
	projectsByStatus, err := s.reports.ProjectsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	tasksByStatus, err := s.reports.TasksByStatus(ctx)
	if err != nil {
		return nil, err
	}
	tasksByPriority, err := s.reports.TasksByPriority(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.reports.RecentProjects(ctx, 5)
	if err != nil {
		return nil, err
	}
	deadlines, err := s.reports.UpcomingDeadlines(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardReport{
		Overview:          overview,
		ProjectsByStatus:  projectsByStatus,
		TasksByStatus:     tasksByStatus,
		TasksByPriority:   tasksByPriority,
		RecentProjects:    recent,
		UpcomingDeadlines: deadlines,
	}, nil
}

func (s *Reports) MyReport(ctx context.Context, userID uint) (*domain.MyReport, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.reports.UserTaskStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	byProject, err := s.reports.UserTasksByProject(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.MyReport{
		User:           user,
		Stats:          stats,
		TasksByProject: byProject,
	}, nil
}

func (s *Reports) ProjectReport(ctx context.Context, projectID uint) (*domain.ProjectReport, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	taskStats, err := s.reports.ProjectTaskStats(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sprintStats, err := s.reports.ProjectSprintStats(ctx, projectID)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.reports.ProjectTasksByPriority(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &domain.ProjectReport{
		Project: project,
		Stats: domain.ProjectReportStats{
			TotalTasks:       taskStats.Total,
			CompletedTasks:   taskStats.Completed,
			InProgressTasks:  taskStats.InProgress,
			TodoTasks:        taskStats.Todo,
			ReviewTasks:      taskStats.Review,
			Progress:         percent(taskStats.Completed, taskStats.Total),
			TotalSprints:     sprintStats.Total,
			CompletedSprints: sprintStats.Completed,
			EstimatedHours:   taskStats.EstimatedHours,
			LoggedHours:      taskStats.LoggedHours,
			TeamSize:         len(project.TeamMembers),
		},
		TasksByPriority: byPriority,
	}, nil
}
