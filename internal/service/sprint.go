package service

import (
	"context"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// Sprints implements sprint CRUD, numbering and reordering.
type Sprints struct {
	sprints  domain.SprintRepository
	projects domain.ProjectRepository
	tasks    domain.TaskRepository
	reports  domain.ReportRepository
}

func NewSprints(sprints domain.SprintRepository, projects domain.ProjectRepository, tasks domain.TaskRepository, reports domain.ReportRepository) *Sprints {
	return &Sprints{sprints: sprints, projects: projects, tasks: tasks, reports: reports}
}

func (s *Sprints) Create(ctx context.Context, in domain.CreateSprintInput) (*domain.Sprint, error) {
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}
	if err := validateSprintDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.SprintPlanned
	}
	if !status.Valid() {
		return nil, domain.Validation("invalid sprint status", domain.FieldError{
			Field:   "status",
			Message: "must be one of planned, active, completed",
		})
	}

	// max+1 per project, starting at 1. Read-then-write; the unique
	// (project, sprintNumber) index backstops concurrent creations.
	max, err := s.sprints.MaxSprintNumber(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	sprint := &domain.Sprint{
		Title:        in.Title,
		SprintNumber: max + 1,
		ProjectID:    in.ProjectID,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       status,
		Order:        max + 1,
	}
	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, err
	}
	return s.sprints.GetByID(ctx, sprint.ID)
}

func (s *Sprints) GetByID(ctx context.Context, id uint) (*domain.Sprint, error) {
	return s.sprints.GetByID(ctx, id)
}

func (s *Sprints) ListByProject(ctx context.Context, projectID uint) ([]domain.Sprint, error) {
	return s.sprints.ListByProject(ctx, projectID)
}

func (s *Sprints) Active(ctx context.Context, projectID uint) (*domain.Sprint, error) {
	return s.sprints.ActiveByProject(ctx, projectID)
}

func (s *Sprints) Update(ctx context.Context, id uint, in domain.UpdateSprintInput) (*domain.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		sprint.Title = *in.Title
	}
	if in.Description != nil {
		sprint.Description = *in.Description
	}
	if in.StartDate != nil {
		sprint.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		sprint.EndDate = *in.EndDate
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.Validation("invalid sprint status", domain.FieldError{
				Field:   "status",
				Message: "must be one of planned, active, completed",
			})
		}
		sprint.Status = *in.Status
	}

	if err := validateSprintDates(sprint.StartDate, sprint.EndDate); err != nil {
		return nil, err
	}

	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, err
	}
	return s.sprints.GetByID(ctx, id)
}

func (s *Sprints) Delete(ctx context.Context, id uint) error {
	sprint, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.tasks.CountBySprint(ctx, sprint.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.BadRequest("cannot delete sprint with existing tasks, move or delete tasks first")
	}

	return s.sprints.Delete(ctx, id)
}

func (s *Sprints) Reorder(ctx context.Context, projectID uint, orders []domain.SprintOrder) ([]domain.Sprint, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := s.sprints.SetOrder(ctx, projectID, o.SprintID, o.Order); err != nil {
			return nil, err
		}
	}
	return s.sprints.ListByProject(ctx, projectID)
}

func (s *Sprints) Stats(ctx context.Context, id uint) (*domain.SprintReport, error) {
	sprint, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taskStats, err := s.reports.SprintTaskStats(ctx, id)
	if err != nil {
		return nil, err
	}

	report := &domain.SprintReport{Sprint: sprint}
	report.Stats.TotalTasks = taskStats.Total
	report.Stats.CompletedTasks = taskStats.Completed
	report.Stats.InProgressTasks = taskStats.InProgress
	report.Stats.TodoTasks = taskStats.Todo
	report.Stats.Progress = percent(taskStats.Completed, taskStats.Total)
	return report, nil
}
