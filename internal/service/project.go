package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gosimple/slug"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

// Projects implements project CRUD, slug assignment and team management.
type Projects struct {
	projects domain.ProjectRepository
	users    domain.UserRepository
	reports  domain.ReportRepository
}

func NewProjects(projects domain.ProjectRepository, users domain.UserRepository, reports domain.ReportRepository) *Projects {
	return &Projects{projects: projects, users: users, reports: reports}
}

func (s *Projects) Create(ctx context.Context, in domain.CreateProjectInput, creatorID uint) (*domain.Project, error) {
	if err := validateProjectDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.ProjectPlanned
	}
	if !status.Valid() {
		return nil, domain.Validation("invalid project status", domain.FieldError{
			Field:   "status",
			Message: "must be one of planned, active, completed, archived",
		})
	}

	members, err := s.loadUsers(ctx, in.TeamMemberIDs)
	if err != nil {
		return nil, err
	}
	managers, err := s.loadUsers(ctx, in.ManagerIDs)
	if err != nil {
		return nil, err
	}

	projectSlug, err := s.uniqueSlug(ctx, in.Title, 0)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Title:       in.Title,
		Slug:        projectSlug,
		Client:      in.Client,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
		Status:      status,
		CreatedByID: creatorID,
		TeamMembers: members,
		Managers:    managers,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, project.ID)
}

// GetByIDOrSlug resolves a numeric value as an id and anything else as a
// slug.
func (s *Projects) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*domain.Project, error) {
	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		return s.projects.GetByID(ctx, uint(id))
	}
	return s.projects.GetBySlug(ctx, idOrSlug)
}

func (s *Projects) List(ctx context.Context, filter domain.ProjectFilter, page pagination.Params) ([]domain.Project, int64, error) {
	return s.projects.List(ctx, filter, page)
}

func (s *Projects) ListMine(ctx context.Context, userID uint, filter domain.ProjectFilter, page pagination.Params) ([]domain.Project, int64, error) {
	return s.projects.ListForUser(ctx, userID, filter, page)
}

func (s *Projects) Update(ctx context.Context, id uint, in domain.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != project.Title {
		project.Title = *in.Title
		if project.Slug, err = s.uniqueSlug(ctx, *in.Title, id); err != nil {
			return nil, err
		}
	}
	if in.Client != nil {
		project.Client = *in.Client
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.StartDate != nil {
		project.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.Budget != nil {
		project.Budget = in.Budget
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.Validation("invalid project status", domain.FieldError{
				Field:   "status",
				Message: "must be one of planned, active, completed, archived",
			})
		}
		project.Status = *in.Status
	}

	if err := validateProjectDates(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

func (s *Projects) Delete(ctx context.Context, id uint) error {
	return s.projects.Delete(ctx, id)
}

func (s *Projects) AddTeamMembers(ctx context.Context, id uint, userIDs []uint) (*domain.Project, error) {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}
	users, err := s.loadUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	if err := s.projects.AddMembers(ctx, id, users); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

func (s *Projects) RemoveTeamMembers(ctx context.Context, id uint, userIDs []uint) (*domain.Project, error) {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.projects.RemoveMembers(ctx, id, userIDs); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

func (s *Projects) Stats(ctx context.Context, idOrSlug string) (*domain.Project, *domain.ProjectStats, error) {
	project, err := s.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, nil, err
	}

	taskStats, err := s.reports.ProjectTaskStats(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}
	sprintStats, err := s.reports.ProjectSprintStats(ctx, project.ID)
	if err != nil {
		return nil, nil, err
	}

	stats := &domain.ProjectStats{
		TotalTasks:     taskStats.Total,
		CompletedTasks: taskStats.Completed,
		Progress:       percent(taskStats.Completed, taskStats.Total),
		TotalSprints:   sprintStats.Total,
		ActiveSprints:  sprintStats.Active,
	}
	return project, stats, nil
}

// uniqueSlug derives the slug from the title and appends the first free
// numeric suffix on collision: base, base-1, base-2, ... The read-then-write
// is not transactional; the unique index catches the losing side of a race.
func (s *Projects) uniqueSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := s.projects.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *Projects) loadUsers(ctx context.Context, ids []uint) ([]domain.User, error) {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
