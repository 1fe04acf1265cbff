package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/policy"
)

// Tasks implements task CRUD, the status lifecycle, time logging and
// subtasks.
type Tasks struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository
	sprints  domain.SprintRepository
	users    domain.UserRepository
}

func NewTasks(tasks domain.TaskRepository, projects domain.ProjectRepository, sprints domain.SprintRepository, users domain.UserRepository) *Tasks {
	return &Tasks{tasks: tasks, projects: projects, sprints: sprints, users: users}
}

func (s *Tasks) Create(ctx context.Context, in domain.CreateTaskInput, creatorID uint) (*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}
	if in.SprintID != nil {
		sprint, err := s.sprints.GetByID(ctx, *in.SprintID)
		if err != nil {
			return nil, err
		}
		if sprint.ProjectID != in.ProjectID {
			return nil, domain.Validation("invalid sprint", domain.FieldError{
				Field:   "sprintId",
				Message: "sprint belongs to a different project",
			})
		}
	}

	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	if !status.Valid() {
		return nil, domain.Validation("invalid task status", domain.FieldError{
			Field:   "status",
			Message: "must be one of todo, in_progress, review, done",
		})
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.Validation("invalid task priority", domain.FieldError{
			Field:   "priority",
			Message: "must be one of low, medium, high, urgent",
		})
	}

	assignees, err := s.loadUsers(ctx, in.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:          in.Title,
		Description:    in.Description,
		ProjectID:      in.ProjectID,
		SprintID:       in.SprintID,
		Assignees:      assignees,
		CreatedByID:    creatorID,
		Estimate:       in.Estimate,
		Priority:       priority,
		Status:         status,
		DueDate:        in.DueDate,
		RequiresReview: in.RequiresReview,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, task.ID)
}

func (s *Tasks) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *Tasks) ListByProject(ctx context.Context, projectID uint) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *Tasks) ListBySprint(ctx context.Context, sprintID uint) ([]domain.Task, error) {
	return s.tasks.ListBySprint(ctx, sprintID)
}

func (s *Tasks) ListMine(ctx context.Context, userID uint, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.tasks.ListAssigned(ctx, userID, filter)
}

func (s *Tasks) Kanban(ctx context.Context, projectID uint, sprintID *uint) (*domain.KanbanBoard, error) {
	var (
		tasks []domain.Task
		err   error
	)
	if sprintID != nil {
		var sprint *domain.Sprint
		sprint, err = s.sprints.GetByID(ctx, *sprintID)
		if err != nil {
			return nil, err
		}
		if sprint.ProjectID != projectID {
			return nil, domain.Validation("invalid sprint", domain.FieldError{
				Field:   "sprintId",
				Message: "sprint belongs to a different project",
			})
		}
		tasks, err = s.tasks.ListBySprint(ctx, *sprintID)
	} else {
		tasks, err = s.tasks.ListByProject(ctx, projectID)
	}
	if err != nil {
		return nil, err
	}

	board := &domain.KanbanBoard{
		Todo:       []domain.Task{},
		InProgress: []domain.Task{},
		Review:     []domain.Task{},
		Done:       []domain.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskTodo:
			board.Todo = append(board.Todo, t)
		case domain.TaskInProgress:
			board.InProgress = append(board.InProgress, t)
		case domain.TaskReview:
			board.Review = append(board.Review, t)
		case domain.TaskDone:
			board.Done = append(board.Done, t)
		}
	}
	return board, nil
}

func (s *Tasks) Update(ctx context.Context, id uint, in domain.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.ClearSprint {
		task.SprintID = nil
	} else if in.SprintID != nil {
		sprint, err := s.sprints.GetByID(ctx, *in.SprintID)
		if err != nil {
			return nil, err
		}
		if sprint.ProjectID != task.ProjectID {
			return nil, domain.Validation("invalid sprint", domain.FieldError{
				Field:   "sprintId",
				Message: "sprint belongs to a different project",
			})
		}
		task.SprintID = in.SprintID
	}
	if in.Estimate != nil {
		task.Estimate = in.Estimate
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, domain.Validation("invalid task priority", domain.FieldError{
				Field:   "priority",
				Message: "must be one of low, medium, high, urgent",
			})
		}
		task.Priority = *in.Priority
	}
	if in.ClearDueDate {
		task.DueDate = nil
	} else if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.RequiresReview != nil {
		task.RequiresReview = *in.RequiresReview
	}

	if in.SetAssignees {
		assignees, err := s.loadUsers(ctx, in.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		if err := s.tasks.ReplaceAssignees(ctx, task, assignees); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

// UpdateStatus moves a task through the lifecycle. The review gate and the
// done side effects live in the policy package; this method only loads,
// delegates and persists.
func (s *Tasks) UpdateStatus(ctx context.Context, id uint, status domain.TaskStatus, actor domain.Actor) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CheckStatusChange(actor, task, status); err != nil {
		return nil, err
	}
	policy.ApplyStatusChange(actor, task, status, time.Now())

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

func (s *Tasks) LogTime(ctx context.Context, id uint, hours float64) (*domain.Task, error) {
	if err := policy.CheckLogTime(hours); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.TimeLogged += hours
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

func (s *Tasks) Delete(ctx context.Context, id uint) error {
	return s.tasks.Delete(ctx, id)
}

// --- Subtasks ---

func (s *Tasks) AddSubtask(ctx context.Context, taskID uint, title string) (*domain.Task, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	subtask := &domain.Subtask{
		ID:     uuid.NewString(),
		TaskID: taskID,
		Title:  title,
	}
	if err := s.tasks.AddSubtask(ctx, subtask); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, taskID)
}

func (s *Tasks) UpdateSubtask(ctx context.Context, taskID uint, subtaskID string, in domain.UpdateSubtaskInput) (*domain.Task, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	subtask, err := s.tasks.GetSubtask(ctx, taskID, subtaskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		subtask.Title = *in.Title
	}
	if in.IsCompleted != nil {
		subtask.IsCompleted = *in.IsCompleted
	}

	if err := s.tasks.UpdateSubtask(ctx, subtask); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, taskID)
}

func (s *Tasks) DeleteSubtask(ctx context.Context, taskID uint, subtaskID string) (*domain.Task, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.tasks.DeleteSubtask(ctx, taskID, subtaskID); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, taskID)
}

func (s *Tasks) loadUsers(ctx context.Context, ids []uint) ([]domain.User, error) {
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
