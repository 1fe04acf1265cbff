package domain

import (
	"context"

	"github.com/rakibul58/mpms-backend/internal/pagination"
)

// Repositories describe the persistence operations per aggregate. The GORM
// implementations live in internal/storage.

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error) // email must be lowercase
	List(ctx context.Context, filter UserFilter, page pagination.Params) ([]User, int64, error)
	ListActive(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	SetRefreshToken(ctx context.Context, id uint, token string) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*UserStats, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	List(ctx context.Context, filter ProjectFilter, page pagination.Params) ([]Project, int64, error)
	ListForUser(ctx context.Context, userID uint, filter ProjectFilter, page pagination.Params) ([]Project, int64, error)
	Update(ctx context.Context, project *Project) error
	// Delete removes the project together with its sprints and tasks.
	Delete(ctx context.Context, id uint) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	AddMembers(ctx context.Context, projectID uint, users []User) error
	RemoveMembers(ctx context.Context, projectID uint, userIDs []uint) error
}

type SprintRepository interface {
	Create(ctx context.Context, sprint *Sprint) error
	GetByID(ctx context.Context, id uint) (*Sprint, error)
	ListByProject(ctx context.Context, projectID uint) ([]Sprint, error)
	ActiveByProject(ctx context.Context, projectID uint) (*Sprint, error)
	MaxSprintNumber(ctx context.Context, projectID uint) (int, error)
	Update(ctx context.Context, sprint *Sprint) error
	Delete(ctx context.Context, id uint) error
	SetOrder(ctx context.Context, projectID, sprintID uint, order int) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id uint) (*Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]Task, error)
	ListBySprint(ctx context.Context, sprintID uint) ([]Task, error)
	ListAssigned(ctx context.Context, userID uint, filter TaskFilter) ([]Task, error)
	CountBySprint(ctx context.Context, sprintID uint) (int64, error)
	Update(ctx context.Context, task *Task) error
	ReplaceAssignees(ctx context.Context, task *Task, assignees []User) error
	Delete(ctx context.Context, id uint) error

	AddSubtask(ctx context.Context, subtask *Subtask) error
	GetSubtask(ctx context.Context, taskID uint, subtaskID string) (*Subtask, error)
	UpdateSubtask(ctx context.Context, subtask *Subtask) error
	DeleteSubtask(ctx context.Context, taskID uint, subtaskID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	// ListByTask returns top-level comments, newest first.
	ListByTask(ctx context.Context, taskID uint) ([]Comment, error)
	Update(ctx context.Context, comment *Comment) error
	// DeleteWithReplies removes the comment and its direct replies.
	DeleteWithReplies(ctx context.Context, id uint) error
}

// ReportRepository holds the read-only rollup queries.
type ReportRepository interface {
	Overview(ctx context.Context) (Overview, error)
	ProjectsByStatus(ctx context.Context) (map[string]int64, error)
	TasksByStatus(ctx context.Context) (map[string]int64, error)
	TasksByPriority(ctx context.Context) (map[string]int64, error)
	ProjectTasksByPriority(ctx context.Context, projectID uint) (map[string]int64, error)
	RecentProjects(ctx context.Context, limit int) ([]ProjectSummary, error)
	UpcomingDeadlines(ctx context.Context, limit int) ([]Task, error)
	ProjectTaskStats(ctx context.Context, projectID uint) (TaskStats, error)
	ProjectSprintStats(ctx context.Context, projectID uint) (SprintStats, error)
	SprintTaskStats(ctx context.Context, sprintID uint) (TaskStats, error)
	UserTaskStats(ctx context.Context, userID uint) (UserTaskStats, error)
	UserTasksByProject(ctx context.Context, userID uint) ([]ProjectTaskBreakdown, error)
}

// Services describe the business logic called from the HTTP handlers.

// TokenPair is the result of issuing credentials.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult bundles the user with freshly issued tokens.
type AuthResult struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	Me(ctx context.Context, userID uint) (*User, error)
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, filter UserFilter, page pagination.Params) ([]User, int64, error)
	TeamMembers(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uint, in UpdateUserInput) (*User, error)
	UpdateRole(ctx context.Context, id uint, role Role) (*User, error)
	ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*UserStats, error)
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput, creatorID uint) (*Project, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*Project, error)
	List(ctx context.Context, filter ProjectFilter, page pagination.Params) ([]Project, int64, error)
	ListMine(ctx context.Context, userID uint, filter ProjectFilter, page pagination.Params) ([]Project, int64, error)
	Update(ctx context.Context, id uint, in UpdateProjectInput) (*Project, error)
	Delete(ctx context.Context, id uint) error
	AddTeamMembers(ctx context.Context, id uint, userIDs []uint) (*Project, error)
	RemoveTeamMembers(ctx context.Context, id uint, userIDs []uint) (*Project, error)
	Stats(ctx context.Context, idOrSlug string) (*Project, *ProjectStats, error)
}

type SprintService interface {
	Create(ctx context.Context, in CreateSprintInput) (*Sprint, error)
	GetByID(ctx context.Context, id uint) (*Sprint, error)
	ListByProject(ctx context.Context, projectID uint) ([]Sprint, error)
	Active(ctx context.Context, projectID uint) (*Sprint, error)
	Update(ctx context.Context, id uint, in UpdateSprintInput) (*Sprint, error)
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, projectID uint, orders []SprintOrder) ([]Sprint, error)
	Stats(ctx context.Context, id uint) (*SprintReport, error)
}

// KanbanBoard groups a project's tasks by status.
type KanbanBoard struct {
	Todo       []Task `json:"todo"`
	InProgress []Task `json:"in_progress"`
	Review     []Task `json:"review"`
	Done       []Task `json:"done"`
}

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput, creatorID uint) (*Task, error)
	GetByID(ctx context.Context, id uint) (*Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]Task, error)
	ListBySprint(ctx context.Context, sprintID uint) ([]Task, error)
	ListMine(ctx context.Context, userID uint, filter TaskFilter) ([]Task, error)
	Kanban(ctx context.Context, projectID uint, sprintID *uint) (*KanbanBoard, error)
	Update(ctx context.Context, id uint, in UpdateTaskInput) (*Task, error)
	UpdateStatus(ctx context.Context, id uint, status TaskStatus, actor Actor) (*Task, error)
	LogTime(ctx context.Context, id uint, hours float64) (*Task, error)
	Delete(ctx context.Context, id uint) error
	AddSubtask(ctx context.Context, taskID uint, title string) (*Task, error)
	UpdateSubtask(ctx context.Context, taskID uint, subtaskID string, in UpdateSubtaskInput) (*Task, error)
	DeleteSubtask(ctx context.Context, taskID uint, subtaskID string) (*Task, error)
}

type CommentService interface {
	Create(ctx context.Context, taskID uint, in CreateCommentInput, authorID uint) (*Comment, error)
	ListByTask(ctx context.Context, taskID uint) ([]Comment, error)
	Update(ctx context.Context, id uint, content string, actor Actor) (*Comment, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardReport, error)
	MyReport(ctx context.Context, userID uint) (*MyReport, error)
	ProjectReport(ctx context.Context, projectID uint) (*ProjectReport, error)
}
