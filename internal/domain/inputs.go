package domain

import "time"

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   uint
	Role Role
}

// --- Auth & users ---

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
}

type LoginInput struct {
	Email    string
	Password string
}

type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       Role
	Department string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name       *string
	Department *string
	IsActive   *bool
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type UserFilter struct {
	Search     string
	Role       Role
	Department string
	IsActive   *bool
}

// --- Projects ---

type CreateProjectInput struct {
	Title         string
	Client        string
	Description   string
	StartDate     time.Time
	EndDate       *time.Time
	Budget        *float64
	Status        ProjectStatus
	TeamMemberIDs []uint
	ManagerIDs    []uint
}

type UpdateProjectInput struct {
	Title       *string
	Client      *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Status      *ProjectStatus
}

type ProjectFilter struct {
	Search        string
	Status        ProjectStatus
	Client        string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
}

// --- Sprints ---

type CreateSprintInput struct {
	Title       string
	ProjectID   uint
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      SprintStatus
}

type UpdateSprintInput struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *SprintStatus
}

// SprintOrder pairs a sprint with its new display order.
type SprintOrder struct {
	SprintID uint
	Order    int
}

// --- Tasks ---

type CreateTaskInput struct {
	Title          string
	Description    string
	ProjectID      uint
	SprintID       *uint
	AssigneeIDs    []uint
	Estimate       *float64
	Priority       TaskPriority
	Status         TaskStatus
	DueDate        *time.Time
	RequiresReview bool
}

type UpdateTaskInput struct {
	Title          *string
	Description    *string
	SprintID       *uint
	ClearSprint    bool
	AssigneeIDs    []uint
	SetAssignees   bool
	Estimate       *float64
	Priority       *TaskPriority
	DueDate        *time.Time
	ClearDueDate   bool
	RequiresReview *bool
}

type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
	Search   string
}

type UpdateSubtaskInput struct {
	Title       *string
	IsCompleted *bool
}

// --- Comments ---

type CreateCommentInput struct {
	Content         string
	ParentCommentID *uint
}
