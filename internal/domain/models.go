package domain

import "time"

// User - an account that can authenticate and act on resources
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name       string `json:"name" gorm:"not null"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"` // stored lowercase
	Password   string `json:"-" gorm:"not null"`                 // bcrypt hash
	Role       Role   `json:"role" gorm:"type:varchar(16);default:member"`
	Department string `json:"department,omitempty"`
	IsActive   bool   `json:"isActive" gorm:"default:true"`

	// Single active refresh token. Issuing a new pair overwrites it, which
	// invalidates the previous session's refresh token.
	RefreshToken string `json:"-"`
}

// Project - top-level container for sprints and tasks
type Project struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string        `json:"title" gorm:"not null"`
	Slug        string        `json:"slug" gorm:"uniqueIndex;not null"`
	Client      string        `json:"client" gorm:"not null"`
	Description string        `json:"description,omitempty"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Budget      *float64      `json:"budget,omitempty"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(16);default:planned"`

	CreatedByID uint   `json:"createdById"`
	CreatedBy   *User  `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	TeamMembers []User `json:"teamMembers" gorm:"many2many:project_members;"`
	Managers    []User `json:"managers" gorm:"many2many:project_managers;"`
}

// Sprint - a time-boxed iteration within a project. SprintNumber is unique
// per project and assigned monotonically from 1.
type Sprint struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title        string       `json:"title" gorm:"not null"`
	SprintNumber int          `json:"sprintNumber" gorm:"uniqueIndex:idx_sprints_project_number"`
	ProjectID    uint         `json:"projectId" gorm:"uniqueIndex:idx_sprints_project_number"`
	Project      *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Description  string       `json:"description,omitempty"`
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	Status       SprintStatus `json:"status" gorm:"type:varchar(16);default:planned"`
	Order        int          `json:"order" gorm:"column:display_order"` // display order, defaults to SprintNumber
}

// Task - a unit of work. TimeLogged only grows, via the log-time operation.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description,omitempty"`
	ProjectID   uint         `json:"projectId" gorm:"index;not null"`
	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	SprintID    *uint        `json:"sprintId,omitempty" gorm:"index"`
	Sprint      *Sprint      `json:"sprint,omitempty" gorm:"foreignKey:SprintID"`
	Assignees   []User       `json:"assignees" gorm:"many2many:task_assignees;"`
	CreatedByID uint         `json:"createdById"`
	CreatedBy   *User        `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	Estimate    *float64     `json:"estimate,omitempty"`
	TimeLogged  float64      `json:"timeLogged"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(16);default:medium"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(16);default:todo;index"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`

	// CompletedAt is stamped whenever the task enters done. It is not
	// cleared when the task later leaves done.
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	RequiresReview bool       `json:"requiresReview" gorm:"default:false"`
	ReviewedByID   *uint      `json:"reviewedById,omitempty"`
	ReviewedBy     *User      `json:"reviewedBy,omitempty" gorm:"foreignKey:ReviewedByID"`

	Subtasks []Subtask `json:"subtasks" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// Subtask - a checklist item inside a task
type Subtask struct {
	ID          string    `json:"id" gorm:"primaryKey"` // uuid
	TaskID      uint      `json:"-" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	IsCompleted bool      `json:"isCompleted" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Comment - a comment on a task, threaded one level deep
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Content         string     `json:"content" gorm:"not null"`
	TaskID          uint       `json:"taskId" gorm:"index;not null"`
	Task            *Task      `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	AuthorID        uint       `json:"authorId"`
	Author          *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentCommentID *uint      `json:"parentCommentId,omitempty" gorm:"index"`
	IsEdited        bool       `json:"isEdited" gorm:"default:false"`
	EditedAt        *time.Time `json:"editedAt,omitempty"`
}
