package domain

import "time"

// Read-only rollup shapes returned by the report queries.

// Overview - global counters for the dashboard
type Overview struct {
	TotalProjects  int64   `json:"totalProjects"`
	ActiveProjects int64   `json:"activeProjects"`
	TotalTasks     int64   `json:"totalTasks"`
	CompletedTasks int64   `json:"completedTasks"`
	TotalUsers     int64   `json:"totalUsers"`
	HoursLogged    float64 `json:"totalHoursLogged"`
}

// TaskStats - per-project task rollup
type TaskStats struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	InProgress     int64   `json:"inProgress"`
	Todo           int64   `json:"todo"`
	Review         int64   `json:"review"`
	EstimatedHours float64 `json:"estimatedHours"`
	LoggedHours    float64 `json:"loggedHours"`
}

// SprintStats - per-project sprint rollup
type SprintStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

// ProjectSummary - trimmed project view for dashboard lists
type ProjectSummary struct {
	ID     uint          `json:"id"`
	Title  string        `json:"title"`
	Status ProjectStatus `json:"status"`
}

// DashboardReport - the admin/manager dashboard payload
type DashboardReport struct {
	Overview          Overview         `json:"overview"`
	ProjectsByStatus  map[string]int64 `json:"projectsByStatus"`
	TasksByStatus     map[string]int64 `json:"tasksByStatus"`
	TasksByPriority   map[string]int64 `json:"tasksByPriority"`
	RecentProjects    []ProjectSummary `json:"recentProjects"`
	UpcomingDeadlines []Task           `json:"upcomingDeadlines"`
}

// UserStats - account totals for the admin user list
type UserStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"byRole"`
}

// UserTaskStats - a user's own workload rollup
type UserTaskStats struct {
	AssignedTasks   int64   `json:"assignedTasks"`
	CompletedTasks  int64   `json:"completedTasks"`
	InProgressTasks int64   `json:"inProgressTasks"`
	HoursLogged     float64 `json:"totalHoursLogged"`
	CompletionRate  int     `json:"completionRate"` // percent, rounded
}

// ProjectTaskBreakdown - per-project slice of a user's assigned tasks
type ProjectTaskBreakdown struct {
	ProjectID      uint   `json:"projectId"`
	ProjectTitle   string `json:"projectTitle"`
	TaskCount      int64  `json:"taskCount"`
	CompletedCount int64  `json:"completedCount"`
}

// MyReport - the personal report payload
type MyReport struct {
	User           *User                  `json:"user"`
	Stats          UserTaskStats          `json:"stats"`
	TasksByProject []ProjectTaskBreakdown `json:"tasksByProject"`
}

// ProjectReportStats - the project report numbers
type ProjectReportStats struct {
	TotalTasks       int64   `json:"totalTasks"`
	CompletedTasks   int64   `json:"completedTasks"`
	InProgressTasks  int64   `json:"inProgressTasks"`
	TodoTasks        int64   `json:"todoTasks"`
	ReviewTasks      int64   `json:"reviewTasks"`
	Progress         int     `json:"progress"` // percent, rounded
	TotalSprints     int64   `json:"totalSprints"`
	CompletedSprints int64   `json:"completedSprints"`
	EstimatedHours   float64 `json:"estimatedHours"`
	LoggedHours      float64 `json:"loggedHours"`
	TeamSize         int     `json:"teamSize"`
}

// ProjectReport - the project report payload
type ProjectReport struct {
	Project         *Project           `json:"project"`
	Stats           ProjectReportStats `json:"stats"`
	TasksByPriority map[string]int64   `json:"tasksByPriority"`
}

// ProjectStats - the lighter per-project stats endpoint payload
type ProjectStats struct {
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	Progress       int   `json:"progress"` // percent, rounded
	TotalSprints   int64 `json:"totalSprints"`
	ActiveSprints  int64 `json:"activeSprints"`
}

// SprintReport - the per-sprint stats endpoint payload
type SprintReport struct {
	Sprint *Sprint `json:"sprint"`
	Stats  struct {
		TotalTasks      int64 `json:"totalTasks"`
		CompletedTasks  int64 `json:"completedTasks"`
		InProgressTasks int64 `json:"inProgressTasks"`
		TodoTasks       int64 `json:"todoTasks"`
		Progress        int   `json:"progress"`
	} `json:"stats"`
}

// DeadlineWindow is how far ahead the dashboard looks for due tasks.
const DeadlineWindow = 7 * 24 * time.Hour
