package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

func TestDashboardReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	member := e.createUser(t, "Member", "member@example.com", domain.RoleMember)
	project := e.createProject(t, "Project", admin.ID, member.ID)

	due := time.Now().Add(48 * time.Hour)
	farAway := time.Now().AddDate(0, 2, 0)
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Due soon", DueDate: &due})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Due later", DueDate: &farAway})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Closed", Status: domain.TaskDone, DueDate: &due})

	report, err := e.reports.Dashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 1, report.Overview.TotalProjects)
	assert.EqualValues(t, 3, report.Overview.TotalTasks)
	assert.EqualValues(t, 2, report.Overview.TotalUsers)
	assert.EqualValues(t, 1, report.TasksByStatus["done"])
	assert.EqualValues(t, 2, report.TasksByStatus["todo"])
	require.Len(t, report.RecentProjects, 1)

	// Only open tasks due within the window count as upcoming.
	require.Len(t, report.UpcomingDeadlines, 1)
	assert.Equal(t, "Due soon", report.UpcomingDeadlines[0].Title)
}

func TestMyReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	alice := e.createUser(t, "Alice", "alice@example.com", domain.RoleMember)
	projectA := e.createProject(t, "Project A", admin.ID, alice.ID)
	projectB := e.createProject(t, "Project B", admin.ID, alice.ID)

	e.createTask(t, projectA.ID, admin.ID, domain.CreateTaskInput{
		Title: "Done", AssigneeIDs: []uint{alice.ID}, Status: domain.TaskDone,
	})
	e.createTask(t, projectA.ID, admin.ID, domain.CreateTaskInput{
		Title: "Open", AssigneeIDs: []uint{alice.ID},
	})
	e.createTask(t, projectB.ID, admin.ID, domain.CreateTaskInput{
		Title: "Other project", AssigneeIDs: []uint{alice.ID},
	})
	e.createTask(t, projectB.ID, admin.ID, domain.CreateTaskInput{Title: "Not hers"})

	report, err := e.reports.MyReport(ctx, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, alice.ID, report.User.ID)
	assert.EqualValues(t, 3, report.Stats.AssignedTasks)
	assert.EqualValues(t, 1, report.Stats.CompletedTasks)
	assert.Equal(t, 33, report.Stats.CompletionRate)
	assert.Len(t, report.TasksByProject, 2)
}

func TestProjectReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	alice := e.createUser(t, "Alice", "alice@example.com", domain.RoleMember)
	bob := e.createUser(t, "Bob", "bob@example.com", domain.RoleMember)
	project := e.createProject(t, "Project", admin.ID, alice.ID, bob.ID)

	estimate := 8.0
	task := e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{
		Title: "Estimated", Estimate: &estimate, Priority: domain.PriorityHigh,
	})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Closed", Status: domain.TaskDone})

	_, err := e.tasks.LogTime(ctx, task.ID, 3)
	require.NoError(t, err)

	report, err := e.reports.ProjectReport(ctx, project.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, report.Stats.TotalTasks)
	assert.EqualValues(t, 1, report.Stats.CompletedTasks)
	assert.Equal(t, 50, report.Stats.Progress)
	assert.Equal(t, 2, report.Stats.TeamSize)
	assert.Equal(t, 8.0, report.Stats.EstimatedHours)
	assert.Equal(t, 3.0, report.Stats.LoggedHours)
	assert.EqualValues(t, 1, report.TasksByPriority["high"])
	assert.EqualValues(t, 1, report.TasksByPriority["medium"])
}
