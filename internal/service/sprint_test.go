package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

func newSprintInput(projectID uint, title string) domain.CreateSprintInput {
	return domain.CreateSprintInput{
		Title:     title,
		ProjectID: projectID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 14),
	}
}

func TestSprintNumberingPerProject(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	projectA := e.createProject(t, "Project A", admin.ID)
	projectB := e.createProject(t, "Project B", admin.ID)

	s1, err := e.sprints.Create(ctx, newSprintInput(projectA.ID, "First"))
	require.NoError(t, err)
	s2, err := e.sprints.Create(ctx, newSprintInput(projectA.ID, "Second"))
	require.NoError(t, err)
	other, err := e.sprints.Create(ctx, newSprintInput(projectB.ID, "Other first"))
	require.NoError(t, err)

	assert.Equal(t, 1, s1.SprintNumber)
	assert.Equal(t, 2, s2.SprintNumber)
	assert.Equal(t, 1, other.SprintNumber, "numbering is per project")
	assert.Equal(t, domain.SprintPlanned, s1.Status)
}

func TestSprintNumberNotReused(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Project", admin.ID)

	s1, err := e.sprints.Create(ctx, newSprintInput(project.ID, "First"))
	require.NoError(t, err)
	s2, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Second"))
	require.NoError(t, err)

	// Deleting the latest sprint frees its number for the next one; the
	// number is max+1, not a counter.
	require.NoError(t, e.sprints.Delete(ctx, s2.ID))
	s3, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Third"))
	require.NoError(t, err)
	assert.Equal(t, 2, s3.SprintNumber)
	assert.Equal(t, 1, s1.SprintNumber)
}

func TestSprintDateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Project", admin.ID)

	in := newSprintInput(project.ID, "Bad dates")
	in.EndDate = in.StartDate
	_, err := e.sprints.Create(ctx, in)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "sprint end must be strictly after start")
}

func TestDeleteSprintWithTasksRefused(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Project", admin.ID)

	sprint, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Busy sprint"))
	require.NoError(t, err)
	task := e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "In sprint", SprintID: &sprint.ID})

	err = e.sprints.Delete(ctx, sprint.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))

	// Moving the task out unblocks the delete.
	_, err = e.tasks.Update(ctx, task.ID, domain.UpdateTaskInput{ClearSprint: true})
	require.NoError(t, err)
	assert.NoError(t, e.sprints.Delete(ctx, sprint.ID))
}

func TestActiveSprint(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Project", admin.ID)

	planned, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Planned"))
	require.NoError(t, err)

	_, err = e.sprints.Active(ctx, project.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	active := domain.SprintActive
	_, err = e.sprints.Update(ctx, planned.ID, domain.UpdateSprintInput{Status: &active})
	require.NoError(t, err)

	got, err := e.sprints.Active(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, planned.ID, got.ID)
}

func TestReorderSprints(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Project", admin.ID)

	s1, err := e.sprints.Create(ctx, newSprintInput(project.ID, "First"))
	require.NoError(t, err)
	s2, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Second"))
	require.NoError(t, err)
	s3, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Third"))
	require.NoError(t, err)

	reordered, err := e.sprints.Reorder(ctx, project.ID, []domain.SprintOrder{
		{SprintID: s3.ID, Order: 1},
		{SprintID: s1.ID, Order: 2},
		{SprintID: s2.ID, Order: 3},
	})
	require.NoError(t, err)
	require.Len(t, reordered, 3)
	assert.Equal(t, s3.ID, reordered[0].ID)
	assert.Equal(t, s1.ID, reordered[1].ID)
	assert.Equal(t, s2.ID, reordered[2].ID)
}

func TestSprintStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Project", admin.ID)

	sprint, err := e.sprints.Create(ctx, newSprintInput(project.ID, "Sprint"))
	require.NoError(t, err)

	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Done", SprintID: &sprint.ID, Status: domain.TaskDone})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Going", SprintID: &sprint.ID, Status: domain.TaskInProgress})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Waiting", SprintID: &sprint.ID})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Elsewhere"})

	report, err := e.sprints.Stats(ctx, sprint.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, report.Stats.TotalTasks)
	assert.EqualValues(t, 1, report.Stats.CompletedTasks)
	assert.EqualValues(t, 1, report.Stats.InProgressTasks)
	assert.EqualValues(t, 1, report.Stats.TodoTasks)
	assert.Equal(t, 33, report.Stats.Progress)
}

func TestReorderRejectsForeignSprint(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	projectA := e.createProject(t, "Project A", admin.ID)
	projectB := e.createProject(t, "Project B", admin.ID)

	theirs, err := e.sprints.Create(ctx, newSprintInput(projectB.ID, "Theirs"))
	require.NoError(t, err)

	_, err = e.sprints.Reorder(ctx, projectA.ID, []domain.SprintOrder{
		{SprintID: theirs.ID, Order: 5},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// The other project's sprint was left alone.
	kept, err := e.sprints.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.Order)
}
