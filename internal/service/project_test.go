package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

func TestCreateProjectSlugSequence(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)

	first := e.createProject(t, "Website Redesign", admin.ID)
	second := e.createProject(t, "Website Redesign", admin.ID)
	third := e.createProject(t, "Website Redesign", admin.ID)

	assert.Equal(t, "website-redesign", first.Slug)
	assert.Equal(t, "website-redesign-1", second.Slug)
	assert.Equal(t, "website-redesign-2", third.Slug)
}

func TestUpdateProjectTitleReslugs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)

	project := e.createProject(t, "Old Name", admin.ID)

	title := "New Name"
	updated, err := e.projects.Update(ctx, project.ID, domain.UpdateProjectInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)

	// Updating without a title change keeps the slug stable.
	client := "Acme"
	updated, err = e.projects.Update(ctx, project.ID, domain.UpdateProjectInput{Client: &client})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
}

func TestProjectDateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)

	start := time.Now()
	end := start.AddDate(0, 0, -1)
	_, err := e.projects.Create(ctx, domain.CreateProjectInput{
		Title:     "Backwards",
		Client:    "Acme",
		StartDate: start,
		EndDate:   &end,
	}, admin.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	// Equal dates are allowed.
	same := start
	_, err = e.projects.Create(ctx, domain.CreateProjectInput{
		Title:     "Same Day",
		Client:    "Acme",
		StartDate: start,
		EndDate:   &same,
	}, admin.ID)
	assert.NoError(t, err)
}

func TestGetProjectByIDOrSlug(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Lookup Test", admin.ID)

	bySlug, err := e.projects.GetByIDOrSlug(ctx, "lookup-test")
	require.NoError(t, err)
	assert.Equal(t, project.ID, bySlug.ID)

	byID, err := e.projects.GetByIDOrSlug(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, project.ID, byID.ID)

	_, err = e.projects.GetByIDOrSlug(ctx, "no-such-slug")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestProjectTeamMembership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	member := e.createUser(t, "Member", "member@example.com", domain.RoleMember)
	outsider := e.createUser(t, "Outsider", "outsider@example.com", domain.RoleMember)

	project := e.createProject(t, "Team Project", admin.ID, member.ID)
	require.Len(t, project.TeamMembers, 1)

	// my-projects only shows projects the user belongs to.
	mine, total, err := e.projects.ListMine(ctx, member.ID, domain.ProjectFilter{}, pagination.Parse("", "", "", ""))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, project.ID, mine[0].ID)

	_, total, err = e.projects.ListMine(ctx, outsider.ID, domain.ProjectFilter{}, pagination.Parse("", "", "", ""))
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	updated, err := e.projects.AddTeamMembers(ctx, project.ID, []uint{outsider.ID})
	require.NoError(t, err)
	assert.Len(t, updated.TeamMembers, 2)

	updated, err = e.projects.RemoveTeamMembers(ctx, project.ID, []uint{member.ID})
	require.NoError(t, err)
	require.Len(t, updated.TeamMembers, 1)
	assert.Equal(t, outsider.ID, updated.TeamMembers[0].ID)
}

func TestProjectListPagination(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)

	for i := 0; i < 12; i++ {
		e.createProject(t, "Project "+string(rune('A'+i)), admin.ID)
	}

	page, total, err := e.projects.List(ctx, domain.ProjectFilter{}, pagination.Parse("2", "5", "title", "asc"))
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, page, 5)
	assert.Equal(t, "Project F", page[0].Title)
}

func TestDeleteProjectCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Doomed", admin.ID)

	sprint, err := e.sprints.Create(ctx, domain.CreateSprintInput{
		Title:     "Sprint 1",
		ProjectID: project.ID,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)

	task := e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Doomed task", SprintID: &sprint.ID})

	require.NoError(t, e.projects.Delete(ctx, project.ID))

	_, err = e.projects.GetByIDOrSlug(ctx, "doomed")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	_, err = e.sprints.GetByID(ctx, sprint.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	_, err = e.tasks.GetByID(ctx, task.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestProjectStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	project := e.createProject(t, "Stats Project", admin.ID)

	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Done one", Status: domain.TaskDone})
	e.createTask(t, project.ID, admin.ID, domain.CreateTaskInput{Title: "Open one"})

	_, stats, err := e.projects.Stats(ctx, "stats-project")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalTasks)
	assert.EqualValues(t, 1, stats.CompletedTasks)
	assert.Equal(t, 50, stats.Progress)
}
