package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/service"
	"github.com/rakibul58/mpms-backend/internal/storage"
	"github.com/rakibul58/mpms-backend/internal/token"
)

// env wires the full service stack against a fresh in-memory database.
// Every test gets its own; no cleanup needed.
type env struct {
	repos    *storage.Repositories
	tokens   *token.Manager
	auth     *service.Auth
	users    *service.Users
	projects *service.Projects
	sprints  *service.Sprints
	tasks    *service.Tasks
	comments *service.Comments
	reports  *service.Reports
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := storage.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	repos := storage.NewRepositories(db)
	tokens := token.NewManager("test-access", "test-refresh", 15*time.Minute, time.Hour)

	return &env{
		repos:    repos,
		tokens:   tokens,
		auth:     service.NewAuth(repos.Users, tokens, bcrypt.MinCost),
		users:    service.NewUsers(repos.Users, bcrypt.MinCost),
		projects: service.NewProjects(repos.Projects, repos.Users, repos.Reports),
		sprints:  service.NewSprints(repos.Sprints, repos.Projects, repos.Tasks, repos.Reports),
		tasks:    service.NewTasks(repos.Tasks, repos.Projects, repos.Sprints, repos.Users),
		comments: service.NewComments(repos.Comments, repos.Tasks),
		reports:  service.NewReports(repos.Reports, repos.Users, repos.Projects),
	}
}

func (e *env) createUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), domain.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (e *env) createProject(t *testing.T, title string, creatorID uint, memberIDs ...uint) *domain.Project {
	t.Helper()
	project, err := e.projects.Create(context.Background(), domain.CreateProjectInput{
		Title:         title,
		Client:        "Test Client",
		StartDate:     time.Now(),
		TeamMemberIDs: memberIDs,
	}, creatorID)
	require.NoError(t, err)
	return project
}

func (e *env) createTask(t *testing.T, projectID uint, creatorID uint, in domain.CreateTaskInput) *domain.Task {
	t.Helper()
	in.ProjectID = projectID
	task, err := e.tasks.Create(context.Background(), in, creatorID)
	require.NoError(t, err)
	return task
}

func asActor(user *domain.User) domain.Actor {
	return domain.Actor{ID: user.ID, Role: user.Role}
}
