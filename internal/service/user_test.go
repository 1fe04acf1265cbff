package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/pagination"
)

func TestCreateUserWithRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	user, err := e.users.Create(ctx, domain.CreateUserInput{
		Name:     "Maya",
		Email:    "maya@example.com",
		Password: "password123",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, user.Role)

	// Blank role falls back to member, anything else is rejected.
	user, err = e.users.Create(ctx, domain.CreateUserInput{
		Name:     "Default",
		Email:    "default@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)

	_, err = e.users.Create(ctx, domain.CreateUserInput{
		Name:     "Bad",
		Email:    "bad@example.com",
		Password: "password123",
		Role:     domain.Role("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUpdateRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	member := e.createUser(t, "Member", "member@example.com", domain.RoleMember)

	promoted, err := e.users.UpdateRole(ctx, member.ID, domain.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, promoted.Role)

	_, err = e.users.UpdateRole(ctx, member.ID, domain.Role("boss"))
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestListUsersFilters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.createUser(t, "Ann Field", "ann@example.com", domain.RoleManager)
	e.createUser(t, "Ben Field", "ben@example.com", domain.RoleMember)
	e.createUser(t, "Cara Stone", "cara@example.com", domain.RoleMember)

	page := pagination.Parse("", "", "name", "asc")

	managers, total, err := e.users.List(ctx, domain.UserFilter{Role: domain.RoleManager}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, managers, 1)
	assert.Equal(t, "Ann Field", managers[0].Name)

	// Search matches name or email, case-insensitively.
	fields, total, err := e.users.List(ctx, domain.UserFilter{Search: "field"}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, fields, 2)
	assert.Equal(t, "Ann Field", fields[0].Name)
}

func TestTeamMembersExcludesDeactivated(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	active := e.createUser(t, "Active", "active@example.com", domain.RoleMember)
	gone := e.createUser(t, "Gone", "gone@example.com", domain.RoleMember)

	require.NoError(t, e.users.Deactivate(ctx, gone.ID))

	team, err := e.users.TeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, active.ID, team[0].ID)
}

func TestUpdateProfileFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "Before", "user@example.com", domain.RoleMember)

	name := "After"
	dept := "Engineering"
	updated, err := e.users.Update(ctx, user.ID, domain.UpdateUserInput{Name: &name, Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "Engineering", updated.Department)

	// Omitted fields stay put.
	updated, err = e.users.Update(ctx, user.ID, domain.UpdateUserInput{})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
}

func TestDeactivateAndReactivate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "Flip", "flip@example.com", domain.RoleMember)

	off := false
	updated, err := e.users.Update(ctx, user.ID, domain.UpdateUserInput{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = e.auth.Login(ctx, domain.LoginInput{Email: "flip@example.com", Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	on := true
	updated, err = e.users.Update(ctx, user.ID, domain.UpdateUserInput{IsActive: &on})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	_, err = e.auth.Login(ctx, domain.LoginInput{Email: "flip@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestDeactivationClearsRefreshToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.auth.Register(ctx, domain.RegisterInput{Name: "A", Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	off := false
	_, err = e.users.Update(ctx, res.User.ID, domain.UpdateUserInput{IsActive: &off})
	require.NoError(t, err)

	stored, err := e.users.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)
}

func TestDeleteUserRemovesAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "Gone", "gone@example.com", domain.RoleMember)

	require.NoError(t, e.users.Delete(ctx, user.ID))

	_, err := e.users.GetByID(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	err = e.users.Delete(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUserStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.createUser(t, "Admin", "admin@example.com", domain.RoleAdmin)
	e.createUser(t, "Manager", "manager@example.com", domain.RoleManager)
	member := e.createUser(t, "Member", "member@example.com", domain.RoleMember)

	require.NoError(t, e.users.Deactivate(ctx, member.ID))

	stats, err := e.users.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, int64(1), stats.ByRole[string(domain.RoleAdmin)])
	assert.Equal(t, int64(1), stats.ByRole[string(domain.RoleManager)])
	assert.Equal(t, int64(1), stats.ByRole[string(domain.RoleMember)])
}
