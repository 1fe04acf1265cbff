package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/policy"
)

func TestAuthorizeRoleMatrix(t *testing.T) {
	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin}
	manager := domain.Actor{ID: 2, Role: domain.RoleManager}
	member := domain.Actor{ID: 3, Role: domain.RoleMember}

	// Admin only.
	assert.NoError(t, policy.Authorize(admin, policy.ActionProjectDelete))
	assert.Error(t, policy.Authorize(manager, policy.ActionProjectDelete))
	assert.Error(t, policy.Authorize(member, policy.ActionUserManage))

	// Admin and manager.
	assert.NoError(t, policy.Authorize(admin, policy.ActionProjectCreate))
	assert.NoError(t, policy.Authorize(manager, policy.ActionSprintManage))
	assert.Error(t, policy.Authorize(member, policy.ActionTaskManage))
	assert.Error(t, policy.Authorize(member, policy.ActionReportDashboard))

	// Any authenticated role.
	assert.NoError(t, policy.Authorize(member, policy.ActionTaskStatus))
	assert.NoError(t, policy.Authorize(member, policy.ActionCommentManage))
	assert.NoError(t, policy.Authorize(member, policy.ActionReportSelf))
}

func TestAuthorizeDeniedKindIsForbidden(t *testing.T) {
	err := policy.Authorize(domain.Actor{ID: 3, Role: domain.RoleMember}, policy.ActionProjectCreate)
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestReviewGateBlocksMember(t *testing.T) {
	task := &domain.Task{Status: domain.TaskReview, RequiresReview: true}
	member := domain.Actor{ID: 7, Role: domain.RoleMember}

	err := policy.CheckStatusChange(member, task, domain.TaskDone)
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	// The member can still move it into review.
	assert.NoError(t, policy.CheckStatusChange(member, task, domain.TaskReview))
	assert.NoError(t, policy.CheckStatusChange(member, task, domain.TaskInProgress))
}

func TestReviewGateExemptsManagersAndAdmins(t *testing.T) {
	task := &domain.Task{Status: domain.TaskReview, RequiresReview: true}

	assert.NoError(t, policy.CheckStatusChange(domain.Actor{ID: 1, Role: domain.RoleAdmin}, task, domain.TaskDone))
	assert.NoError(t, policy.CheckStatusChange(domain.Actor{ID: 2, Role: domain.RoleManager}, task, domain.TaskDone))
}

func TestReviewGateIgnoresTasksWithoutReview(t *testing.T) {
	task := &domain.Task{Status: domain.TaskInProgress, RequiresReview: false}
	member := domain.Actor{ID: 7, Role: domain.RoleMember}

	assert.NoError(t, policy.CheckStatusChange(member, task, domain.TaskDone))
}

func TestCheckStatusChangeRejectsUnknownStatus(t *testing.T) {
	err := policy.CheckStatusChange(domain.Actor{ID: 1, Role: domain.RoleAdmin}, &domain.Task{}, domain.TaskStatus("blocked"))
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestApplyStatusChangeStampsCompletion(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	manager := domain.Actor{ID: 2, Role: domain.RoleManager}

	task := &domain.Task{Status: domain.TaskReview, RequiresReview: true}
	policy.ApplyStatusChange(manager, task, domain.TaskDone, now)

	assert.Equal(t, domain.TaskDone, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
	require.NotNil(t, task.ReviewedByID)
	assert.Equal(t, manager.ID, *task.ReviewedByID)
}

func TestApplyStatusChangeNoReviewerWithoutReview(t *testing.T) {
	task := &domain.Task{Status: domain.TaskInProgress}
	policy.ApplyStatusChange(domain.Actor{ID: 3, Role: domain.RoleMember}, task, domain.TaskDone, time.Now())

	assert.NotNil(t, task.CompletedAt)
	assert.Nil(t, task.ReviewedByID)
}

func TestApplyStatusChangeKeepsHistoryWhenReopened(t *testing.T) {
	now := time.Now()
	manager := domain.Actor{ID: 2, Role: domain.RoleManager}

	task := &domain.Task{Status: domain.TaskReview, RequiresReview: true}
	policy.ApplyStatusChange(manager, task, domain.TaskDone, now)
	policy.ApplyStatusChange(manager, task, domain.TaskInProgress, now.Add(time.Hour))

	assert.Equal(t, domain.TaskInProgress, task.Status)
	assert.NotNil(t, task.CompletedAt, "completion record survives reopening")
	assert.NotNil(t, task.ReviewedByID)
}

func TestCanEditComment(t *testing.T) {
	comment := &domain.Comment{AuthorID: 3}

	assert.NoError(t, policy.CanEditComment(domain.Actor{ID: 3, Role: domain.RoleMember}, comment))
	// Not even admins edit someone else's words.
	assert.Error(t, policy.CanEditComment(domain.Actor{ID: 1, Role: domain.RoleAdmin}, comment))
	assert.Error(t, policy.CanEditComment(domain.Actor{ID: 4, Role: domain.RoleMember}, comment))
}

func TestCanDeleteComment(t *testing.T) {
	comment := &domain.Comment{AuthorID: 3}

	assert.NoError(t, policy.CanDeleteComment(domain.Actor{ID: 3, Role: domain.RoleMember}, comment))
	assert.NoError(t, policy.CanDeleteComment(domain.Actor{ID: 1, Role: domain.RoleAdmin}, comment))
	assert.Error(t, policy.CanDeleteComment(domain.Actor{ID: 4, Role: domain.RoleManager}, comment))
}

func TestCheckLogTime(t *testing.T) {
	assert.NoError(t, policy.CheckLogTime(2.5))
	assert.NoError(t, policy.CheckLogTime(0))

	err := policy.CheckLogTime(-1)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
