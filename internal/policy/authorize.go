// Package policy holds the pure decision functions: who may perform which
// action, and how a task's status may change. Nothing here touches storage.
package policy

import (
	"github.com/rakibul58/mpms-backend/internal/domain"
)

// Action is a role-gated operation. Each action maps to a minimum role set
// checked by Authorize.
type Action int

const (
	// Any authenticated role.
	ActionTaskStatus Action = iota
	ActionTaskLogTime
	ActionSubtaskManage
	ActionCommentManage
	ActionReportSelf

	// Admin or manager.
	ActionProjectCreate
	ActionProjectUpdate
	ActionProjectList
	ActionProjectMembers
	ActionSprintManage
	ActionTaskManage
	ActionUserList
	ActionReportDashboard
	ActionReportProject

	// Admin only.
	ActionProjectDelete
	ActionUserManage
)

// Authorize applies the role gate for an action. It is the first gate in
// the precedence order; ownership checks happen separately against the
// loaded resource.
func Authorize(actor domain.Actor, action Action) error {
	if !actor.Role.Valid() {
		return domain.Forbidden("unknown role")
	}
	if roleAllowed(actor.Role, action) {
		return nil
	}
	return domain.Forbidden("you do not have permission to perform this action")
}

func roleAllowed(role domain.Role, action Action) bool {
	switch action {
	case ActionProjectDelete, ActionUserManage:
		return role == domain.RoleAdmin
	case ActionProjectCreate, ActionProjectUpdate, ActionProjectList,
		ActionProjectMembers, ActionSprintManage, ActionTaskManage,
		ActionUserList, ActionReportDashboard, ActionReportProject:
		switch role {
		case domain.RoleAdmin, domain.RoleManager:
			return true
		case domain.RoleMember:
			return false
		}
	case ActionTaskStatus, ActionTaskLogTime, ActionSubtaskManage,
		ActionCommentManage, ActionReportSelf:
		switch role {
		case domain.RoleAdmin, domain.RoleManager, domain.RoleMember:
			return true
		}
	}
	return false
}

// CanEditComment allows only the author. There is no admin bypass for
// editing: changing someone else's words is never permitted.
func CanEditComment(actor domain.Actor, comment *domain.Comment) error {
	if comment.AuthorID != actor.ID {
		return domain.Forbidden("you can only edit your own comments")
	}
	return nil
}

// CanDeleteComment allows the author, or an admin acting on anyone's
// comment.
func CanDeleteComment(actor domain.Actor, comment *domain.Comment) error {
	if comment.AuthorID == actor.ID || actor.Role == domain.RoleAdmin {
		return nil
	}
	return domain.Forbidden("you can only delete your own comments")
}
