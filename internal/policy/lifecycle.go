package policy

import (
	"time"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// CheckStatusChange enforces the review gate. Statuses may otherwise move
// freely in any direction; callers that need a strict forward-only
// workflow must layer that on themselves.
//
// The gate: a member may not move a requiresReview task straight to done,
// they must move it to review instead. Admins and managers are exempt.
func CheckStatusChange(actor domain.Actor, task *domain.Task, next domain.TaskStatus) error {
	if !next.Valid() {
		return domain.Validation("invalid task status", domain.FieldError{
			Field:   "status",
			Message: "must be one of todo, in_progress, review, done",
		})
	}
	if next != domain.TaskDone || !task.RequiresReview {
		return nil
	}
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return nil
	case domain.RoleMember:
		return domain.Forbidden("this task requires review, move it to review status instead")
	}
	return domain.Forbidden("unknown role")
}

// ApplyStatusChange mutates the task after CheckStatusChange passed.
// Entering done stamps CompletedAt, and the acting user as reviewer when
// the task required review. Leaving done clears neither field; they remain
// as a record that the task was once completed.
func ApplyStatusChange(actor domain.Actor, task *domain.Task, next domain.TaskStatus, now time.Time) {
	task.Status = next
	if next != domain.TaskDone {
		return
	}
	completed := now
	task.CompletedAt = &completed
	if task.RequiresReview {
		reviewer := actor.ID
		task.ReviewedByID = &reviewer
	}
}

// CheckLogTime validates a time delta. Logged time is cumulative and may
// exceed the estimate.
func CheckLogTime(hours float64) error {
	if hours < 0 {
		return domain.Validation("invalid time log", domain.FieldError{
			Field:   "hours",
			Message: "must not be negative",
		})
	}
	return nil
}
