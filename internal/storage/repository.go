package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rakibul58/mpms-backend/internal/domain"
)

// Repositories bundles the per-aggregate repositories over one connection.
type Repositories struct {
	Users    *UserRepository
	Projects *ProjectRepository
	Sprints  *SprintRepository
	Tasks    *TaskRepository
	Comments *CommentRepository
	Reports  *ReportRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Projects: NewProjectRepository(db),
		Sprints:  NewSprintRepository(db),
		Tasks:    NewTaskRepository(db),
		Comments: NewCommentRepository(db),
		Reports:  NewReportRepository(db),
	}
}

// notFound maps GORM's record-not-found to the domain taxonomy, passing
// other errors through.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(msg)
	}
	return err
}

// writeErr normalizes uniqueness violations to Conflict. The unique index
// is the backstop for the slug and sprint-number races, so this is where
// those surface.
func writeErr(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return domain.Conflict(conflictMsg)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// searchPattern builds a case-insensitive LIKE pattern.
func searchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
