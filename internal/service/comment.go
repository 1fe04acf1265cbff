package service

import (
	"context"
	"time"

	"github.com/rakibul58/mpms-backend/internal/domain"
	"github.com/rakibul58/mpms-backend/internal/policy"
)

// Comments implements task comments with one level of threading.
type Comments struct {
	comments domain.CommentRepository
	tasks    domain.TaskRepository
}

func NewComments(comments domain.CommentRepository, tasks domain.TaskRepository) *Comments {
	return &Comments{comments: comments, tasks: tasks}
}

func (s *Comments) Create(ctx context.Context, taskID uint, in domain.CreateCommentInput, authorID uint) (*domain.Comment, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	if in.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.TaskID != taskID {
			return nil, domain.Validation("invalid parent comment", domain.FieldError{
				Field:   "parentCommentId",
				Message: "parent comment belongs to a different task",
			})
		}
	}

	comment := &domain.Comment{
		Content:         in.Content,
		TaskID:          taskID,
		AuthorID:        authorID,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

func (s *Comments) ListByTask(ctx context.Context, taskID uint) ([]domain.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

func (s *Comments) Update(ctx context.Context, id uint, content string, actor domain.Actor) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanEditComment(actor, comment); err != nil {
		return nil, err
	}

	now := time.Now()
	comment.Content = content
	comment.IsEdited = true
	comment.EditedAt = &now

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

func (s *Comments) Delete(ctx context.Context, id uint, actor domain.Actor) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanDeleteComment(actor, comment); err != nil {
		return err
	}
	return s.comments.DeleteWithReplies(ctx, id)
}
