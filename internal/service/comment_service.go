package service

import (
	"context"
	"fmt"

	"echos/internal/middleware"
	"echos/internal/models"
	"echos/internal/repository"
)

// CommentService wraps comment persistence with ownership policy.
type CommentService struct {
	comments repository.CommentRepository
	users    repository.UserRepository
}

// NewCommentService returns a CommentService over the given repositories.
func NewCommentService(comments repository.CommentRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, users: users}
}

// CreateCommentInput carries a new comment on a post.
type CreateCommentInput struct {
	CallerID uint
	PostID   uint
	Content  string
}

func validateCommentBody(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > MaxCommentLen {
		return models.NewValidationError(fmt.Sprintf("Comment too long (max %d characters)", MaxCommentLen))
	}
	return nil
}

// CreateComment adds a comment authored by the caller.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validateCommentBody(in.Content); err != nil {
		return nil, err
	}

	caller, err := s.users.GetByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, models.NewUnauthorizedError("Unknown caller")
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: caller.ID,
		Content:  in.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

// ListComments returns the post's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// UpdateComment edits a comment's content. Only the author may edit; a
// missing comment and a foreign comment both report false.
func (s *CommentService) UpdateComment(ctx context.Context, callerID, commentID uint, content string) (bool, error) {
	if err := validateCommentBody(content); err != nil {
		return false, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	if comment == nil {
		middleware.Logger.WarnContext(ctx, "update of missing comment",
			"operation", "updateComment", "comment_id", commentID, "caller_id", callerID)
		return false, nil
	}
	if comment.AuthorID != callerID {
		deny(ctx, "updateComment", "comment_id", commentID, "caller_id", callerID)
		return false, nil
	}

	return s.comments.Update(ctx, commentID, content)
}

// DeleteComment removes a comment. The author may delete their own comment;
// an Admin may delete any comment.
func (s *CommentService) DeleteComment(ctx context.Context, callerID, commentID uint) (bool, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	if comment == nil {
		middleware.Logger.WarnContext(ctx, "delete of missing comment",
			"operation", "deleteComment", "comment_id", commentID, "caller_id", callerID)
		return false, nil
	}
	if comment.AuthorID != callerID {
		caller, err := s.users.GetByID(ctx, callerID)
		if err != nil {
			return false, err
		}
		if caller == nil || !caller.IsAdmin() {
			deny(ctx, "deleteComment", "comment_id", commentID, "caller_id", callerID)
			return false, nil
		}
	}

	return s.comments.Delete(ctx, commentID)
}
