package repository

import (
	"context"
	"errors"
	"time"

	"echos/internal/cache"
	"echos/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Update(ctx context.Context, id uint, content string) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a comment. Content must be non-empty and the post must
// exist.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.Content == "" {
		return models.NewValidationError("Content is required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postCount int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&postCount).Error; err != nil {
			return err
		}
		if postCount == 0 {
			return models.NewValidationError("Post does not exist")
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return storageErr(err)
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// GetByID returns the comment with its author resolved, or nil when absent.
// Author stays nil for comments whose account has been deleted.
func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return &comment, nil
}

// ListByPost returns the post's comments oldest first with authors resolved.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return comments, nil
}

// Update replaces the comment's content, stamping updated_at. Returns false
// when the comment no longer exists.
func (r *commentRepository) Update(ctx context.Context, id uint, content string) (bool, error) {
	if content == "" {
		return false, models.NewValidationError("Content is required")
	}

	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, storageErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the comment. Returns false when it does not exist.
func (r *commentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return false, storageErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
