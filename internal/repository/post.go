package repository

import (
	"context"
	"errors"
	"time"

	"echos/internal/cache"
	"echos/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their
// dependent rows (post_tags, likes, comments).
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id uint, title, content string) (bool, error)
	UpdateLeaderFields(ctx context.Context, id uint, isRead *bool, importance *models.Importance) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	ToggleLike(ctx context.Context, postID, userID uint) (models.LikeState, error)
	HasLiked(ctx context.Context, postID, userID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post and its tag links in one transaction. Title and
// content must be non-empty and author and tags must resolve to existing
// rows, otherwise a validation error is returned.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagIDs []uint) error {
	if post.Title == "" || post.Content == "" {
		return models.NewValidationError("Title and content are required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var authorCount int64
		if err := tx.Model(&models.User{}).Where("id = ?", post.AuthorID).Count(&authorCount).Error; err != nil {
			return err
		}
		if authorCount == 0 {
			return models.NewValidationError("Author does not exist")
		}

		if len(tagIDs) > 0 {
			var tagCount int64
			if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&tagCount).Error; err != nil {
				return err
			}
			if tagCount != int64(len(tagIDs)) {
				return models.NewValidationError("One or more tags do not exist")
			}
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, tagID := range tagIDs {
			link := models.PostTag{PostID: post.ID, TagID: tagID, CreatedAt: now}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr(err)
	}

	cache.InvalidatePostsList(ctx)
	return nil
}

// GetByID returns the post with author, tags, likes (with liking users), and
// comments (with authors) resolved, or nil when no such post exists.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Tags").
			Preload("Likes").
			Preload("Likes.User").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Comments.Author").
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}

	post.LikesCount = len(post.Likes)
	return &post, nil
}

// Exists reports whether a post row with the given id is present. Used where
// the full preloaded aggregate would be wasted.
func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, storageErr(err)
	}
	return count > 0, nil
}

// List returns all posts newest first with author and like collections
// loaded for display counts. Comments are deliberately not loaded here.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Tags").
			Preload("Likes").
			Order("created_at DESC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, storageErr(err)
	}

	for _, p := range posts {
		p.LikesCount = len(p.Likes)
	}
	return posts, nil
}

// Update sets title, content, and updated_at on an existing post. It returns
// false when the post no longer exists; a concurrent delete simply loses.
func (r *postRepository) Update(ctx context.Context, id uint, title, content string) (bool, error) {
	if title == "" || content == "" {
		return false, models.NewValidationError("Title and content are required")
	}

	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":      title,
			"content":    content,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	cache.InvalidatePost(ctx, id)
	return true, nil
}

// UpdateLeaderFields sets the read flag and importance level. Fields passed
// as nil are left untouched. Returns false when the post does not exist.
func (r *postRepository) UpdateLeaderFields(ctx context.Context, id uint, isRead *bool, importance *models.Importance) (bool, error) {
	updates := map[string]interface{}{}
	if isRead != nil {
		updates["is_read"] = *isRead
	}
	if importance != nil {
		if !importance.Valid() {
			return false, models.NewValidationError("Unknown importance level")
		}
		updates["importance"] = *importance
	}
	if len(updates) == 0 {
		return false, models.NewValidationError("Nothing to update")
	}

	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return false, storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	cache.InvalidatePost(ctx, id)
	return true, nil
}

// Delete removes the post and every dependent row (post_tags, likes,
// comments) in one transaction. Returns false when the post does not exist.
func (r *postRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return cascadeDeletePosts(tx, []uint{id}, &deleted)
	})
	if err != nil {
		return false, storageErr(err)
	}
	if deleted {
		cache.InvalidatePost(ctx, id)
	}
	return deleted, nil
}

// cascadeDeletePosts removes the given posts and all rows referencing them.
// Must run inside a transaction. deleted, when non-nil, reports whether any
// post row was actually removed.
func cascadeDeletePosts(tx *gorm.DB, postIDs []uint, deleted *bool) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	res := tx.Where("id IN ?", postIDs).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if deleted != nil {
		*deleted = res.RowsAffected > 0
	}
	return nil
}

// ToggleLike flips the like state for the (post, user) pair and reports the
// transition performed. The unique (post_id, user_id) index is the only
// concurrency control: the insert either wins the pair or affects no rows,
// in which case the toggle proceeds as a delete. There is no separate
// existence check before the write.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uint) (models.LikeState, error) {
	db := r.db.WithContext(ctx)

	// Two rounds cover the race where the pair is removed between our
	// failed insert and the delete.
	for attempt := 0; attempt < 2; attempt++ {
		res := db.Exec(
			`INSERT INTO likes (post_id, user_id, created_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT (post_id, user_id) DO NOTHING`,
			postID, userID, time.Now().UTC(),
		)
		if res.Error != nil {
			return "", storageErr(res.Error)
		}
		if res.RowsAffected > 0 {
			cache.InvalidatePost(ctx, postID)
			return models.LikeAdded, nil
		}

		res = db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return "", storageErr(res.Error)
		}
		if res.RowsAffected > 0 {
			cache.InvalidatePost(ctx, postID)
			return models.LikeRemoved, nil
		}
	}

	return "", models.NewStorageError(errors.New("like toggle could not settle"))
}

// HasLiked reports whether the user currently likes the post.
func (r *postRepository) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, storageErr(err)
	}
	return count > 0, nil
}
