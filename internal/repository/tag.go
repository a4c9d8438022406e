package repository

import (
	"context"
	"errors"
	"regexp"

	"echos/internal/cache"
	"echos/internal/models"

	"gorm.io/gorm"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TagRepository defines persistence operations for the tag catalog.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create persists a tag. Name must be non-empty and color, when given, must
// be a hex string; it defaults otherwise.
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.Name == "" {
		return models.NewValidationError("Tag name is required")
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}
	if !hexColorRe.MatchString(tag.Color) {
		return models.NewValidationError("Tag color must be a hex string like #0d6efd")
	}

	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return storageErr(err)
	}
	cache.InvalidateTagsList(ctx)
	return nil
}

// GetByID returns the tag or nil when no such tag exists.
func (r *tagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return &tag, nil
}

// List returns all tags ordered by name.
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := cache.Aside(ctx, cache.TagsListKey(), &tags, cache.TagsListTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return tags, nil
}

// Delete removes the tag and its post links. Returns false when the tag
// does not exist. Posts themselves are untouched.
func (r *tagRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, storageErr(err)
	}
	if deleted {
		cache.InvalidateTagsList(ctx)
	}
	return deleted, nil
}
