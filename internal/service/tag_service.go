package service

import (
	"context"

	"echos/internal/models"
	"echos/internal/repository"
)

// TagService wraps the tag catalog with role policy. The catalog is readable
// by everyone; Leaders and Admins curate it.
type TagService struct {
	tags  repository.TagRepository
	users repository.UserRepository
}

// NewTagService returns a TagService over the given repositories.
func NewTagService(tags repository.TagRepository, users repository.UserRepository) *TagService {
	return &TagService{tags: tags, users: users}
}

// ListTags returns all tags ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

// GetTag returns the tag or nil when absent.
func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// CreateTag adds a tag to the catalog. Requires Leader or above.
func (s *TagService) CreateTag(ctx context.Context, callerID uint, tag *models.Tag) error {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller == nil || !caller.Role.AtLeast(models.RoleLeader) {
		deny(ctx, "createTag", "caller_id", callerID)
		return models.NewUnauthorizedError("Only leaders can manage tags")
	}

	return s.tags.Create(ctx, tag)
}

// DeleteTag removes a tag and its post links. Requires Leader or above;
// reports false when the tag does not exist.
func (s *TagService) DeleteTag(ctx context.Context, callerID, tagID uint) (bool, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return false, err
	}
	if caller == nil || !caller.Role.AtLeast(models.RoleLeader) {
		deny(ctx, "deleteTag", "tag_id", tagID, "caller_id", callerID)
		return false, nil
	}

	return s.tags.Delete(ctx, tagID)
}
