package repository

import (
	"context"
	"errors"
	"strings"

	"echos/internal/cache"
	"echos/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users. Delete and
// UpdateRole enforce the protected-account invariant here, not only in
// policy, so it cannot be bypassed.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.Role) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user. Emails are stored lowercased so uniqueness is
// case-insensitive.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return models.NewValidationError("Email is required")
	}
	if !user.Role.Valid() {
		user.Role = models.RoleMember
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return storageErr(err)
	}
	return nil
}

// GetByID returns the user or nil when no such user exists.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return &user, nil
}

// GetByEmail looks a user up case-insensitively, returning nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return &user, nil
}

// List returns all users ordered by email.
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

// UpdateRole changes a user's role. Returns false when the user does not
// exist or currently holds the protected Admin role.
func (r *userRepository) UpdateRole(ctx context.Context, id uint, role models.Role) (bool, error) {
	if !role.Valid() {
		return false, models.NewValidationError("Unknown role")
	}

	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if user.IsAdmin() {
			return nil
		}
		if err := tx.Model(&user).Update("role", role).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, storageErr(err)
	}
	if changed {
		cache.InvalidateUser(ctx, id)
	}
	return changed, nil
}

// Delete removes a user and cascades to their own posts, but leaves their
// likes and comments on other users' content in place; those rows render as
// authored by a deleted user. Admin accounts are never deleted.
func (r *userRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if user.IsAdmin() {
			return nil
		}

		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("author_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := cascadeDeletePosts(tx, postIDs, nil); err != nil {
			return err
		}

		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, storageErr(err)
	}
	if deleted {
		cache.InvalidateUser(ctx, id)
		cache.InvalidatePostsList(ctx)
	}
	return deleted, nil
}
