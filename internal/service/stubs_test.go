package service

import (
	"context"
	"errors"
	"testing"

	"echos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post, []uint) error
	getByIDFn            func(context.Context, uint) (*models.Post, error)
	existsFn             func(context.Context, uint) (bool, error)
	listFn               func(context.Context) ([]*models.Post, error)
	updateFn             func(context.Context, uint, string, string) (bool, error)
	updateLeaderFieldsFn func(context.Context, uint, *bool, *models.Importance) (bool, error)
	deleteFn             func(context.Context, uint) (bool, error)
	toggleLikeFn         func(context.Context, uint, uint) (models.LikeState, error)
	hasLikedFn           func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, tagIDs []uint) error {
	return s.createFn(ctx, post, tagIDs)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, title, content string) (bool, error) {
	return s.updateFn(ctx, id, title, content)
}
func (s *postRepoStub) UpdateLeaderFields(ctx context.Context, id uint, isRead *bool, importance *models.Importance) (bool, error) {
	return s.updateLeaderFieldsFn(ctx, id, isRead, importance)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID uint) (models.LikeState, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	return s.hasLikedFn(ctx, postID, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post, _ []uint) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		updateFn:  func(_ context.Context, _ uint, _, _ string) (bool, error) { return true, nil },
		updateLeaderFieldsFn: func(_ context.Context, _ uint, _ *bool, _ *models.Importance) (bool, error) {
			return true, nil
		},
		deleteFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (models.LikeState, error) { return models.LikeAdded, nil },
		hasLikedFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	listFn       func(context.Context) ([]models.User, error)
	updateRoleFn func(context.Context, uint, models.Role) (bool, error)
	deleteFn     func(context.Context, uint) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role models.Role) (bool, error) {
	return s.updateRoleFn(ctx, id, role)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}

// usersByID returns a user repo stub resolving GetByID from a fixed set.
func usersByID(users ...*models.User) *userRepoStub {
	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return byID[id], nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn:       func(_ context.Context) ([]models.User, error) { return nil, nil },
		updateRoleFn: func(_ context.Context, _ uint, _ models.Role) (bool, error) { return true, nil },
		deleteFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, uint, string) (bool, error)
	deleteFn     func(context.Context, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, id uint, content string) (bool, error) {
	return s.updateFn(ctx, id, content)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(_ context.Context, _ uint, _ string) (bool, error) { return true, nil },
		deleteFn:     func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	createFn  func(context.Context, *models.Tag) error
	getByIDFn func(context.Context, uint) (*models.Tag, error)
	listFn    func(context.Context) ([]models.Tag, error)
	deleteFn  func(context.Context, uint) (bool, error)
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}
func (s *tagRepoStub) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteFn(ctx, id)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:  func(_ context.Context, _ *models.Tag) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Tag, error) { return &models.Tag{}, nil },
		listFn:    func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		deleteFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}
