package service

import (
	"context"
	"fmt"

	"echos/internal/middleware"
	"echos/internal/models"
	"echos/internal/repository"
)

// PostService wraps post persistence with ownership and role policy.
type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

// NewPostService returns a PostService over the given repositories.
func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// CreatePostInput carries the fields a caller may set on a new post. IsRead
// and Importance only take effect for Leader and Admin callers.
type CreatePostInput struct {
	CallerID   uint
	Title      string
	Content    string
	TagIDs     []uint
	IsRead     *bool
	Importance *models.Importance
}

// UpdatePostInput carries an edit to an existing post.
type UpdatePostInput struct {
	CallerID uint
	PostID   uint
	Title    string
	Content  string
}

func validatePostBody(title, content string) error {
	if title == "" || content == "" {
		return models.NewValidationError("Title and content are required")
	}
	if len(title) > MaxTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", MaxTitleLen))
	}
	if len(content) > MaxContentLen {
		return models.NewValidationError(fmt.Sprintf("Content too long (max %d characters)", MaxContentLen))
	}
	return nil
}

// CreatePost creates a post authored by the caller. Leader-only fields set by
// a Member are dropped without error; the request otherwise proceeds.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostBody(in.Title, in.Content); err != nil {
		return nil, err
	}

	caller, err := s.users.GetByID(ctx, in.CallerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, models.NewUnauthorizedError("Unknown caller")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: caller.ID,
	}
	if caller.Role.AtLeast(models.RoleLeader) {
		if in.Importance != nil && !in.Importance.Valid() {
			return nil, models.NewValidationError("Unknown importance level")
		}
		if in.IsRead != nil {
			post.IsRead = *in.IsRead
		}
		post.Importance = in.Importance
	} else if in.IsRead != nil || in.Importance != nil {
		// Permissive no-op for Member callers, not an error.
		middleware.Logger.DebugContext(ctx, "dropping leader-only fields from member request",
			"operation", "createPost", "caller_id", caller.ID)
	}

	if err := s.posts.Create(ctx, post, in.TagIDs); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// GetPost returns the fully resolved post, or nil when absent.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns all posts newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// UpdatePost edits a post's title and content. Only the author may edit;
// a missing post and a foreign post both report false.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (bool, error) {
	if err := validatePostBody(in.Title, in.Content); err != nil {
		return false, err
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return false, err
	}
	if post == nil {
		middleware.Logger.WarnContext(ctx, "update of missing post",
			"operation", "updatePost", "post_id", in.PostID, "caller_id", in.CallerID)
		return false, nil
	}
	if post.AuthorID != in.CallerID {
		deny(ctx, "updatePost", "post_id", in.PostID, "caller_id", in.CallerID)
		return false, nil
	}

	return s.posts.Update(ctx, in.PostID, in.Title, in.Content)
}

// DeletePost removes a post with its likes, comments, and tag links. The
// author may delete their own post; an Admin may delete any post.
func (s *PostService) DeletePost(ctx context.Context, callerID, postID uint) (bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		middleware.Logger.WarnContext(ctx, "delete of missing post",
			"operation", "deletePost", "post_id", postID, "caller_id", callerID)
		return false, nil
	}
	if post.AuthorID != callerID {
		caller, err := s.users.GetByID(ctx, callerID)
		if err != nil {
			return false, err
		}
		if caller == nil || !caller.IsAdmin() {
			deny(ctx, "deletePost", "post_id", postID, "caller_id", callerID)
			return false, nil
		}
	}

	return s.posts.Delete(ctx, postID)
}

// SetPostStatus sets the leader-only read flag and importance level. Callers
// below Leader are denied.
func (s *PostService) SetPostStatus(ctx context.Context, callerID, postID uint, isRead *bool, importance *models.Importance) (bool, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return false, err
	}
	if caller == nil || !caller.Role.AtLeast(models.RoleLeader) {
		deny(ctx, "setPostStatus", "post_id", postID, "caller_id", callerID)
		return false, nil
	}

	return s.posts.UpdateLeaderFields(ctx, postID, isRead, importance)
}

// ToggleLike flips the caller's like on the post and reports the transition.
// The post must exist; the caller's account must still exist.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID uint) (models.LikeState, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return "", err
	}
	if caller == nil {
		return "", models.NewUnauthorizedError("Unknown caller")
	}

	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return "", err
	}
	if !exists {
		middleware.Logger.WarnContext(ctx, "like toggle on missing post",
			"operation", "toggleLike", "post_id", postID, "caller_id", callerID)
		return "", models.NewNotFoundError("Post", postID)
	}

	state, err := s.posts.ToggleLike(ctx, postID, callerID)
	if err != nil {
		return "", err
	}
	middleware.LikeToggles.WithLabelValues(string(state)).Inc()
	return state, nil
}

// HasLiked reports whether the caller currently likes the post.
func (s *PostService) HasLiked(ctx context.Context, callerID, postID uint) (bool, error) {
	return s.posts.HasLiked(ctx, postID, callerID)
}
