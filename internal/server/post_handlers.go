package server

import (
	"echos/internal/middleware"
	"echos/internal/models"
	"echos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postBody struct {
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	TagIDs     []uint             `json:"tag_ids"`
	IsRead     *bool              `json:"is_read"`
	Importance *models.Importance `json:"importance"`
}

// GetPosts handles GET /api/posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post == nil {
		return respondNotFound(c, "Post", id)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		CallerID:   caller.UserID,
		Title:      req.Title,
		Content:    req.Content,
		TagIDs:     req.TagIDs,
		IsRead:     req.IsRead,
		Importance: req.Importance,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Editing a post that is missing or
// not the caller's own answers 404 either way.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postBody
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		CallerID: caller.UserID,
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "Post", id)
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.postService.DeletePost(c.Context(), caller.UserID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "Post", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller := middleware.CallerIdentity(c)
	state, err := s.postService.ToggleLike(c.Context(), caller.UserID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"state": state,
		"liked": state == models.LikeAdded,
	})
}

// GetLikeStatus handles GET /api/posts/:id/like.
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller := middleware.CallerIdentity(c)
	liked, err := s.postService.HasLiked(c.Context(), caller.UserID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// SetPostStatus handles PUT /api/posts/:id/status, the leader-only read flag
// and importance level.
func (s *Server) SetPostStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		IsRead     *bool              `json:"is_read"`
		Importance *models.Importance `json:"importance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.postService.SetPostStatus(c.Context(), caller.UserID, id, req.IsRead, req.Importance)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "Post", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
