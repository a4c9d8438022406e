package server

import (
	"echos/internal/middleware"
	"echos/internal/models"
	"echos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		CallerID: caller.UserID,
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.commentService.UpdateComment(c.Context(), caller.UserID, id, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "Comment", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteComment handles DELETE /api/comments/:id.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.commentService.DeleteComment(c.Context(), caller.UserID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "Comment", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
