package server

import (
	"echos/internal/middleware"
	"echos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags.
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}

// CreateTag handles POST /api/tags.
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	tag := &models.Tag{Name: req.Name, Color: req.Color}
	if err := s.tagService.CreateTag(c.Context(), caller.UserID, tag); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id.
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.tagService.DeleteTag(c.Context(), caller.UserID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "Tag", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
