package server

import (
	"echos/internal/middleware"
	"echos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/admin/users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	caller := middleware.CallerIdentity(c)
	users, err := s.adminService.ListUsers(c.Context(), caller.UserID)
	if err != nil {
		if models.HasCode(err, models.CodeUnauthorized) {
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// ChangeUserRole handles PUT /api/admin/users/:id/role.
func (s *Server) ChangeUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.adminService.ChangeUserRole(c.Context(), caller.UserID, id, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "User", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	caller := middleware.CallerIdentity(c)
	ok, err := s.adminService.DeleteUser(c.Context(), caller.UserID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return respondNotFound(c, "User", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
