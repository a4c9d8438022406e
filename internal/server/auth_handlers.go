package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"echos/internal/cache"
	"echos/internal/middleware"
	"echos/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// Register handles POST /api/auth/register. New accounts always start as
// Member; promotion happens at login or through the admin surface.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid email is required"))
	}
	if len(req.Password) < minPasswordLen {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLen)))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleMember,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		if models.HasCode(err, models.CodeValidation) {
			return models.RespondWithError(c, fiber.StatusConflict, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login. Accounts whose email is configured in
// ADMIN_EMAILS are promoted to Admin here, at verification time.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := s.promoteConfiguredAdmin(c, user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// promoteConfiguredAdmin upgrades the account to Admin when its email is in
// the ADMIN_EMAILS list. The update writes the role column directly: the
// repository's UpdateRole refuses to touch Admin accounts and this path must
// stay re-runnable for accounts already promoted.
func (s *Server) promoteConfiguredAdmin(c *fiber.Ctx, user *models.User) error {
	if user.IsAdmin() {
		return nil
	}
	if _, ok := s.config.AdminEmailSet()[user.Email]; !ok {
		return nil
	}

	if err := s.db.WithContext(c.Context()).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("role", models.RoleAdmin).Error; err != nil {
		return err
	}
	user.Role = models.RoleAdmin

	// Policy checks may have cached the pre-promotion role.
	cache.InvalidateUser(c.Context(), user.ID)

	middleware.Logger.InfoContext(c.UserContext(), "account promoted to admin via configuration",
		"user_id", user.ID)
	return nil
}

// generateToken creates a signed JWT carrying the caller identity the rest
// of the system trusts: subject, role, and email.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"role":  string(user.Role),
		"email": user.Email,
		"exp":   now.Add(time.Hour * 24 * 7).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
