package middleware

import (
	"strconv"
	"strings"

	"echos/internal/config"
	"echos/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// Identity is the caller identity extracted from a verified token. The core
// trusts these three fields and does not re-verify credentials.
type Identity struct {
	UserID uint
	Role   models.Role
	Email  string
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// On success it stores userID, userRole, and userEmail in Fiber locals.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	identity, err := ParseToken(parts[1], cfg.JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	c.Locals("userID", identity.UserID)
	c.Locals("userRole", identity.Role)
	c.Locals("userEmail", identity.Email)

	return c.Next()
}

// ParseToken verifies an HMAC-signed token and extracts the caller identity.
func ParseToken(tokenString, secret string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	identity := &Identity{UserID: uint(userID)}

	if role, ok := claims["role"].(string); ok {
		identity.Role = models.Role(role)
	}
	if !identity.Role.Valid() {
		identity.Role = models.RoleMember
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}

// CallerIdentity returns the identity stored by AuthRequired.
func CallerIdentity(c *fiber.Ctx) Identity {
	id := Identity{Role: models.RoleMember}
	if v, ok := c.Locals("userID").(uint); ok {
		id.UserID = v
	}
	if v, ok := c.Locals("userRole").(models.Role); ok && v.Valid() {
		id.Role = v
	}
	if v, ok := c.Locals("userEmail").(string); ok {
		id.Email = v
	}
	return id
}
