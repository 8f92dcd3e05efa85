package common

import (
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CurrentUserID returns the id carried by the verified token that the JWT
// middleware stored on c.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals(middleware.UserKey).(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return authSvc.GetCurrentUserId(token)
}

// Unauthorized writes the 401 used when no user can be resolved.
func Unauthorized(c *fiber.Ctx) error {
	return ProblemDetailsJSON(c, "Unauthorized", nil, MsgUnauthenticated, fiber.StatusUnauthorized)
}

// ParseID parses the :id route parameter.
func ParseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// InvalidID writes the 400 used for malformed :id parameters.
func InvalidID(c *fiber.Ctx) error {
	return ProblemDetailsJSON(c, "Invalid ID", nil, "El identificador no es válido", fiber.StatusBadRequest)
}
