// Package middleware holds the Fiber middleware shared by the routes.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/amirasaad/fintrack/pkg/config"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserKey is the Locals key under which the verified *jwt.Token is stored.
const UserKey = "user"

func tokenLookup(cfg *config.Jwt) string {
	if cfg.CookieName == "" {
		return "header:Authorization"
	}
	return "header:Authorization,cookie:" + cfg.CookieName
}

// JwtProtected rejects API requests without a valid token taken from the
// Authorization header or the session cookie.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ContextKey:   UserKey,
		TokenLookup:  tokenLookup(cfg),
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
	})
}

// PageProtected is JwtProtected for HTML pages: failures redirect to the
// login page instead of returning problem details.
func PageProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ContextKey:  UserKey,
		TokenLookup: tokenLookup(cfg),
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	title := "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) ||
		strings.EqualFold(err.Error(), jwtware.ErrJWTMissingOrMalformed.Error()) {
		status = fiber.StatusBadRequest
		title = "Missing or malformed JWT"
	}
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}

// RedirectIfAuthenticated sends visitors holding a valid session cookie to
// the dashboard. Used on the login and sign-up pages.
func RedirectIfAuthenticated(cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(cfg.CookieName)
		if raw == "" {
			return c.Next()
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			return []byte(cfg.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return c.Next()
		}
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
}

// BetaStatusProvider reports whether registrations are still open.
type BetaStatusProvider interface {
	BetaStatus(ctx context.Context) (usersvc.BetaStatus, error)
}

// BetaGate redirects to /beta-full once the user cap has been reached. A
// failed lookup lets the request through; sign-up itself enforces the cap.
func BetaGate(beta BetaStatusProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := beta.BetaStatus(c.UserContext())
		if err == nil && status.Full {
			return c.Redirect("/beta-full", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
