package auth

import (
	"errors"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the public auth endpoints. limiter guards the
// credential endpoints.
func Routes(
	app *fiber.App,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	cfg *config.App,
	limiter fiber.Handler,
) {
	app.Post("/auth/signup", limiter, SignUp(authSvc, userSvc, cfg.Auth.Jwt))
	app.Post("/auth/login", limiter, Login(authSvc, cfg.Auth.Jwt))
	app.Post("/auth/logout", Logout(cfg.Auth.Jwt))
	app.Get("/auth/beta", Beta(userSvc))
}

func setSession(c *fiber.Ctx, cfg *config.Jwt, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.Expiry),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate with email or username and password. The token is also set as the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service, cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), input.Identity, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrUserUnauthorized) {
				return common.ProblemDetailsJSON(c, "Invalid identity or password", err, common.MsgInvalidCredentials)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, common.MsgUnexpected)
		}
		token, err := authSvc.GenerateToken(c.UserContext(), u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, common.MsgUnexpected)
		}
		setSession(c, cfg, token)
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}

// SignUp registers a user, creates the default profile and starts a session.
// @Summary Sign up
// @Description Register while the beta has free places.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/signup [post]
func SignUp(authSvc *authsvc.Service, userSvc *usersvc.Service, cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignUpInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.SignUp(c.UserContext(), input.Username, input.Email, input.Password, input.ConfirmPassword)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Sign up failed", err, common.AuthMessage(err))
		}
		token, err := authSvc.GenerateToken(c.UserContext(), u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, common.MsgUnexpected)
		}
		setSession(c, cfg, token)
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User created", fiber.Map{
			"user":  u,
			"token": token,
		})
	}
}

// Logout clears the session cookie.
// @Summary Logout
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func Logout(cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HTTPOnly: true,
		})
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "", nil)
	}
}

// Beta reports how many places the beta has left.
// @Summary Beta status
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Router /auth/beta [get]
func Beta(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := userSvc.BetaStatus(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, common.MsgUnexpected)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Beta status", status)
	}
}
