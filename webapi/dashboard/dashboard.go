package dashboard

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	dashboardsvc "github.com/amirasaad/fintrack/pkg/service/dashboard"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	dashboardSvc *dashboardsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	app.Get("/dashboard/summary", middleware.JwtProtected(cfg.Auth.Jwt), Summary(dashboardSvc, authSvc))
}

// Summary returns the dashboard figures for the current month.
// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /dashboard/summary [get]
// @Security Bearer
func Summary(dashboardSvc *dashboardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		s, err := dashboardSvc.Summary(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to load dashboard", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard", s)
	}
}
