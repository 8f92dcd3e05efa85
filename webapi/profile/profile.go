package profile

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	profilesvc "github.com/amirasaad/fintrack/pkg/service/profile"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, profileSvc *profilesvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Get("/profile", middleware.JwtProtected(cfg.Auth.Jwt), GetProfile(profileSvc, authSvc))
	app.Put("/profile", middleware.JwtProtected(cfg.Auth.Jwt), UpdateProfile(profileSvc, authSvc))
}

func profileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, profilesvc.ErrCreateFailed) {
		return common.ProblemDetailsJSON(c, "Profile unavailable", err, common.MsgProfileNotCreated)
	}
	return common.ProblemDetailsJSON(c, "Error al guardar el perfil", err)
}

// GetProfile returns the caller's profile, creating the default one on
// first access.
// @Summary Get profile
// @Tags profile
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /profile [get]
// @Security Bearer
func GetProfile(profileSvc *profilesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		p, err := profileSvc.Ensure(c.UserContext(), userID)
		if err != nil {
			return profileError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile", ToProfileDTO(p))
	}
}

// UpdateProfile edits the display name, currency or avatar.
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /profile [put]
// @Security Bearer
func UpdateProfile(profileSvc *profilesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		input, err := common.BindAndValidate[UpdateProfileRequest](c)
		if input == nil {
			return err
		}
		p, err := profileSvc.Update(c.UserContext(), userID, dto.ProfileUpdate{
			Username:  input.Username,
			Currency:  input.Currency,
			AvatarURL: input.AvatarURL,
		})
		if err != nil {
			return profileError(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", ToProfileDTO(p))
	}
}
