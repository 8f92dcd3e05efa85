package account

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/middleware"
	accountsvc "github.com/amirasaad/fintrack/pkg/service/account"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const saveFailed = "Error al guardar la cuenta"

// Routes registers the account endpoints. All of them require a token;
// creation additionally honours Idempotency-Key.
//
//   - GET    /accounts      : list the caller's accounts
//   - POST   /accounts      : open an account
//   - GET    /accounts/:id  : one account
//   - PUT    /accounts/:id  : edit name, type or initial balance
//   - DELETE /accounts/:id  : delete the account and its transactions
func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
	idempotency fiber.Handler,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/accounts", protected, ListAccounts(accountSvc, authSvc))
	app.Post("/accounts", protected, idempotency, CreateAccount(accountSvc, authSvc))
	app.Get("/accounts/:id", protected, GetAccount(accountSvc, authSvc))
	app.Put("/accounts/:id", protected, UpdateAccount(accountSvc, authSvc))
	app.Delete("/accounts/:id", protected, DeleteAccount(accountSvc, authSvc))
}

// ListAccounts returns the caller's accounts ordered by name.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		accounts, err := accountSvc.List(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", ToAccountDTOs(accounts))
	}
}

// CreateAccount opens an account whose current balance starts at the
// initial balance.
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body CreateAccountRequest true "Account"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /accounts [post]
// @Security Bearer
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		initial := decimal.Zero
		if input.InitialBalance != nil {
			initial = *input.InitialBalance
		}
		a, err := accountSvc.Create(c.UserContext(), userID, input.Name, account.Type(input.Type), initial)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountDTO(a))
	}
}

// GetAccount returns one of the caller's accounts.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		a, err := accountSvc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Account not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", ToAccountDTO(a))
	}
}

// UpdateAccount edits an account. Changing the initial balance moves the
// current balance by the same difference.
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/{id} [put]
// @Security Bearer
func UpdateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Update(c.UserContext(), userID, id, accountsvc.Update{
			Name:           input.Name,
			Type:           input.Type,
			InitialBalance: input.InitialBalance,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", ToAccountDTO(a))
	}
}

// DeleteAccount removes an account together with its transactions.
// @Summary Delete an account
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /accounts/{id} [delete]
// @Security Bearer
func DeleteAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		if err := accountSvc.Delete(c.UserContext(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Error al eliminar la cuenta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Account deleted", nil)
	}
}
