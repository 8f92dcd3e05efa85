package creditcard

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	cardsvc "github.com/amirasaad/fintrack/pkg/service/creditcard"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const saveFailed = "Error al guardar la tarjeta"

// Routes registers the credit card endpoints under /cards.
func Routes(
	app *fiber.App,
	cardSvc *cardsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
	idempotency fiber.Handler,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/cards", protected, ListCards(cardSvc, authSvc))
	app.Post("/cards", protected, idempotency, CreateCard(cardSvc, authSvc))
	app.Get("/cards/:id", protected, GetCard(cardSvc, authSvc))
	app.Put("/cards/:id", protected, UpdateCard(cardSvc, authSvc))
	app.Delete("/cards/:id", protected, DeleteCard(cardSvc, authSvc))
}

// ListCards returns the caller's credit cards.
// @Summary List credit cards
// @Tags cards
// @Produce json
// @Success 200 {object} common.Response
// @Router /cards [get]
// @Security Bearer
func ListCards(cardSvc *cardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		cards, err := cardSvc.List(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list cards", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Cards", ToCardDTOs(cards))
	}
}

// CreateCard adds a credit card.
// @Summary Create a credit card
// @Tags cards
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body CreateCardRequest true "Card"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /cards [post]
// @Security Bearer
func CreateCard(cardSvc *cardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		input, err := common.BindAndValidate[CreateCardRequest](c)
		if input == nil {
			return err
		}
		spent := decimal.Zero
		if input.CurrentSpent != nil {
			spent = *input.CurrentSpent
		}
		card, err := cardSvc.Create(
			c.UserContext(), userID, input.Name, *input.LimitAmount, spent, input.BillingCycleDay,
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Card created", ToCardDTO(card))
	}
}

// GetCard returns one of the caller's cards.
// @Summary Get a credit card
// @Tags cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /cards/{id} [get]
// @Security Bearer
func GetCard(cardSvc *cardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		card, err := cardSvc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Card not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Card", ToCardDTO(card))
	}
}

// UpdateCard edits the name, limit or billing day of a card.
// @Summary Update a credit card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body UpdateCardRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /cards/{id} [put]
// @Security Bearer
func UpdateCard(cardSvc *cardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		input, err := common.BindAndValidate[UpdateCardRequest](c)
		if input == nil {
			return err
		}
		card, err := cardSvc.Update(c.UserContext(), userID, id, cardsvc.Update{
			Name:            input.Name,
			LimitAmount:     input.LimitAmount,
			BillingCycleDay: input.BillingCycleDay,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Card updated", ToCardDTO(card))
	}
}

// DeleteCard removes a card and the transactions charged to it.
// @Summary Delete a credit card
// @Tags cards
// @Param id path string true "Card ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /cards/{id} [delete]
// @Security Bearer
func DeleteCard(cardSvc *cardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		if err := cardSvc.Delete(c.UserContext(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Error al eliminar la tarjeta", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Card deleted", nil)
	}
}
