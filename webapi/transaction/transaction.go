package transaction

import (
	"errors"
	"strconv"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const saveFailed = "Error al guardar la transacción"

var errInvalidFilter = errors.New("invalid filter")

// Routes registers the transaction endpoints. loc decides which calendar
// day "today" is when a request omits the date.
func Routes(
	app *fiber.App,
	txSvc *txsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
	idempotency fiber.Handler,
	loc *time.Location,
) {
	today := func() time.Time { return time.Now().In(loc) }
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/transactions", protected, ListTransactions(txSvc, authSvc))
	app.Post("/transactions", protected, idempotency, CreateTransaction(txSvc, authSvc, today))
	app.Get("/transactions/:id", protected, GetTransaction(txSvc, authSvc))
	app.Put("/transactions/:id", protected, UpdateTransaction(txSvc, authSvc, today))
	app.Delete("/transactions/:id", protected, DeleteTransaction(txSvc, authSvc))
}

// toInput converts a validated request into service input.
func toInput(req *TransactionRequest, today func() time.Time) (txsvc.Input, error) {
	in := txsvc.Input{
		Target: transaction.Target{
			Kind: transaction.TargetKind(req.TargetType),
			ID:   uuid.MustParse(req.TargetID),
		},
		Amount:      *req.Amount,
		Description: req.Description,
		Type:        transaction.Type(req.Type),
		Date:        today(),
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		id := uuid.MustParse(*req.CategoryID)
		in.CategoryID = &id
	}
	if req.Date != "" {
		d, err := time.Parse(DateLayout, req.Date)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	return in, nil
}

// parseFilter reads the list query string.
func parseFilter(c *fiber.Ctx) (txsvc.Filter, error) {
	f := txsvc.Filter{
		TargetKind: transaction.TargetKind(c.Query("target_type")),
		Type:       transaction.Type(c.Query("type")),
	}
	if f.TargetKind != "" && !f.TargetKind.Valid() {
		return f, errInvalidFilter
	}
	if f.Type != "" && !f.Type.Valid() {
		return f, errInvalidFilter
	}
	if raw := c.Query("target_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, errInvalidFilter
		}
		f.TargetID = &id
	}
	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return f, errInvalidFilter
		}
		*dst = &d
	}
	switch raw := c.Query("category_id"); raw {
	case "":
	case UncategorizedFilter:
		f.Uncategorized = true
	default:
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, errInvalidFilter
		}
		f.CategoryID = &id
	}
	f.Query = c.Query("q")
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return f, errInvalidFilter
		}
		f.Limit = n
	}
	return f, nil
}

// ListTransactions returns the caller's transactions, newest first.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param target_type query string false "account or credit_card"
// @Param target_id query string false "Account or card ID"
// @Param type query string false "income or expense"
// @Param category_id query string false "Category ID or \"uncategorized\""
// @Param q query string false "Text contained in the description"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /transactions [get]
// @Security Bearer
func ListTransactions(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", nil, fiber.StatusBadRequest)
		}
		txs, err := txSvc.List(c.UserContext(), userID, filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", ToTransactionDTOs(txs))
	}
}

// CreateTransaction records an income or expense and updates the balance
// of its account or card.
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body TransactionRequest true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions [post]
// @Security Bearer
func CreateTransaction(
	txSvc *txsvc.Service,
	authSvc *authsvc.Service,
	today func() time.Time,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		input, err := common.BindAndValidate[TransactionRequest](c)
		if input == nil {
			return err
		}
		in, err := toInput(input, today)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, nil, fiber.StatusBadRequest)
		}
		tx, err := txSvc.Create(c.UserContext(), userID, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", ToTransactionDTO(tx))
	}
}

// GetTransaction returns one of the caller's transactions.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [get]
// @Security Bearer
func GetTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		tx, err := txSvc.Get(c.UserContext(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Transaction not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction", ToTransactionDTO(tx))
	}
}

// UpdateTransaction replaces a transaction. The old effect is reverted on
// the old target and the new effect applied on the new one.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body TransactionRequest true "Transaction"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [put]
// @Security Bearer
func UpdateTransaction(
	txSvc *txsvc.Service,
	authSvc *authsvc.Service,
	today func() time.Time,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		input, err := common.BindAndValidate[TransactionRequest](c)
		if input == nil {
			return err
		}
		in, err := toInput(input, today)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, nil, fiber.StatusBadRequest)
		}
		tx, err := txSvc.Update(c.UserContext(), userID, id, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, saveFailed, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", ToTransactionDTO(tx))
	}
}

// DeleteTransaction removes a transaction and reverts its effect.
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} common.ProblemDetails
// @Router /transactions/{id} [delete]
// @Security Bearer
func DeleteTransaction(txSvc *txsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		id, err := common.ParseID(c)
		if err != nil {
			return common.InvalidID(c)
		}
		if err := txSvc.Delete(c.UserContext(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Error al eliminar la transacción", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusNoContent, "Transaction deleted", nil)
	}
}
