package ledger

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	ledgersvc "github.com/amirasaad/fintrack/pkg/service/ledger"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DriftDTO reports one account or card whose stored figure is out of step
// with its transactions.
type DriftDTO struct {
	Kind       string          `json:"kind"`
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Stored     decimal.Decimal `json:"stored"`
	Expected   decimal.Decimal `json:"expected"`
	Difference decimal.Decimal `json:"difference"`
}

func toDriftDTOs(drifts []ledgersvc.Drift) []DriftDTO {
	out := make([]DriftDTO, 0, len(drifts))
	for _, d := range drifts {
		out = append(out, DriftDTO{
			Kind:       string(d.Kind),
			ID:         d.ID,
			Name:       d.Name,
			Stored:     d.Stored,
			Expected:   d.Expected,
			Difference: d.Difference(),
		})
	}
	return out
}

func Routes(
	app *fiber.App,
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/ledger/check", protected, Check(ledgerSvc, authSvc))
	app.Post("/ledger/repair", protected, Repair(ledgerSvc, authSvc))
}

// Check lists balances that disagree with their transactions.
// @Summary Check balances
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response
// @Router /ledger/check [get]
// @Security Bearer
func Check(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		drifts, err := ledgerSvc.Check(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to check balances", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Ledger checked", toDriftDTOs(drifts))
	}
}

// Repair recomputes drifted balances from transactions and returns what
// was corrected.
// @Summary Repair balances
// @Tags ledger
// @Produce json
// @Success 200 {object} common.Response
// @Router /ledger/repair [post]
// @Security Bearer
func Repair(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.Unauthorized(c)
		}
		fixed, err := ledgerSvc.Repair(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to repair balances", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Ledger repaired", toDriftDTOs(fixed))
	}
}
