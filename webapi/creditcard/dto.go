package creditcard

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCardRequest represents the request body for adding a credit card.
type CreateCardRequest struct {
	Name            string           `json:"name" validate:"required,max=100"`
	LimitAmount     *decimal.Decimal `json:"limit_amount" validate:"required"`
	CurrentSpent    *decimal.Decimal `json:"current_spent"`
	BillingCycleDay int              `json:"billing_cycle_day" validate:"required,min=1,max=31"`
}

// UpdateCardRequest represents the request body for editing a card.
// The spent figure is not editable; it follows the card's transactions.
type UpdateCardRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=100"`
	LimitAmount     *decimal.Decimal `json:"limit_amount"`
	BillingCycleDay *int             `json:"billing_cycle_day" validate:"omitempty,min=1,max=31"`
}

// CardDTO is the API representation of a credit card.
type CardDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	LimitAmount     decimal.Decimal `json:"limit_amount"`
	CurrentSpent    decimal.Decimal `json:"current_spent"`
	Available       decimal.Decimal `json:"available"`
	UsagePercent    decimal.Decimal `json:"usage_percent"`
	BillingCycleDay int             `json:"billing_cycle_day"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func ToCardDTO(c *creditcard.CreditCard) *CardDTO {
	return &CardDTO{
		ID:              c.ID,
		Name:            c.Name,
		LimitAmount:     c.LimitAmount,
		CurrentSpent:    c.CurrentSpent,
		Available:       c.Available(),
		UsagePercent:    creditcard.UsagePercent(c.LimitAmount, c.CurrentSpent).Round(2),
		BillingCycleDay: c.BillingCycleDay,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func ToCardDTOs(cards []*creditcard.CreditCard) []*CardDTO {
	out := make([]*CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, ToCardDTO(c))
	}
	return out
}
