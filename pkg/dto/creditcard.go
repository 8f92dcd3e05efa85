package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCardCreate is a DTO for registering a card.
type CreditCardCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	LimitAmount     decimal.Decimal
	OpeningSpent    decimal.Decimal
	CurrentSpent    decimal.Decimal
	BillingCycleDay int
}

// CreditCardUpdate carries the editable card fields. Spent moves only
// through AdjustSpent.
type CreditCardUpdate struct {
	Name            *string
	LimitAmount     *decimal.Decimal
	BillingCycleDay *int
}

// CreditCardRead is a card with its computed available credit.
type CreditCardRead struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Name            string          `json:"name"`
	LimitAmount     decimal.Decimal `json:"limit_amount"`
	OpeningSpent    decimal.Decimal `json:"opening_spent"`
	CurrentSpent    decimal.Decimal `json:"current_spent"`
	Available       decimal.Decimal `json:"available"`
	UsagePercent    decimal.Decimal `json:"usage_percent"`
	BillingCycleDay int             `json:"billing_cycle_day"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToDomain converts the read model into a domain card.
func (c *CreditCardRead) ToDomain() *creditcard.CreditCard {
	return &creditcard.CreditCard{
		ID:              c.ID,
		UserID:          c.UserID,
		Name:            c.Name,
		LimitAmount:     c.LimitAmount,
		OpeningSpent:    c.OpeningSpent,
		CurrentSpent:    c.CurrentSpent,
		BillingCycleDay: c.BillingCycleDay,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
