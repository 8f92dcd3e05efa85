package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCreate is a DTO for creating a new account.
type AccountCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
}

// AccountUpdate is a DTO for updating one or more fields of an account.
// Balances move only through AdjustBalance.
type AccountUpdate struct {
	Name           *string
	Type           *string
	InitialBalance *decimal.Decimal
}

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToDomain converts the read model into a domain account.
func (a *AccountRead) ToDomain() *account.Account {
	return &account.Account{
		ID:             a.ID,
		UserID:         a.UserID,
		Name:           a.Name,
		Type:           account.Type(a.Type),
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
