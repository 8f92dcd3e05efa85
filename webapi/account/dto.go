package account

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	Name           string           `json:"name" validate:"required,max=100"`
	Type           string           `json:"type" validate:"required,oneof=checking savings cash investment"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// UpdateAccountRequest represents the request body for editing an account.
// Omitted fields are left unchanged.
type UpdateAccountRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Type           *string          `json:"type" validate:"omitempty,oneof=checking savings cash investment"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// AccountDTO is the API representation of an account.
type AccountDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToAccountDTO(a *account.Account) *AccountDTO {
	return &AccountDTO{
		ID:             a.ID,
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func ToAccountDTOs(accounts []*account.Account) []*AccountDTO {
	out := make([]*AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountDTO(a))
	}
	return out
}
