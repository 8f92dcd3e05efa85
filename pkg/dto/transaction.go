package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate is a DTO for inserting a transaction row.
type TransactionCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	AccountType string
	CategoryID  *uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Type        string
}

// TransactionUpdate replaces every mutable field of a transaction row.
type TransactionUpdate struct {
	AccountID   uuid.UUID
	AccountType string
	CategoryID  *uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Type        string
}

// TransactionRead is a transaction as returned to callers.
type TransactionRead struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	AccountType string          `json:"account_type"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TransactionFilter narrows List. Zero values do not filter.
type TransactionFilter struct {
	UserID      uuid.UUID
	AccountType string
	AccountID   *uuid.UUID
	Type        string
	CategoryID  *uuid.UUID
	// Uncategorized keeps only rows without a category. It wins over CategoryID.
	Uncategorized bool
	// Search is a case-insensitive substring of the description.
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// ToDomain converts the read model into a domain transaction.
func (t *TransactionRead) ToDomain() *transaction.Transaction {
	return &transaction.Transaction{
		ID:     t.ID,
		UserID: t.UserID,
		Target: transaction.Target{
			Kind: transaction.TargetKind(t.AccountType),
			ID:   t.AccountID,
		},
		CategoryID:  t.CategoryID,
		Date:        t.Date,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        transaction.Type(t.Type),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TransactionCreateFrom maps a validated domain transaction onto a create DTO.
func TransactionCreateFrom(t *transaction.Transaction) *TransactionCreate {
	return &TransactionCreate{
		ID:          t.ID,
		UserID:      t.UserID,
		AccountID:   t.Target.ID,
		AccountType: string(t.Target.Kind),
		CategoryID:  t.CategoryID,
		Date:        t.Date,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        string(t.Type),
	}
}

// TransactionUpdateFrom maps a validated domain transaction onto an update DTO.
func TransactionUpdateFrom(t *transaction.Transaction) *TransactionUpdate {
	return &TransactionUpdate{
		AccountID:   t.Target.ID,
		AccountType: string(t.Target.Kind),
		CategoryID:  t.CategoryID,
		Date:        t.Date,
		Amount:      t.Amount,
		Description: t.Description,
		Type:        string(t.Type),
	}
}
