package transaction

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in requests and responses.
const DateLayout = "2006-01-02"

// UncategorizedFilter is the category_id value that lists transactions
// without a category.
const UncategorizedFilter = "uncategorized"

// TransactionRequest is the body for both create and update. An update
// replaces every field.
type TransactionRequest struct {
	TargetType  string           `json:"target_type" validate:"required,oneof=account credit_card"`
	TargetID    string           `json:"target_id" validate:"required,uuid"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Date        string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"max=255"`
	Type        string           `json:"type" validate:"required,oneof=income expense"`
}

// TransactionDTO is the API representation of a transaction.
type TransactionDTO struct {
	ID          uuid.UUID       `json:"id"`
	TargetType  string          `json:"target_type"`
	TargetID    uuid.UUID       `json:"target_id"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToTransactionDTO(t *transaction.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:          t.ID,
		TargetType:  string(t.Target.Kind),
		TargetID:    t.Target.ID,
		CategoryID:  t.CategoryID,
		Date:        t.Date.Format(DateLayout),
		Amount:      t.Amount,
		Description: t.Description,
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTransactionDTOs(txs []*transaction.Transaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, ToTransactionDTO(t))
	}
	return out
}
