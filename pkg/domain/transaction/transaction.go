package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound is returned when a transaction cannot be found or
	// is owned by another user.
	ErrTransactionNotFound = fmt.Errorf("transaction not found: %w", domain.ErrNotFound)
	// ErrAmountMustBePositive is returned for a zero or negative amount.
	ErrAmountMustBePositive = fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	// ErrInvalidType is returned for a type other than income or expense.
	ErrInvalidType = fmt.Errorf("%w: transaction type must be income or expense", domain.ErrValidation)
	// ErrInvalidTargetKind is returned when the target is neither an account nor a card.
	ErrInvalidTargetKind = fmt.Errorf("%w: account type must be account or credit_card", domain.ErrValidation)
	// ErrTargetRequired is returned when no account or card id is given.
	ErrTargetRequired = fmt.Errorf("%w: an account or credit card is required", domain.ErrValidation)
	// ErrDateRequired is returned for a zero date.
	ErrDateRequired = fmt.Errorf("%w: date is required", domain.ErrValidation)
	// ErrCardRequiresExpense is returned when an income entry targets a credit card.
	ErrCardRequiresExpense = fmt.Errorf("%w: credit card transactions must be expenses", domain.ErrValidation)
	// ErrCategoryTypeMismatch is returned when the category type differs from the transaction type.
	ErrCategoryTypeMismatch = fmt.Errorf("%w: category type does not match transaction type", domain.ErrValidation)
	// ErrTooManyDecimals is returned for amounts finer than cents.
	ErrTooManyDecimals = fmt.Errorf("%w: amount supports at most 2 decimals", domain.ErrValidation)
)

// Type is the direction of money movement.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Valid reports whether t is income or expense.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// TargetKind tells which table a transaction's account id refers to.
type TargetKind string

const (
	TargetAccount    TargetKind = "account"
	TargetCreditCard TargetKind = "credit_card"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool {
	return k == TargetAccount || k == TargetCreditCard
}

// Target identifies the single account or credit card a transaction moves.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func (t Target) String() string {
	return string(t.Kind) + ":" + t.ID.String()
}

// Transaction is a dated income or expense entry against one target.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Target      Target
	CategoryID  *uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Type        Type
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New validates the fields and returns a transaction with a fresh id.
func New(
	userID uuid.UUID,
	target Target,
	categoryID *uuid.UUID,
	date time.Time,
	amount decimal.Decimal,
	description string,
	t Type,
) (*Transaction, error) {
	tx := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Target:      target,
		CategoryID:  categoryID,
		Date:        NormalizeDate(date),
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Type:        t,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return tx, nil
}

// Validate checks every field-level rule, including the credit-card
// expense-only rule.
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Target.Kind.Valid() {
		return ErrInvalidTargetKind
	}
	if t.Target.ID == uuid.Nil {
		return ErrTargetRequired
	}
	if t.Target.Kind == TargetCreditCard && t.Type != Expense {
		return ErrCardRequiresExpense
	}
	if t.Date.IsZero() {
		return ErrDateRequired
	}
	if !t.Amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if !t.Amount.Equal(t.Amount.Round(2)) {
		return ErrTooManyDecimals
	}
	return nil
}

// NormalizeDate drops the clock and zone, keeping the calendar date as UTC
// midnight.
func NormalizeDate(d time.Time) time.Time {
	if d.IsZero() {
		return d
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
