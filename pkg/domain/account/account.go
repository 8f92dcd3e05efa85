package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found or is
	// owned by another user.
	ErrAccountNotFound = fmt.Errorf("account not found: %w", domain.ErrNotFound)
	// ErrInvalidType is returned for an account type outside the known set.
	ErrInvalidType = fmt.Errorf("%w: invalid account type", domain.ErrValidation)
	// ErrNameRequired is returned when the account name is blank.
	ErrNameRequired = fmt.Errorf("%w: account name is required", domain.ErrValidation)
)

// Type is the kind of balance an account holds.
type Type string

const (
	Checking   Type = "checking"
	Savings    Type = "savings"
	Cash       Type = "cash"
	Investment Type = "investment"
)

// Valid reports whether t is one of the known account types.
func (t Type) Valid() bool {
	switch t {
	case Checking, Savings, Cash, Investment:
		return true
	}
	return false
}

// Account is a user-owned bank, cash or investment balance.
//
// CurrentBalance always equals InitialBalance plus the signed sum of the
// transactions that target the account.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           Type
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New validates the input and returns an account whose current balance
// starts at the initial balance.
func New(userID uuid.UUID, name string, t Type, initial decimal.Decimal) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	now := time.Now().UTC()
	return &Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Type:           t,
		InitialBalance: initial,
		CurrentBalance: initial,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Rebase returns the current-balance shift needed when the initial balance
// changes from old to updated, keeping transaction effects intact.
func Rebase(old, updated decimal.Decimal) decimal.Decimal {
	return updated.Sub(old)
}
