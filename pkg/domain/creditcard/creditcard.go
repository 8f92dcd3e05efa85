package creditcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrCardNotFound is returned when a card cannot be found or is owned by
	// another user.
	ErrCardNotFound = fmt.Errorf("credit card not found: %w", domain.ErrNotFound)
	// ErrNameRequired is returned when the card name is blank.
	ErrNameRequired = fmt.Errorf("%w: credit card name is required", domain.ErrValidation)
	// ErrNegativeLimit is returned for a limit below zero.
	ErrNegativeLimit = fmt.Errorf("%w: limit amount must not be negative", domain.ErrValidation)
	// ErrNegativeSpent is returned for an opening spent figure below zero.
	ErrNegativeSpent = fmt.Errorf("%w: current spent must not be negative", domain.ErrValidation)
	// ErrInvalidBillingDay is returned when the billing cycle day is outside 1..31.
	ErrInvalidBillingDay = fmt.Errorf("%w: billing cycle day must be between 1 and 31", domain.ErrValidation)
)

// CreditCard is a revolving-credit record tracked by limit and spend.
//
// CurrentSpent always equals OpeningSpent plus the signed sum of the
// transactions charged to the card.
type CreditCard struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	LimitAmount     decimal.Decimal
	OpeningSpent    decimal.Decimal
	CurrentSpent    decimal.Decimal
	BillingCycleDay int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New validates the input and returns a card whose current spent starts at
// the opening figure.
func New(
	userID uuid.UUID,
	name string,
	limit, spent decimal.Decimal,
	billingDay int,
) (*CreditCard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if limit.IsNegative() {
		return nil, ErrNegativeLimit
	}
	if spent.IsNegative() {
		return nil, ErrNegativeSpent
	}
	if err := ValidateBillingDay(billingDay); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &CreditCard{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		LimitAmount:     limit,
		OpeningSpent:    spent,
		CurrentSpent:    spent,
		BillingCycleDay: billingDay,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ValidateBillingDay checks that day is a valid day of month.
func ValidateBillingDay(day int) error {
	if day < 1 || day > 31 {
		return ErrInvalidBillingDay
	}
	return nil
}

// Available is the remaining credit. It is never stored.
func Available(limit, spent decimal.Decimal) decimal.Decimal {
	return limit.Sub(spent)
}

// UsagePercent is spent as a percentage of limit, zero when there is no limit.
func UsagePercent(limit, spent decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		return decimal.Zero
	}
	return spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(2)
}

// Available is the remaining credit on c.
func (c *CreditCard) Available() decimal.Decimal {
	return Available(c.LimitAmount, c.CurrentSpent)
}
