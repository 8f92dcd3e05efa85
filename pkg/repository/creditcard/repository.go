package creditcard

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository persists credit cards.
type Repository interface {
	Create(ctx context.Context, create dto.CreditCardCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.CreditCardRead, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CreditCardRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.CreditCardUpdate) error
	// AdjustSpent adds delta to current_spent in a single statement.
	AdjustSpent(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	SetSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
