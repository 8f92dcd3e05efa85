package account

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository persists bank accounts.
type Repository interface {
	Create(ctx context.Context, create dto.AccountCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error
	// AdjustBalance adds delta to current_balance in a single statement.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	// SetBalance overwrites current_balance. Used by ledger repair only.
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
