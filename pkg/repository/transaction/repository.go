package transaction

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository persists transactions.
type Repository interface {
	Create(ctx context.Context, create dto.TransactionCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns matching rows ordered by date then created_at, newest first.
	List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error)
	// SumByTarget returns the signed sums of incomes and expenses recorded
	// against one target.
	SumByTarget(ctx context.Context, kind string, id uuid.UUID) (income, expense decimal.Decimal, err error)
	// ClearCategory detaches every transaction from a category.
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error
	// DeleteByTarget removes every transaction recorded against a target.
	DeleteByTarget(ctx context.Context, kind string, id uuid.UUID) error
}
