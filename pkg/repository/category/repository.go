package category

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository persists categories.
type Repository interface {
	Create(ctx context.Context, create dto.CategoryCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error)
	// ListByUser returns the user's categories ordered by name. An empty
	// kind returns both types.
	ListByUser(ctx context.Context, userID uuid.UUID, kind string) ([]*dto.CategoryRead, error)
	Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
