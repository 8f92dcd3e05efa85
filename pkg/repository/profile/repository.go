package profile

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository persists user profiles. A profile shares its id with the user.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.ProfileRead, error)
	Create(ctx context.Context, create dto.ProfileCreate) error
	// CreateIfAbsent inserts the profile unless one with the same id exists
	// and reports whether it inserted.
	CreateIfAbsent(ctx context.Context, create dto.ProfileCreate) (bool, error)
	Update(ctx context.Context, id uuid.UUID, update dto.ProfileUpdate) error
}
