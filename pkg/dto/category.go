package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/google/uuid"
)

// CategoryCreate is a DTO for creating a category.
type CategoryCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Type   string
}

// CategoryUpdate carries the editable category fields.
type CategoryUpdate struct {
	Name *string
	Type *string
}

// CategoryRead is a category as returned to callers.
type CategoryRead struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts the read model into a domain category.
func (c *CategoryRead) ToDomain() *category.Category {
	return &category.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      category.Type(c.Type),
		CreatedAt: c.CreatedAt,
	}
}
