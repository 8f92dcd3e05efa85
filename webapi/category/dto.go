package category

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Type string `json:"type" validate:"required,oneof=income expense"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=50"`
	Type *string `json:"type" validate:"omitempty,oneof=income expense"`
}

type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCategoryDTO(c *category.Category) *CategoryDTO {
	return &CategoryDTO{ID: c.ID, Name: c.Name, Type: string(c.Type), CreatedAt: c.CreatedAt}
}

func ToCategoryDTOs(cats []*category.Category) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, ToCategoryDTO(c))
	}
	return out
}
