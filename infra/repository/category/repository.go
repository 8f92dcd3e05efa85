package category

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// New creates a category repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, create dto.CategoryCreate) error {
	c := Category{ID: create.ID, UserID: create.UserID, Name: create.Name, Type: create.Type}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&c).Error
	})
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error) {
	var c Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&c), nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, kind string) ([]*dto.CategoryRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("type = ?", kind)
	}
	var cats []Category
	if err := q.Order("name asc").Find(&cats).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	result := make([]*dto.CategoryRead, 0, len(cats))
	for i := range cats {
		result = append(result, mapModelToDTO(&cats[i]))
	}
	return result, nil
}

func (r *categoryRepository) Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if len(updates) == 0 {
		return nil
	}
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Updates(updates),
	)
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id),
	)
}

func mapModelToDTO(c *Category) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}

var _ repo.Repository = (*categoryRepository)(nil)
