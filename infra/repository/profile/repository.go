package profile

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/profile"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct {
	db *gorm.DB
}

// New returns a profile repository bound to db.
func New(db *gorm.DB) repo.Repository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*dto.ProfileRead, error) {
	var p Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return &dto.ProfileRead{
		ID:        p.ID,
		Username:  p.Username,
		Currency:  p.Currency,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (r *profileRepository) Create(ctx context.Context, create dto.ProfileCreate) error {
	p := &Profile{ID: create.ID, Username: create.Username, Currency: create.Currency}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(p).Error
	})
}

func (r *profileRepository) CreateIfAbsent(ctx context.Context, create dto.ProfileCreate) (bool, error) {
	p := &Profile{ID: create.ID, Username: create.Username, Currency: create.Currency}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return false, repository.MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *profileRepository) Update(ctx context.Context, id uuid.UUID, update dto.ProfileUpdate) error {
	updates := make(map[string]any)
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}
	if len(updates) == 0 {
		return nil
	}
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(updates),
	)
}

var _ repo.Repository = (*profileRepository)(nil)
