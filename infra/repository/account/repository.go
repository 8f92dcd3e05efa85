package account

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &accountRepository{db: db}
}

// Create implements account.Repository.
func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct := Account{
		ID:             create.ID,
		UserID:         create.UserID,
		Name:           create.Name,
		Type:           create.Type,
		InitialBalance: create.InitialBalance,
		CurrentBalance: create.CurrentBalance,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&acct).Error
	})
}

// Get implements account.Repository.
func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var acct Account
	if err := r.db.WithContext(ctx).First(&acct, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&acct), nil
}

// ListByUser implements account.Repository.
func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&accts).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// Update implements account.Repository.
func (r *accountRepository) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.InitialBalance != nil {
		updates["initial_balance"] = *update.InitialBalance
	}
	if len(updates) == 0 {
		return nil
	}
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Updates(updates),
	)
}

// AdjustBalance implements account.Repository.
func (r *accountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).
			Update("current_balance", gorm.Expr("ROUND(current_balance + ?, 2)", delta)),
	)
}

// SetBalance implements account.Repository.
func (r *accountRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).
			Update("current_balance", balance),
	)
}

// Delete implements account.Repository.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id),
	)
}

func mapModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:             acct.ID,
		UserID:         acct.UserID,
		Name:           acct.Name,
		Type:           acct.Type,
		InitialBalance: acct.InitialBalance,
		CurrentBalance: acct.CurrentBalance,
		CreatedAt:      acct.CreatedAt,
		UpdatedAt:      acct.UpdatedAt,
	}
}

var _ repo.Repository = (*accountRepository)(nil)
