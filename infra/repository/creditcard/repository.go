package creditcard

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/creditcard"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

// New creates a credit card repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, create dto.CreditCardCreate) error {
	card := CreditCard{
		ID:              create.ID,
		UserID:          create.UserID,
		Name:            create.Name,
		LimitAmount:     create.LimitAmount,
		OpeningSpent:    create.OpeningSpent,
		CurrentSpent:    create.CurrentSpent,
		BillingCycleDay: create.BillingCycleDay,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&card).Error
	})
}

func (r *cardRepository) Get(ctx context.Context, id uuid.UUID) (*dto.CreditCardRead, error) {
	var card CreditCard
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&card), nil
}

func (r *cardRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.CreditCardRead, error) {
	var cards []CreditCard
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&cards).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	result := make([]*dto.CreditCardRead, 0, len(cards))
	for i := range cards {
		result = append(result, mapModelToDTO(&cards[i]))
	}
	return result, nil
}

func (r *cardRepository) Update(ctx context.Context, id uuid.UUID, update dto.CreditCardUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.LimitAmount != nil {
		updates["limit_amount"] = *update.LimitAmount
	}
	if update.BillingCycleDay != nil {
		updates["billing_cycle_day"] = *update.BillingCycleDay
	}
	if len(updates) == 0 {
		return nil
	}
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&CreditCard{}).Where("id = ?", id).Updates(updates),
	)
}

func (r *cardRepository) AdjustSpent(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&CreditCard{}).Where("id = ?", id).
			Update("current_spent", gorm.Expr("ROUND(current_spent + ?, 2)", delta)),
	)
}

func (r *cardRepository) SetSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error {
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&CreditCard{}).Where("id = ?", id).
			Update("current_spent", spent),
	)
}

func (r *cardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Delete(&CreditCard{}, "id = ?", id),
	)
}

func mapModelToDTO(c *CreditCard) *dto.CreditCardRead {
	return &dto.CreditCardRead{
		ID:              c.ID,
		UserID:          c.UserID,
		Name:            c.Name,
		LimitAmount:     c.LimitAmount,
		OpeningSpent:    c.OpeningSpent,
		CurrentSpent:    c.CurrentSpent,
		Available:       creditcard.Available(c.LimitAmount, c.CurrentSpent),
		UsagePercent:    creditcard.UsagePercent(c.LimitAmount, c.CurrentSpent),
		BillingCycleDay: c.BillingCycleDay,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

var _ repo.Repository = (*cardRepository)(nil)
