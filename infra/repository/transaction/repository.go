package transaction

import (
	"context"
	"strings"

	"github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/dto"
	repo "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	tx := Transaction{
		ID:          create.ID,
		UserID:      create.UserID,
		AccountID:   create.AccountID,
		AccountType: create.AccountType,
		CategoryID:  create.CategoryID,
		Date:        create.Date,
		Amount:      create.Amount,
		Description: create.Description,
		Type:        create.Type,
	}
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&tx).Error
	})
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var tx Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&tx), nil
}

func (r *transactionRepository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	// Select forces zero values such as a cleared category to be written.
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Model(&Transaction{}).Where("id = ?", id).
			Select("account_id", "account_type", "category_id", "date", "amount", "description", "type", "updated_at").
			Updates(&Transaction{
				AccountID:   update.AccountID,
				AccountType: update.AccountType,
				CategoryID:  update.CategoryID,
				Date:        update.Date,
				Amount:      update.Amount,
				Description: update.Description,
				Type:        update.Type,
			}),
	)
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repository.NotFoundIfNoRows(
		r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id),
	)
}

func (r *transactionRepository) List(ctx context.Context, filter dto.TransactionFilter) ([]*dto.TransactionRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.AccountType != "" {
		q = q.Where("account_type = ?", filter.AccountType)
	}
	if filter.AccountID != nil {
		q = q.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	switch {
	case filter.Uncategorized:
		q = q.Where("category_id IS NULL")
	case filter.CategoryID != nil:
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		q = q.Where(`LOWER(description) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var txs []Transaction
	if err := q.Order("date desc").Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToDTO(&txs[i]))
	}
	return result, nil
}

// likePattern lowercases term and escapes LIKE wildcards.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}

func (r *transactionRepository) SumByTarget(
	ctx context.Context,
	kind string,
	id uuid.UUID,
) (income, expense decimal.Decimal, err error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	err = r.db.WithContext(ctx).Model(&Transaction{}).
		Select("type, COALESCE(ROUND(SUM(amount), 2), 0) AS total").
		Where("account_type = ? AND account_id = ?", kind, id).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, repository.MapGormErrorToDomain(err)
	}
	income, expense = decimal.Zero, decimal.Zero
	for _, row := range rows {
		switch row.Type {
		case "income":
			income = row.Total
		case "expense":
			expense = row.Total
		}
	}
	return income, expense, nil
}

func (r *transactionRepository) ClearCategory(ctx context.Context, categoryID uuid.UUID) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Transaction{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error
	})
}

func (r *transactionRepository) DeleteByTarget(ctx context.Context, kind string, id uuid.UUID) error {
	return repository.WrapError(func() error {
		return r.db.WithContext(ctx).
			Where("account_type = ? AND account_id = ?", kind, id).
			Delete(&Transaction{}).Error
	})
}

func mapModelToDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          tx.ID,
		UserID:      tx.UserID,
		AccountID:   tx.AccountID,
		AccountType: tx.AccountType,
		CategoryID:  tx.CategoryID,
		Date:        tx.Date.UTC(),
		Amount:      tx.Amount,
		Description: tx.Description,
		Type:        tx.Type,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

var _ repo.Repository = (*transactionRepository)(nil)
