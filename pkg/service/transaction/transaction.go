// Package transaction records incomes and expenses and keeps account
// balances and card spent figures in step with them.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	repocategory "github.com/amirasaad/fintrack/pkg/repository/category"
	repocard "github.com/amirasaad/fintrack/pkg/repository/creditcard"
	repotx "github.com/amirasaad/fintrack/pkg/repository/transaction"
	accountsvc "github.com/amirasaad/fintrack/pkg/service/account"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	cardsvc "github.com/amirasaad/fintrack/pkg/service/creditcard"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input is the full set of user-editable transaction fields.
type Input struct {
	Target      transaction.Target
	CategoryID  *uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Type        transaction.Type
}

// Filter narrows List. Zero values do not filter.
type Filter struct {
	TargetKind transaction.TargetKind
	TargetID   *uuid.UUID
	Type       transaction.Type
	CategoryID *uuid.UUID
	// Uncategorized keeps only transactions without a category.
	Uncategorized bool
	// Query matches a substring of the description, ignoring case.
	Query string
	From  *time.Time
	To    *time.Time
	Limit int
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create stores a transaction and applies its effect to the target in the
// same unit of work.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in Input,
) (*transaction.Transaction, error) {
	log := s.logger.With("context", "CreateTransaction", "userID", userID)
	tx, err := transaction.New(userID, in.Target, in.CategoryID, in.Date, in.Amount, in.Description, in.Type)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := checkReferences(ctx, uow, tx); err != nil {
			return err
		}
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		if err := txs.Create(ctx, *dto.TransactionCreateFrom(tx)); err != nil {
			return err
		}
		if err := apply(ctx, uow, transaction.Plan(nil, tx)); err != nil {
			return err
		}
		read, err := txs.Get(ctx, tx.ID)
		if err != nil {
			return err
		}
		tx = read.ToDomain()
		return nil
	})
	if err != nil {
		log.Warn("Create transaction failed", "error", err)
		return nil, err
	}
	log.Info("Transaction created", "transactionID", tx.ID, "target", tx.Target.String(), "delta", tx.Delta())
	return tx, nil
}

// Get returns a transaction owned by userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (tx *transaction.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		tx, err = owned(ctx, txs, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// List returns the user's transactions, newest first.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	f Filter,
) (list []*transaction.Transaction, err error) {
	if f.TargetKind != "" && !f.TargetKind.Valid() {
		return nil, transaction.ErrInvalidTargetKind
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, transaction.ErrInvalidType
	}
	filter := dto.TransactionFilter{
		UserID:        userID,
		AccountType:   string(f.TargetKind),
		AccountID:     f.TargetID,
		Type:          string(f.Type),
		CategoryID:    f.CategoryID,
		Uncategorized: f.Uncategorized,
		Search:        strings.TrimSpace(f.Query),
		Limit:         f.Limit,
	}
	if f.From != nil {
		from := transaction.NormalizeDate(*f.From)
		filter.From = &from
	}
	if f.To != nil {
		to := transaction.NormalizeDate(*f.To)
		filter.To = &to
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		rows, err := txs.List(ctx, filter)
		if err != nil {
			return err
		}
		list = make([]*transaction.Transaction, 0, len(rows))
		for _, r := range rows {
			list = append(list, r.ToDomain())
		}
		return nil
	})
	return list, err
}

// Update replaces every editable field. The old effect is reversed on the
// old target and the new effect applied to the new target atomically.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in Input,
) (tx *transaction.Transaction, err error) {
	log := s.logger.With("context", "UpdateTransaction", "userID", userID, "transactionID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		old, err := owned(ctx, txs, userID, id)
		if err != nil {
			return err
		}
		updated := *old
		updated.Target = in.Target
		updated.CategoryID = in.CategoryID
		updated.Date = transaction.NormalizeDate(in.Date)
		updated.Amount = in.Amount
		updated.Description = strings.TrimSpace(in.Description)
		updated.Type = in.Type
		if err := updated.Validate(); err != nil {
			return err
		}
		if err := checkReferences(ctx, uow, &updated); err != nil {
			return err
		}
		if err := txs.Update(ctx, id, *dto.TransactionUpdateFrom(&updated)); err != nil {
			return err
		}
		if err := apply(ctx, uow, transaction.Plan(old, &updated)); err != nil {
			return err
		}
		read, err := txs.Get(ctx, id)
		if err != nil {
			return err
		}
		tx = read.ToDomain()
		return nil
	})
	if err != nil {
		log.Warn("Update transaction failed", "error", err)
		return nil, err
	}
	log.Info("Transaction updated", "target", tx.Target.String())
	return tx, nil
}

// Delete removes a transaction and reverses its effect on its target.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	log := s.logger.With("context", "DeleteTransaction", "userID", userID, "transactionID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		old, err := owned(ctx, txs, userID, id)
		if err != nil {
			return err
		}
		if err := txs.Delete(ctx, id); err != nil {
			return err
		}
		return apply(ctx, uow, transaction.Plan(old, nil))
	})
	if err != nil {
		log.Warn("Delete transaction failed", "error", err)
		return err
	}
	log.Info("Transaction deleted")
	return nil
}

// checkReferences verifies that the target and the category belong to the
// transaction's user and that the category type matches.
func checkReferences(ctx context.Context, uow repository.UnitOfWork, tx *transaction.Transaction) error {
	switch tx.Target.Kind {
	case transaction.TargetAccount:
		repo, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := accountsvc.Owned(ctx, repo, tx.UserID, tx.Target.ID); err != nil {
			return err
		}
	case transaction.TargetCreditCard:
		repo, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := cardsvc.Owned(ctx, repo, tx.UserID, tx.Target.ID); err != nil {
			return err
		}
	default:
		return transaction.ErrInvalidTargetKind
	}
	if tx.CategoryID == nil {
		return nil
	}
	repo, err := repository.Get[repocategory.Repository](uow)
	if err != nil {
		return err
	}
	c, err := categorysvc.Owned(ctx, repo, tx.UserID, *tx.CategoryID)
	if err != nil {
		return err
	}
	if string(c.Type) != string(tx.Type) {
		return transaction.ErrCategoryTypeMismatch
	}
	return nil
}

// apply writes each adjustment as a relative increment.
func apply(ctx context.Context, uow repository.UnitOfWork, adjustments []transaction.Adjustment) error {
	for _, adj := range adjustments {
		switch adj.Target.Kind {
		case transaction.TargetAccount:
			repo, err := repository.Get[repoaccount.Repository](uow)
			if err != nil {
				return err
			}
			if err := repo.AdjustBalance(ctx, adj.Target.ID, adj.Delta); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return account.ErrAccountNotFound
				}
				return fmt.Errorf("adjust balance of %s: %w", adj.Target, err)
			}
		case transaction.TargetCreditCard:
			repo, err := repository.Get[repocard.Repository](uow)
			if err != nil {
				return err
			}
			if err := repo.AdjustSpent(ctx, adj.Target.ID, adj.Delta); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return creditcard.ErrCardNotFound
				}
				return fmt.Errorf("adjust spent of %s: %w", adj.Target, err)
			}
		default:
			return transaction.ErrInvalidTargetKind
		}
	}
	return nil
}

func owned(ctx context.Context, txs repotx.Repository, userID, id uuid.UUID) (*transaction.Transaction, error) {
	read, err := txs.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	if read.UserID != userID {
		return nil, transaction.ErrTransactionNotFound
	}
	return read.ToDomain(), nil
}
