// Package account manages bank, cash and investment accounts.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/account"
	txdomain "github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	repotx "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Update carries the editable account fields. Nil fields are left unchanged.
type Update struct {
	Name           *string
	Type           *string
	InitialBalance *decimal.Decimal
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create opens an account whose current balance starts at initial.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	kind account.Type,
	initial decimal.Decimal,
) (*account.Account, error) {
	acc, err := account.New(userID, name, kind, initial)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.AccountCreate{
			ID:             acc.ID,
			UserID:         acc.UserID,
			Name:           acc.Name,
			Type:           string(acc.Type),
			InitialBalance: acc.InitialBalance,
			CurrentBalance: acc.CurrentBalance,
		}); err != nil {
			return err
		}
		read, err := repo.Get(ctx, acc.ID)
		if err != nil {
			return err
		}
		acc = read.ToDomain()
		return nil
	})
	if err != nil {
		s.logger.Error("Create account failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Account created", "userID", userID, "accountID", acc.ID)
	return acc, nil
}

// Get returns the account if it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (acc *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		acc, err = Owned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// List returns the user's accounts, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (accounts []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		rows, err := repo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		accounts = make([]*account.Account, 0, len(rows))
		for _, r := range rows {
			accounts = append(accounts, r.ToDomain())
		}
		return nil
	})
	return accounts, err
}

// Update edits an account. A new initial balance shifts the current balance
// by the same difference so transaction effects are preserved.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update Update,
) (acc *account.Account, err error) {
	var patch dto.AccountUpdate
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, account.ErrNameRequired
		}
		patch.Name = &name
	}
	if update.Type != nil {
		if !account.Type(*update.Type).Valid() {
			return nil, account.ErrInvalidType
		}
		patch.Type = update.Type
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		current, err := Owned(ctx, repo, userID, id)
		if err != nil {
			return err
		}
		if update.InitialBalance != nil {
			patch.InitialBalance = update.InitialBalance
			shift := account.Rebase(current.InitialBalance, *update.InitialBalance)
			if err := repo.AdjustBalance(ctx, id, shift); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, id, patch); err != nil {
			return err
		}
		read, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		acc = read.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Account updated", "userID", userID, "accountID", id)
	return acc, nil
}

// Delete removes the account and every transaction recorded against it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := Owned(ctx, repo, userID, id); err != nil {
			return err
		}
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		if err := txs.DeleteByTarget(ctx, string(txdomain.TargetAccount), id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Account deleted", "userID", userID, "accountID", id)
	return nil
}

// Owned loads an account and hides accounts of other users behind
// ErrAccountNotFound.
func Owned(ctx context.Context, repo repoaccount.Repository, userID, id uuid.UUID) (*account.Account, error) {
	read, err := repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if read.UserID != userID {
		return nil, account.ErrAccountNotFound
	}
	return read.ToDomain(), nil
}
