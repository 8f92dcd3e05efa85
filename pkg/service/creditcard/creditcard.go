// Package creditcard manages credit cards and their spent figures.
package creditcard

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	txdomain "github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repocard "github.com/amirasaad/fintrack/pkg/repository/creditcard"
	repotx "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Update carries the editable card fields. Nil fields are left unchanged.
type Update struct {
	Name            *string
	LimitAmount     *decimal.Decimal
	BillingCycleDay *int
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create registers a card. spent is the opening figure already owed.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	limit, spent decimal.Decimal,
	billingDay int,
) (*creditcard.CreditCard, error) {
	card, err := creditcard.New(userID, name, limit, spent, billingDay)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.CreditCardCreate{
			ID:              card.ID,
			UserID:          card.UserID,
			Name:            card.Name,
			LimitAmount:     card.LimitAmount,
			OpeningSpent:    card.OpeningSpent,
			CurrentSpent:    card.CurrentSpent,
			BillingCycleDay: card.BillingCycleDay,
		}); err != nil {
			return err
		}
		read, err := repo.Get(ctx, card.ID)
		if err != nil {
			return err
		}
		card = read.ToDomain()
		return nil
	})
	if err != nil {
		s.logger.Error("Create card failed", "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Credit card created", "userID", userID, "cardID", card.ID)
	return card, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (card *creditcard.CreditCard, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		card, err = Owned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) (cards []*creditcard.CreditCard, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		rows, err := repo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		cards = make([]*creditcard.CreditCard, 0, len(rows))
		for _, r := range rows {
			cards = append(cards, r.ToDomain())
		}
		return nil
	})
	return cards, err
}

// Update edits the card's name, limit or billing day. The spent figure only
// moves through transactions.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update Update,
) (card *creditcard.CreditCard, err error) {
	var patch dto.CreditCardUpdate
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, creditcard.ErrNameRequired
		}
		patch.Name = &name
	}
	if update.LimitAmount != nil {
		if update.LimitAmount.IsNegative() {
			return nil, creditcard.ErrNegativeLimit
		}
		patch.LimitAmount = update.LimitAmount
	}
	if update.BillingCycleDay != nil {
		if err := creditcard.ValidateBillingDay(*update.BillingCycleDay); err != nil {
			return nil, err
		}
		patch.BillingCycleDay = update.BillingCycleDay
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := Owned(ctx, repo, userID, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, patch); err != nil {
			return err
		}
		read, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		card = read.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Credit card updated", "userID", userID, "cardID", id)
	return card, nil
}

// Delete removes the card and every transaction charged to it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocard.Repository](uow)
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
		if err := txs.DeleteByTarget(ctx, string(txdomain.TargetCreditCard), id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Credit card deleted", "userID", userID, "cardID", id)
	return nil
}

// Owned loads a card and hides cards of other users behind ErrCardNotFound.
func Owned(ctx context.Context, repo repocard.Repository, userID, id uuid.UUID) (*creditcard.CreditCard, error) {
	read, err := repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, creditcard.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	if read.UserID != userID {
		return nil, creditcard.ErrCardNotFound
	}
	return read.ToDomain(), nil
}
