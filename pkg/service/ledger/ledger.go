// Package ledger recomputes stored balances and spent figures from the
// transactions recorded against them.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	repocard "github.com/amirasaad/fintrack/pkg/repository/creditcard"
	repotx "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Drift is a target whose stored figure differs from its transactions.
type Drift struct {
	Kind     transaction.TargetKind `json:"kind"`
	ID       uuid.UUID              `json:"id"`
	Name     string                 `json:"name"`
	Stored   decimal.Decimal        `json:"stored"`
	Expected decimal.Decimal        `json:"expected"`
}

// Difference is Stored minus Expected.
func (d Drift) Difference() decimal.Decimal {
	return d.Stored.Sub(d.Expected)
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Check reports every account and card of userID that has drifted.
func (s *Service) Check(ctx context.Context, userID uuid.UUID) (drifts []Drift, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		drifts, err = scan(ctx, uow, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Ledger checked", "context", "LedgerCheck", "userID", userID, "drifts", len(drifts))
	return drifts, nil
}

// Repair overwrites drifted figures with the expected ones and returns what
// it fixed. Scan and writes share one unit of work.
func (s *Service) Repair(ctx context.Context, userID uuid.UUID) (fixed []Drift, err error) {
	log := s.logger.With("context", "LedgerRepair", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		fixed, err = scan(ctx, uow, userID)
		if err != nil {
			return err
		}
		if len(fixed) == 0 {
			return nil
		}
		accounts, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		cards, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		for _, d := range fixed {
			switch d.Kind {
			case transaction.TargetAccount:
				err = accounts.SetBalance(ctx, d.ID, d.Expected)
			case transaction.TargetCreditCard:
				err = cards.SetSpent(ctx, d.ID, d.Expected)
			}
			if err != nil {
				return fmt.Errorf("repair %s %s: %w", d.Kind, d.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Ledger repair failed", "error", err)
		return nil, err
	}
	for _, d := range fixed {
		log.Warn("Ledger drift repaired", "kind", d.Kind, "id", d.ID, "stored", d.Stored, "expected", d.Expected)
	}
	return fixed, nil
}

func scan(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) ([]Drift, error) {
	accounts, err := repository.Get[repoaccount.Repository](uow)
	if err != nil {
		return nil, err
	}
	cards, err := repository.Get[repocard.Repository](uow)
	if err != nil {
		return nil, err
	}
	txs, err := repository.Get[repotx.Repository](uow)
	if err != nil {
		return nil, err
	}

	drifts := []Drift{}
	accRows, err := accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range accRows {
		income, expense, err := txs.SumByTarget(ctx, string(transaction.TargetAccount), a.ID)
		if err != nil {
			return nil, err
		}
		expected := a.InitialBalance.Add(income).Sub(expense)
		if !expected.Equal(a.CurrentBalance) {
			drifts = append(drifts, Drift{
				Kind: transaction.TargetAccount, ID: a.ID, Name: a.Name,
				Stored: a.CurrentBalance, Expected: expected,
			})
		}
	}

	cardRows, err := cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range cardRows {
		income, expense, err := txs.SumByTarget(ctx, string(transaction.TargetCreditCard), c.ID)
		if err != nil {
			return nil, err
		}
		expected := c.OpeningSpent.Add(expense).Sub(income)
		if !expected.Equal(c.CurrentSpent) {
			drifts = append(drifts, Drift{
				Kind: transaction.TargetCreditCard, ID: c.ID, Name: c.Name,
				Stored: c.CurrentSpent, Expected: expected,
			})
		}
	}
	return drifts, nil
}
