// Package dashboard assembles the dashboard summary for one user.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	"github.com/amirasaad/fintrack/pkg/domain/dashboard"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	repocategory "github.com/amirasaad/fintrack/pkg/repository/category"
	repocard "github.com/amirasaad/fintrack/pkg/repository/creditcard"
	repotx "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLocation sets the zone whose calendar decides the current month.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithRecentLimit sets how many recent transactions are listed.
func WithRecentLimit(n int) Option {
	return func(s *Service) { s.recentLimit = n }
}

type Service struct {
	uow         repository.UnitOfWork
	logger      *slog.Logger
	clock       func() time.Time
	loc         *time.Location
	recentLimit int
	group       singleflight.Group
}

func New(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		uow:         uow,
		logger:      logger,
		clock:       time.Now,
		loc:         time.UTC,
		recentLimit: dashboard.DefaultRecentLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the dashboard for userID. Concurrent calls for the same
// user share one computation; a caller that gives up does not cancel it for
// the others.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*dashboard.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(userID.String(), func() (any, error) {
		return s.summarize(detached, userID)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		s.logger.Warn("Dashboard summary failed", "context", "DashboardSummary", "userID", userID, "error", res.Err)
		return nil, res.Err
	}
	if res.Shared {
		s.logger.Debug("Dashboard summary shared", "userID", userID)
	}
	return res.Val.(*dashboard.Summary), nil
}

func (s *Service) summarize(ctx context.Context, userID uuid.UUID) (*dashboard.Summary, error) {
	now := s.clock().In(s.loc)
	period := dashboard.MonthPeriod(now)
	in := dashboard.Input{RecentLimit: s.recentLimit}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := repository.Get[repoaccount.Repository](uow)
		if err != nil {
			return err
		}
		cards, err := repository.Get[repocard.Repository](uow)
		if err != nil {
			return err
		}
		categories, err := repository.Get[repocategory.Repository](uow)
		if err != nil {
			return err
		}
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}

		accRows, err := accounts.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		in.Accounts = make([]*account.Account, 0, len(accRows))
		for _, r := range accRows {
			in.Accounts = append(in.Accounts, r.ToDomain())
		}

		cardRows, err := cards.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list credit cards: %w", err)
		}
		in.Cards = make([]*creditcard.CreditCard, 0, len(cardRows))
		for _, r := range cardRows {
			in.Cards = append(in.Cards, r.ToDomain())
		}

		catRows, err := categories.ListByUser(ctx, userID, "")
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		in.Categories = make([]*category.Category, 0, len(catRows))
		for _, r := range catRows {
			in.Categories = append(in.Categories, r.ToDomain())
		}

		month, err := txs.List(ctx, dto.TransactionFilter{UserID: userID, From: &period.From, To: &period.To})
		if err != nil {
			return fmt.Errorf("list month transactions: %w", err)
		}
		recent, err := txs.List(ctx, dto.TransactionFilter{UserID: userID, Limit: s.recentLimit})
		if err != nil {
			return fmt.Errorf("list recent transactions: %w", err)
		}
		in.Transactions = make([]*transaction.Transaction, 0, len(month)+len(recent))
		for _, r := range append(month, recent...) {
			in.Transactions = append(in.Transactions, r.ToDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dashboard.Summarize(in, now), nil
}
