// Package dashboard computes the read-only figures shown on the dashboard
// from rows that were already fetched.
package dashboard

import (
	"sort"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/domain/creditcard"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Uncategorized      = "Sin categoría"
	NoDescription      = "Sin descripción"
	MissingAccount     = "Cuenta no encontrada"
	MissingCard        = "Tarjeta no encontrada"
	DefaultRecentLimit = 5
)

// Input is everything Summarize reads. Transactions must include every
// transaction of the current month plus the most recent ones.
type Input struct {
	Accounts     []*account.Account
	Cards        []*creditcard.CreditCard
	Categories   []*category.Category
	Transactions []*transaction.Transaction
	RecentLimit  int
}

// Period is the inclusive calendar range used for monthly figures.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether the calendar date of d lies in p.
func (p Period) Contains(d time.Time) bool {
	d = transaction.NormalizeDate(d)
	return !d.Before(p.From) && !d.After(p.To)
}

// Entry is a recent transaction resolved for display.
type Entry struct {
	ID           uuid.UUID        `json:"id"`
	Description  string           `json:"description"`
	CategoryName string           `json:"category_name"`
	TargetName   string           `json:"target_name"`
	TargetKind   string           `json:"target_kind"`
	Date         time.Time        `json:"date"`
	Type         transaction.Type `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
}

// AccountLine is one row of the accounts overview.
type AccountLine struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Type    account.Type    `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// Summary holds the dashboard figures.
type Summary struct {
	Period         Period          `json:"period"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
	AccountCount   int             `json:"account_count"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	MonthlyExpense decimal.Decimal `json:"monthly_expense"`
	ActiveCards    int             `json:"active_cards"`
	TotalLimit     decimal.Decimal `json:"total_limit"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	Recent         []Entry         `json:"recent"`
	Accounts       []AccountLine   `json:"accounts"`
}

// MonthPeriod returns the first and last day of now's calendar month,
// evaluated in now's location.
func MonthPeriod(now time.Time) Period {
	y, m, _ := now.Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return Period{From: from, To: to}
}

// Summarize aggregates in. It has no side effects.
func Summarize(in Input, now time.Time) *Summary {
	s := &Summary{
		Period:         MonthPeriod(now),
		TotalBalance:   decimal.Zero,
		MonthlyIncome:  decimal.Zero,
		MonthlyExpense: decimal.Zero,
		TotalLimit:     decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalAvailable: decimal.Zero,
		AccountCount:   len(in.Accounts),
		ActiveCards:    len(in.Cards),
		Recent:         []Entry{},
		Accounts:       make([]AccountLine, 0, len(in.Accounts)),
	}

	accountNames := make(map[uuid.UUID]string, len(in.Accounts))
	for _, a := range in.Accounts {
		s.TotalBalance = s.TotalBalance.Add(a.CurrentBalance)
		accountNames[a.ID] = a.Name
		s.Accounts = append(s.Accounts, AccountLine{ID: a.ID, Name: a.Name, Type: a.Type, Balance: a.CurrentBalance})
	}
	cardNames := make(map[uuid.UUID]string, len(in.Cards))
	for _, c := range in.Cards {
		s.TotalLimit = s.TotalLimit.Add(c.LimitAmount)
		s.TotalSpent = s.TotalSpent.Add(c.CurrentSpent)
		cardNames[c.ID] = c.Name
	}
	s.TotalAvailable = creditcard.Available(s.TotalLimit, s.TotalSpent)

	categoryNames := make(map[uuid.UUID]string, len(in.Categories))
	for _, c := range in.Categories {
		categoryNames[c.ID] = c.Name
	}

	seen := make(map[uuid.UUID]bool, len(in.Transactions))
	txs := make([]*transaction.Transaction, 0, len(in.Transactions))
	for _, t := range in.Transactions {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		txs = append(txs, t)
		if !s.Period.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case transaction.Income:
			s.MonthlyIncome = s.MonthlyIncome.Add(t.Amount)
		case transaction.Expense:
			s.MonthlyExpense = s.MonthlyExpense.Add(t.Amount)
		}
	}

	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date.Equal(txs[j].Date) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return txs[i].Date.After(txs[j].Date)
	})
	limit := in.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if len(txs) > limit {
		txs = txs[:limit]
	}
	for _, t := range txs {
		s.Recent = append(s.Recent, entry(t, accountNames, cardNames, categoryNames))
	}
	return s
}

func entry(
	t *transaction.Transaction,
	accounts, cards, categories map[uuid.UUID]string,
) Entry {
	e := Entry{
		ID:           t.ID,
		Description:  t.Description,
		CategoryName: Uncategorized,
		TargetKind:   string(t.Target.Kind),
		Date:         t.Date,
		Type:         t.Type,
		Amount:       t.Amount,
	}
	if e.Description == "" {
		e.Description = NoDescription
	}
	if t.CategoryID != nil {
		if name, ok := categories[*t.CategoryID]; ok {
			e.CategoryName = name
		}
	}
	if t.Target.Kind == transaction.TargetAccount {
		e.TargetName = MissingAccount
		if name, ok := accounts[t.Target.ID]; ok {
			e.TargetName = name
		}
	} else {
		e.TargetName = MissingCard
		if name, ok := cards[t.Target.ID]; ok {
			e.TargetName = name
		}
	}
	return e
}
