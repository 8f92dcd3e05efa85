package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	repocard "github.com/amirasaad/fintrack/pkg/repository/creditcard"
	accountsvc "github.com/amirasaad/fintrack/pkg/service/account"
	cardsvc "github.com/amirasaad/fintrack/pkg/service/creditcard"
	"github.com/amirasaad/fintrack/pkg/service/ledger"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCheckAndRepair(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	logger := testutils.DiscardLogger()
	userID := uuid.New()

	acc, err := accountsvc.New(uow, logger).Create(ctx, userID, "A", account.Checking, dec("100"))
	require.NoError(t, err)
	card, err := cardsvc.New(uow, logger).Create(ctx, userID, "Visa", dec("1000"), dec("50"), 10)
	require.NoError(t, err)
	txs := txsvc.New(uow, logger)
	_, err = txs.Create(ctx, userID, txsvc.Input{
		Target: transaction.Target{Kind: transaction.TargetAccount, ID: acc.ID},
		Date:   time.Now(), Amount: dec("30"), Type: transaction.Expense,
	})
	require.NoError(t, err)
	_, err = txs.Create(ctx, userID, txsvc.Input{
		Target: transaction.Target{Kind: transaction.TargetCreditCard, ID: card.ID},
		Date:   time.Now(), Amount: dec("20"), Type: transaction.Expense,
	})
	require.NoError(t, err)

	svc := ledger.New(uow, logger)
	drifts, err := svc.Check(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, drifts)

	accounts, err := repository.Get[repoaccount.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, accounts.SetBalance(ctx, acc.ID, dec("999")))
	cards, err := repository.Get[repocard.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, cards.SetSpent(ctx, card.ID, dec("0")))

	drifts, err = svc.Check(ctx, userID)
	require.NoError(t, err)
	require.Len(t, drifts, 2)
	assert.Equal(t, transaction.TargetAccount, drifts[0].Kind)
	assert.True(t, drifts[0].Expected.Equal(dec("70")), drifts[0].Expected.String())
	assert.True(t, drifts[0].Difference().Equal(dec("929")))
	assert.Equal(t, transaction.TargetCreditCard, drifts[1].Kind)
	assert.True(t, drifts[1].Expected.Equal(dec("70")), drifts[1].Expected.String())

	fixed, err := svc.Repair(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, fixed, 2)

	drifts, err = svc.Check(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, drifts)

	got, err := accounts.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(dec("70")))
}

func TestCheck_OtherUsersIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	logger := testutils.DiscardLogger()

	other, err := accountsvc.New(uow, logger).Create(ctx, uuid.New(), "B", account.Cash, dec("5"))
	require.NoError(t, err)
	accounts, err := repository.Get[repoaccount.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, accounts.SetBalance(ctx, other.ID, dec("6")))

	drifts, err := ledger.New(uow, logger).Check(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, drifts)
}
