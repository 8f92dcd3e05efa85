package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	txsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/amirasaad/fintrack/pkg/utils"
	webtestutils "github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	color.NoColor = true
	m.Run()
}

func newTestApp(t *testing.T) (*app.App, func() (*app.App, error)) {
	t.Helper()
	a := app.New(&app.Deps{
		Uow:    testutils.NewTestUoW(t),
		Logger: testutils.DiscardLogger(),
	}, webtestutils.TestConfig())
	return a, func() (*app.App, error) { return a, nil }
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	_, factory := newTestApp(t)
	err := run(context.Background(), nil, strings.NewReader(""), &stdout, &stderr, factory)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "adduser")

	err = run(context.Background(), []string{"nope"}, strings.NewReader(""), &stdout, &stderr, factory)
	assert.ErrorIs(t, err, errUsage)

	err = run(context.Background(), []string{"summary"}, strings.NewReader(""), &stdout, &stderr, factory)
	assert.ErrorIs(t, err, errUsage)
}

func TestAddUser_Prompts(t *testing.T) {
	a, factory := newTestApp(t)
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("cli_user\ncli@example.com\nsecret1\n")

	err := run(context.Background(), []string{"adduser"}, stdin, &stdout, &stderr, factory)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User cli_user created")

	u, err := a.UserService.GetUserByEmail(context.Background(), "cli@example.com")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("secret1", u.HashedPassword))
}

func TestAddUser_Rejected(t *testing.T) {
	_, factory := newTestApp(t)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"adduser", "-username", "x!", "-email", "x@example.com", "-password", "secret1"},
		strings.NewReader(""), &stdout, &stderr, factory)
	assert.Error(t, err)
}

func TestReconcile(t *testing.T) {
	a, factory := newTestApp(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(t, a.Deps.Uow)
	acc, err := a.AccountService.Create(ctx, u.ID, "Corriente", "checking", decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = a.TransactionService.Create(ctx, u.ID, txsvc.Input{
		Target: transaction.Target{Kind: transaction.TargetAccount, ID: acc.ID},
		Date:   acc.CreatedAt,
		Amount: decimal.NewFromInt(30),
		Type:   transaction.Expense,
	})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(ctx, []string{"reconcile"}, strings.NewReader(""), &stdout, &stderr, factory))
	assert.Contains(t, stdout.String(), "All balances match")

	accounts, err := repository.Get[repoaccount.Repository](a.Deps.Uow)
	require.NoError(t, err)
	require.NoError(t, accounts.SetBalance(ctx, acc.ID, decimal.NewFromInt(5)))

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"reconcile", "-email", u.Email}, strings.NewReader(""), &stdout, &stderr, factory))
	assert.Contains(t, stdout.String(), "expected 70")
	assert.Contains(t, stdout.String(), "run with -fix")

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"reconcile", "-fix"}, strings.NewReader(""), &stdout, &stderr, factory))
	assert.Contains(t, stdout.String(), "Repaired 1 balances")

	got, err := a.AccountService.Get(ctx, u.ID, acc.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(70)))
}

func TestSummary(t *testing.T) {
	a, factory := newTestApp(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(t, a.Deps.Uow)
	_, err := a.AccountService.Create(ctx, u.ID, "Corriente", "checking", decimal.NewFromInt(1500))
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(ctx, []string{"summary", "-email", u.Email}, strings.NewReader(""), &stdout, &stderr, factory))
	assert.Contains(t, stdout.String(), "Total balance:   $1,500.00 (1 accounts)")
}
