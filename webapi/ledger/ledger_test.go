package ledger_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/amirasaad/fintrack/pkg/repository"
	repoaccount "github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/webapi/ledger"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	testutils.E2ETestSuite
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) drifts(method, path, token string) []ledger.DriftDTO {
	resp := s.MakeRequest(method, path, "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	return testutils.Decode[testutils.Envelope[[]ledger.DriftDTO]](&s.E2ETestSuite, resp).Data
}

func (s *LedgerTestSuite) TestCheckAndRepair() {
	_, token := s.SignUp()
	id := s.CreateResource("/accounts", `{"name":"Corriente","type":"checking","initial_balance":"100"}`, token)
	s.CreateResource("/transactions", fmt.Sprintf(
		`{"target_type":"account","target_id":"%s","amount":"40","type":"expense"}`, id), token)

	s.Empty(s.drifts(fiber.MethodGet, "/ledger/check", token))

	accounts, err := repository.Get[repoaccount.Repository](s.App.Deps.Uow)
	s.Require().NoError(err)
	s.Require().NoError(accounts.SetBalance(context.Background(), id, decimal.NewFromInt(500)))

	drifts := s.drifts(fiber.MethodGet, "/ledger/check", token)
	s.Require().Len(drifts, 1)
	s.Equal("account", drifts[0].Kind)
	s.True(drifts[0].Expected.Equal(decimal.NewFromInt(60)))
	s.True(drifts[0].Difference.Equal(decimal.NewFromInt(440)))

	s.Len(s.drifts(fiber.MethodPost, "/ledger/repair", token), 1)
	s.Empty(s.drifts(fiber.MethodGet, "/ledger/check", token))
}

func (s *LedgerTestSuite) TestRequiresToken() {
	s.Equal(fiber.StatusBadRequest, s.MakeRequest(fiber.MethodPost, "/ledger/repair", "", "").StatusCode)
}
