package account_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/amirasaad/fintrack/pkg/middleware"
	"github.com/amirasaad/fintrack/webapi/account"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	testutils.E2ETestSuite
	token string
}

func TestAccountTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}

func (s *AccountTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	_, s.token = s.SignUp()
}

func (s *AccountTestSuite) get(id uuid.UUID) account.AccountDTO {
	resp := s.MakeRequest(fiber.MethodGet, "/accounts/"+id.String(), "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	return testutils.Decode[testutils.Envelope[account.AccountDTO]](&s.E2ETestSuite, resp).Data
}

func (s *AccountTestSuite) TestCreateAndGet() {
	id := s.CreateResource("/accounts", `{"name":"Corriente","type":"checking","initial_balance":"1500.50"}`, s.token)
	a := s.get(id)
	s.Equal("Corriente", a.Name)
	s.Equal("checking", a.Type)
	s.True(a.InitialBalance.Equal(decimal.RequireFromString("1500.50")))
	s.True(a.CurrentBalance.Equal(a.InitialBalance))
}

func (s *AccountTestSuite) TestCreate_DefaultsToZeroBalance() {
	id := s.CreateResource("/accounts", `{"name":"Efectivo","type":"cash"}`, s.token)
	s.True(s.get(id).CurrentBalance.IsZero())
}

func (s *AccountTestSuite) TestCreate_Invalid() {
	for _, body := range []string{
		`{"type":"checking"}`,
		`{"name":"x","type":"crypto"}`,
		`{"name":"   ","type":"cash"}`,
		`not json`,
	} {
		resp := s.MakeRequest(fiber.MethodPost, "/accounts", body, s.token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, body)
	}
}

func (s *AccountTestSuite) TestList_OnlyOwnAccounts() {
	s.CreateResource("/accounts", `{"name":"Mía","type":"savings"}`, s.token)
	_, other := s.SignUp()
	s.CreateResource("/accounts", `{"name":"Ajena","type":"savings"}`, other)

	resp := s.MakeRequest(fiber.MethodGet, "/accounts", "", s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	list := testutils.Decode[testutils.Envelope[[]account.AccountDTO]](&s.E2ETestSuite, resp).Data
	s.Require().Len(list, 1)
	s.Equal("Mía", list[0].Name)
}

func (s *AccountTestSuite) TestOtherUsersAccountIsNotFound() {
	_, other := s.SignUp()
	id := s.CreateResource("/accounts", `{"name":"Ajena","type":"savings"}`, other)
	path := "/accounts/" + id.String()

	s.Equal(fiber.StatusNotFound, s.MakeRequest(fiber.MethodGet, path, "", s.token).StatusCode)
	s.Equal(fiber.StatusNotFound, s.MakeRequest(fiber.MethodPut, path, `{"name":"x"}`, s.token).StatusCode)
	s.Equal(fiber.StatusNotFound, s.MakeRequest(fiber.MethodDelete, path, "", s.token).StatusCode)
	s.Equal(fiber.StatusBadRequest, s.MakeRequest(fiber.MethodGet, "/accounts/not-a-uuid", "", s.token).StatusCode)
}

func (s *AccountTestSuite) TestUpdate_InitialBalanceShiftsCurrent() {
	id := s.CreateResource("/accounts", `{"name":"Corriente","type":"checking","initial_balance":"100"}`, s.token)
	s.CreateResource("/transactions", fmt.Sprintf(
		`{"target_type":"account","target_id":"%s","amount":"30","type":"expense"}`, id), s.token)

	resp := s.MakeRequest(fiber.MethodPut, "/accounts/"+id.String(),
		`{"name":"Principal","type":"savings","initial_balance":"250"}`, s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	a := testutils.Decode[testutils.Envelope[account.AccountDTO]](&s.E2ETestSuite, resp).Data
	s.Equal("Principal", a.Name)
	s.Equal("savings", a.Type)
	s.True(a.CurrentBalance.Equal(decimal.NewFromInt(220)), a.CurrentBalance.String())
}

func (s *AccountTestSuite) TestDelete_RemovesTransactions() {
	id := s.CreateResource("/accounts", `{"name":"Corriente","type":"checking"}`, s.token)
	s.CreateResource("/transactions", fmt.Sprintf(
		`{"target_type":"account","target_id":"%s","amount":"10","type":"income"}`, id), s.token)

	s.Equal(fiber.StatusNoContent, s.MakeRequest(fiber.MethodDelete, "/accounts/"+id.String(), "", s.token).StatusCode)
	s.Equal(fiber.StatusNotFound, s.MakeRequest(fiber.MethodGet, "/accounts/"+id.String(), "", s.token).StatusCode)

	resp := s.MakeRequest(fiber.MethodGet, "/transactions", "", s.token)
	list := testutils.Decode[testutils.Envelope[[]map[string]any]](&s.E2ETestSuite, resp).Data
	s.Empty(list)
}

func (s *AccountTestSuite) TestCreate_IdempotencyKeyReplays() {
	headers := map[string]string{middleware.IdempotencyKeyHeader: "create-checking-1"}
	body := `{"name":"Corriente","type":"checking"}`

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		resps []*http.Response
	)
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.MakeRequestWithHeaders(fiber.MethodPost, "/accounts", body, s.token, headers)
			mu.Lock()
			resps = append(resps, resp)
			mu.Unlock()
		}()
	}
	wg.Wait()

	ids := map[uuid.UUID]bool{}
	for _, resp := range resps {
		s.Equal(fiber.StatusCreated, resp.StatusCode)
		ids[testutils.Decode[testutils.Envelope[account.AccountDTO]](&s.E2ETestSuite, resp).Data.ID] = true
	}
	s.Len(ids, 1)

	resp := s.MakeRequestWithHeaders(fiber.MethodPost, "/accounts", body, s.token, headers)
	s.Equal("true", resp.Header.Get(middleware.ReplayedHeader))

	list := testutils.Decode[testutils.Envelope[[]account.AccountDTO]](&s.E2ETestSuite,
		s.MakeRequest(fiber.MethodGet, "/accounts", "", s.token)).Data
	s.Len(list, 1)
}
