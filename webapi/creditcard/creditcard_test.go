package creditcard_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/fintrack/webapi/creditcard"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CardTestSuite struct {
	testutils.E2ETestSuite
	token string
}

func TestCardTestSuite(t *testing.T) {
	suite.Run(t, new(CardTestSuite))
}

func (s *CardTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	_, s.token = s.SignUp()
}

func (s *CardTestSuite) get(id uuid.UUID) creditcard.CardDTO {
	resp := s.MakeRequest(fiber.MethodGet, "/cards/"+id.String(), "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	return testutils.Decode[testutils.Envelope[creditcard.CardDTO]](&s.E2ETestSuite, resp).Data
}

func (s *CardTestSuite) TestCreate_ComputesAvailable() {
	id := s.CreateResource("/cards",
		`{"name":"Visa","limit_amount":"1000","current_spent":"250","billing_cycle_day":15}`, s.token)
	c := s.get(id)
	s.Equal("Visa", c.Name)
	s.Equal(15, c.BillingCycleDay)
	s.True(c.Available.Equal(decimal.NewFromInt(750)))
	s.True(c.UsagePercent.Equal(decimal.NewFromInt(25)))
}

func (s *CardTestSuite) TestCreate_Invalid() {
	tests := map[string]string{
		"missing limit":  `{"name":"Visa","billing_cycle_day":1}`,
		"day zero":       `{"name":"Visa","limit_amount":"1","billing_cycle_day":0}`,
		"day 32":         `{"name":"Visa","limit_amount":"1","billing_cycle_day":32}`,
		"negative limit": `{"name":"Visa","limit_amount":"-1","billing_cycle_day":1}`,
		"negative spent": `{"name":"Visa","limit_amount":"1","current_spent":"-5","billing_cycle_day":1}`,
		"blank name":     `{"name":" ","limit_amount":"1","billing_cycle_day":1}`,
	}
	for name, body := range tests {
		s.Run(name, func() {
			s.Equal(fiber.StatusBadRequest, s.MakeRequest(fiber.MethodPost, "/cards", body, s.token).StatusCode)
		})
	}
}

func (s *CardTestSuite) TestExpenseMovesSpent() {
	id := s.CreateResource("/cards", `{"name":"Visa","limit_amount":"1000","billing_cycle_day":5}`, s.token)
	s.CreateResource("/transactions", fmt.Sprintf(
		`{"target_type":"credit_card","target_id":"%s","amount":"200","type":"expense"}`, id), s.token)
	c := s.get(id)
	s.True(c.CurrentSpent.Equal(decimal.NewFromInt(200)))
	s.True(c.Available.Equal(decimal.NewFromInt(800)))

	resp := s.MakeRequest(fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"target_type":"credit_card","target_id":"%s","amount":"50","type":"income"}`, id), s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode, "cards only take expenses")
	s.True(s.get(id).CurrentSpent.Equal(decimal.NewFromInt(200)))
}

func (s *CardTestSuite) TestUpdateAndDelete() {
	id := s.CreateResource("/cards", `{"name":"Visa","limit_amount":"1000","billing_cycle_day":5}`, s.token)
	resp := s.MakeRequest(fiber.MethodPut, "/cards/"+id.String(),
		`{"name":"Visa Oro","limit_amount":"2000","billing_cycle_day":20}`, s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	c := testutils.Decode[testutils.Envelope[creditcard.CardDTO]](&s.E2ETestSuite, resp).Data
	s.Equal("Visa Oro", c.Name)
	s.Equal(20, c.BillingCycleDay)
	s.True(c.Available.Equal(decimal.NewFromInt(2000)))

	s.Equal(fiber.StatusNoContent, s.MakeRequest(fiber.MethodDelete, "/cards/"+id.String(), "", s.token).StatusCode)
	s.Equal(fiber.StatusNotFound, s.MakeRequest(fiber.MethodGet, "/cards/"+id.String(), "", s.token).StatusCode)
}

func (s *CardTestSuite) TestOtherUsersCardIsNotFound() {
	_, other := s.SignUp()
	id := s.CreateResource("/cards", `{"name":"Visa","limit_amount":"1000","billing_cycle_day":5}`, other)
	s.Equal(fiber.StatusNotFound, s.MakeRequest(fiber.MethodGet, "/cards/"+id.String(), "", s.token).StatusCode)

	list := testutils.Decode[testutils.Envelope[[]creditcard.CardDTO]](&s.E2ETestSuite,
		s.MakeRequest(fiber.MethodGet, "/cards", "", s.token)).Data
	s.Empty(list)
}
