package category_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/fintrack/webapi/category"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type CategoryTestSuite struct {
	testutils.E2ETestSuite
	token string
}

func TestCategoryTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryTestSuite))
}

func (s *CategoryTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	_, s.token = s.SignUp()
}

func (s *CategoryTestSuite) list(query string) []category.CategoryDTO {
	resp := s.MakeRequest(fiber.MethodGet, "/categories"+query, "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	return testutils.Decode[testutils.Envelope[[]category.CategoryDTO]](&s.E2ETestSuite, resp).Data
}

func (s *CategoryTestSuite) TestCreateAndFilter() {
	s.CreateResource("/categories", `{"name":"Sueldo","type":"income"}`, s.token)
	s.CreateResource("/categories", `{"name":"Comida","type":"expense"}`, s.token)
	s.CreateResource("/categories", `{"name":"Arriendo","type":"expense"}`, s.token)

	s.Len(s.list(""), 3)
	expenses := s.list("?type=expense")
	s.Require().Len(expenses, 2)
	for _, c := range expenses {
		s.Equal("expense", c.Type)
	}
	s.Len(s.list("?type=income"), 1)

	s.Equal(fiber.StatusBadRequest, s.MakeRequest(fiber.MethodGet, "/categories?type=other", "", s.token).StatusCode)
}

func (s *CategoryTestSuite) TestCreate_Invalid() {
	for _, body := range []string{`{"name":"x","type":"transfer"}`, `{"type":"income"}`} {
		s.Equal(fiber.StatusBadRequest, s.MakeRequest(fiber.MethodPost, "/categories", body, s.token).StatusCode)
	}
}

func (s *CategoryTestSuite) TestUpdate() {
	id := s.CreateResource("/categories", `{"name":"Comida","type":"expense"}`, s.token)
	resp := s.MakeRequest(fiber.MethodPut, "/categories/"+id.String(), `{"name":"Supermercado"}`, s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	c := testutils.Decode[testutils.Envelope[category.CategoryDTO]](&s.E2ETestSuite, resp).Data
	s.Equal("Supermercado", c.Name)
	s.Equal("expense", c.Type)
}

func (s *CategoryTestSuite) TestDelete_UncategorizesTransactions() {
	accountID := s.CreateResource("/accounts", `{"name":"Corriente","type":"checking"}`, s.token)
	categoryID := s.CreateResource("/categories", `{"name":"Comida","type":"expense"}`, s.token)
	txID := s.CreateResource("/transactions", fmt.Sprintf(
		`{"target_type":"account","target_id":"%s","category_id":"%s","amount":"12.50","type":"expense"}`,
		accountID, categoryID), s.token)

	s.Equal(fiber.StatusNoContent,
		s.MakeRequest(fiber.MethodDelete, "/categories/"+categoryID.String(), "", s.token).StatusCode)

	resp := s.MakeRequest(fiber.MethodGet, "/transactions/"+txID.String(), "", s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	tx := testutils.Decode[testutils.Envelope[map[string]any]](&s.E2ETestSuite, resp).Data
	s.Nil(tx["category_id"])
}

func (s *CategoryTestSuite) TestOtherUsersCategoryIsNotFound() {
	_, other := s.SignUp()
	id := s.CreateResource("/categories", `{"name":"Comida","type":"expense"}`, other)
	s.Equal(fiber.StatusNotFound,
		s.MakeRequest(fiber.MethodDelete, "/categories/"+id.String(), "", s.token).StatusCode)
	s.Empty(s.list(""))
}
