package webapi_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type WebAPITestSuite struct {
	testutils.E2ETestSuite
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func (s *WebAPITestSuite) get(path string, headers map[string]string) int {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint:errcheck
	return resp.StatusCode
}

func (s *WebAPITestSuite) TestHealth() {
	resp := s.MakeRequest(fiber.MethodGet, "/", "", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "FinTrack")
}

func (s *WebAPITestSuite) TestRateLimit_PerForwardedClient() {
	cfg := testutils.TestConfig()
	cfg.RateLimit.MaxRequests = 5
	cfg.RateLimit.Window = time.Minute
	s.Setup(cfg)

	first := map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}
	for i := range 5 {
		s.Equal(fiber.StatusOK, s.get("/", first), "request %d", i+1)
	}
	s.Equal(fiber.StatusTooManyRequests, s.get("/", first))

	s.Equal(fiber.StatusOK, s.get("/", map[string]string{"X-Forwarded-For": "198.51.100.2"}))
	s.Equal(fiber.StatusOK, s.get("/", map[string]string{"X-Real-IP": "198.51.100.3"}))
}

func (s *WebAPITestSuite) TestUnknownRoute() {
	resp := s.MakeRequest(fiber.MethodGet, "/nope", "", "")
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal(common.MIMEProblemJSON, resp.Header.Get(fiber.HeaderContentType))
	pd := testutils.Decode[testutils.Problem](&s.E2ETestSuite, resp)
	s.Equal(fiber.StatusNotFound, pd.Status)
}
