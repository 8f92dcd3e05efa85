package auth_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	testutils.E2ETestSuite
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func signUpBody(username, email, password, confirm string) string {
	return fmt.Sprintf(
		`{"username":"%s","email":"%s","password":"%s","confirm_password":"%s"}`,
		username, email, password, confirm,
	)
}

func (s *AuthTestSuite) TestSignUp_SetsSessionCookie() {
	resp := s.MakeRequest(fiber.MethodPost, "/auth/signup",
		signUpBody("ana_01", "ana@example.com", "secret1", "secret1"), "")
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == s.Config.Auth.Jwt.CookieName {
			found = c.Value != "" && c.HttpOnly
		}
	}
	s.True(found, "session cookie should be set")

	out := testutils.Decode[testutils.Envelope[map[string]any]](&s.E2ETestSuite, resp)
	s.NotEmpty(out.Data["token"])
}

func (s *AuthTestSuite) TestSignUp_Errors() {
	s.Require().Equal(fiber.StatusCreated, s.MakeRequest(fiber.MethodPost, "/auth/signup",
		signUpBody("ana_01", "ana@example.com", "secret1", "secret1"), "").StatusCode)

	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"duplicate email", signUpBody("other", "ANA@example.com", "secret1", "secret1"), fiber.StatusConflict, common.MsgEmailRegistered},
		{"duplicate username", signUpBody("ana_01", "b@example.com", "secret1", "secret1"), fiber.StatusConflict, common.MsgUsernameTaken},
		{"password mismatch", signUpBody("bob", "bob@example.com", "secret1", "secret2"), fiber.StatusBadRequest, common.MsgPasswordMismatch},
		{"weak password", signUpBody("bob", "bob@example.com", "12345", "12345"), fiber.StatusBadRequest, common.MsgWeakPassword},
		{"missing fields", `{"username":"bob"}`, fiber.StatusBadRequest, common.MsgMissingFields},
		{"bad username", signUpBody("bob!", "bob@example.com", "secret1", "secret1"), fiber.StatusBadRequest, common.MsgInvalidUsername},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			resp := s.MakeRequest(fiber.MethodPost, "/auth/signup", tc.body, "")
			s.Equal(tc.status, resp.StatusCode)
			pd := testutils.Decode[testutils.Problem](&s.E2ETestSuite, resp)
			s.Equal(tc.detail, pd.Detail)
		})
	}
}

func (s *AuthTestSuite) TestLogin() {
	s.Require().Equal(fiber.StatusCreated, s.MakeRequest(fiber.MethodPost, "/auth/signup",
		signUpBody("ana_01", "ana@example.com", "secret1", "secret1"), "").StatusCode)

	for _, identity := range []string{"ana@example.com", "ana_01"} {
		resp := s.MakeRequest(fiber.MethodPost, "/auth/login",
			fmt.Sprintf(`{"identity":"%s","password":"secret1"}`, identity), "")
		s.Equal(fiber.StatusOK, resp.StatusCode, identity)
	}

	for _, body := range []string{
		`{"identity":"ana@example.com","password":"wrong-pass"}`,
		`{"identity":"nobody@example.com","password":"secret1"}`,
	} {
		resp := s.MakeRequest(fiber.MethodPost, "/auth/login", body, "")
		s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
		pd := testutils.Decode[testutils.Problem](&s.E2ETestSuite, resp)
		s.Equal(common.MsgInvalidCredentials, pd.Detail)
	}
}

func (s *AuthTestSuite) TestLogout_ClearsCookie() {
	resp := s.MakeRequest(fiber.MethodPost, "/auth/logout", "", "")
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == s.Config.Auth.Jwt.CookieName {
			s.Empty(c.Value)
		}
	}
}

func (s *AuthTestSuite) TestBetaCap() {
	cfg := testutils.TestConfig()
	cfg.Beta = &config.Beta{MaxUsers: 1}
	s.Setup(cfg)

	s.SignUp()

	resp := s.MakeRequest(fiber.MethodGet, "/auth/beta", "", "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	status := testutils.Decode[testutils.Envelope[struct {
		Registered int  `json:"registered"`
		Max        int  `json:"max"`
		Full       bool `json:"full"`
	}]](&s.E2ETestSuite, resp)
	s.Equal(1, status.Data.Registered)
	s.Equal(1, status.Data.Max)
	s.True(status.Data.Full)

	resp = s.MakeRequest(fiber.MethodPost, "/auth/signup",
		signUpBody("late_user", "late@example.com", "secret1", "secret1"), "")
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
	pd := testutils.Decode[testutils.Problem](&s.E2ETestSuite, resp)
	s.Equal(common.MsgSignupDisabled, pd.Detail)

	resp = s.MakeRequest(fiber.MethodGet, "/auth/sign-up", "", "")
	s.Equal(fiber.StatusSeeOther, resp.StatusCode)
	s.Equal("/beta-full", resp.Header.Get(fiber.HeaderLocation))
}

func (s *AuthTestSuite) TestLoginRateLimit() {
	cfg := testutils.TestConfig()
	cfg.RateLimit.AuthMaxRequests = 2
	s.Setup(cfg)

	body := `{"identity":"ana@example.com","password":"secret1"}`
	for range 2 {
		s.Equal(fiber.StatusUnauthorized, s.MakeRequest(fiber.MethodPost, "/auth/login", body, "").StatusCode)
	}
	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", body, "")
	s.Equal(fiber.StatusTooManyRequests, resp.StatusCode)
	pd := testutils.Decode[testutils.Problem](&s.E2ETestSuite, resp)
	s.Equal(common.MsgTooManyAttempts, pd.Detail)
}
