// Package testutils provides a testify suite that drives the full Fiber
// application over an in-memory database.
package testutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/infra/cache"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	pkgtestutils "github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/amirasaad/fintrack/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// E2ETestSuite builds a fresh application for every test.
type E2ETestSuite struct {
	suite.Suite
	App    *app.App
	Fiber  *fiber.App
	Config *config.App
}

// TestConfig returns a configuration with limits high enough that tests
// are not throttled.
func TestConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:    &config.Log{Format: "text"},
		DB:     &config.DB{},
		Auth: &config.Auth{
			Strategy: "jwt",
			Jwt: &config.Jwt{
				Secret:     "test-secret",
				Expiry:     time.Hour,
				CookieName: "fintrack_token",
			},
		},
		Redis: &config.Redis{},
		RateLimit: &config.RateLimit{
			MaxRequests:     1000,
			Window:          time.Minute,
			AuthMaxRequests: 1000,
			AuthWindow:      time.Minute,
		},
		Beta:        &config.Beta{MaxUsers: 0},
		Idempotency: &config.Idempotency{TTL: time.Hour},
		Dashboard:   &config.Dashboard{RecentLimit: 5, Timezone: "UTC"},
	}
}

// SetupSuite lowers the bcrypt cost so sign-ups stay fast.
func (s *E2ETestSuite) SetupSuite() {
	utils.PasswordCost = bcrypt.MinCost
}

func (s *E2ETestSuite) SetupTest() {
	s.Setup(TestConfig())
}

// Setup builds the application from cfg, replacing the one SetupTest made.
func (s *E2ETestSuite) Setup(cfg *config.App) {
	storage := cache.NewMemoryStorage(time.Minute)
	s.T().Cleanup(func() { _ = storage.Close() })
	s.Config = cfg
	s.App = app.New(&app.Deps{
		Uow:     pkgtestutils.NewTestUoW(s.T()),
		Storage: storage,
		Logger:  pkgtestutils.DiscardLogger(),
	}, cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// MakeRequest sends a JSON request. token is sent as a bearer token when set.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return pkgtestutils.MakeRequest(s.T(), s.Fiber, method, path, body, token)
}

// MakeRequestWithHeaders is MakeRequest with extra headers.
func (s *E2ETestSuite) MakeRequestWithHeaders(
	method, path, body, token string,
	headers map[string]string,
) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Envelope mirrors the success response so tests can decode Data into a
// concrete type.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Problem mirrors the problem details body.
type Problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Errors any    `json:"errors"`
}

// Decode reads the response body into T and closes it.
func Decode[T any](s *E2ETestSuite, resp *http.Response) T {
	defer resp.Body.Close() //nolint:errcheck
	var out T
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// SignUp registers a random user and returns its id and token.
func (s *E2ETestSuite) SignUp() (uuid.UUID, string) {
	suffix := uuid.NewString()[:8]
	body := fmt.Sprintf(
		`{"username":"user_%s","email":"user_%s@example.com","password":"%s","confirm_password":"%s"}`,
		suffix, suffix, pkgtestutils.TestPassword, pkgtestutils.TestPassword,
	)
	resp := s.MakeRequest(fiber.MethodPost, "/auth/signup", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	out := Decode[Envelope[struct {
		User struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}]](s, resp)
	s.Require().NotEmpty(out.Data.Token)
	return out.Data.User.ID, out.Data.Token
}

// CreateResource posts body to path and returns the created id.
func (s *E2ETestSuite) CreateResource(path, body, token string) uuid.UUID {
	resp := s.MakeRequest(fiber.MethodPost, path, body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode, path)
	out := Decode[Envelope[struct {
		ID uuid.UUID `json:"id"`
	}]](s, resp)
	return out.Data.ID
}
