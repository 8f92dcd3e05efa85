// Package testutils holds helpers shared by service and HTTP tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/migrations"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repouser "github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestPassword is the password given to users made by CreateTestUser.
const TestPassword = "password123"

// NewTestDB opens a private in-memory sqlite database with the schema applied.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := infra.NewDBConnection(&config.DB{
		Url: fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", name),
	}, "test")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestUoW returns a UnitOfWork over a fresh test database.
func NewTestUoW(t testing.TB) *infra.UoW {
	t.Helper()
	return infra.NewUoW(NewTestDB(t))
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestUser stores a user with a random username and TestPassword.
func CreateTestUser(t testing.TB, uow repository.UnitOfWork) *dto.UserRead {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u, err := user.New("user_"+suffix, "test_"+suffix+"@example.com", TestPassword)
	require.NoError(t, err)
	ctx := context.Background()
	repo, err := repository.Get[repouser.Repository](uow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &dto.UserCreate{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}))
	read, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	return read
}

// MakeRequest sends a request through app.Test. body may be empty and token
// is sent as a bearer token when set.
func MakeRequest(t testing.TB, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
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
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
