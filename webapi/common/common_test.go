package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/account"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{account.ErrAccountNotFound, fiber.StatusNotFound},
		{account.ErrNameRequired, fiber.StatusBadRequest},
		{user.ErrEmailTaken, fiber.StatusConflict},
		{user.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{user.ErrSignupDisabled, fiber.StatusForbidden},
		{fmt.Errorf("wrapped: %w", domain.ErrForbidden), fiber.StatusForbidden},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ErrorToStatusCode(tc.err), tc.err.Error())
	}
}

func TestAuthMessage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, MsgInvalidCredentials, AuthMessage(user.ErrUserUnauthorized))
	assert.Equal(t, MsgEmailRegistered, AuthMessage(user.ErrEmailTaken))
	assert.Equal(t, MsgWeakPassword, AuthMessage(user.ErrWeakPassword))
	assert.Equal(t, MsgInvalidEmail, AuthMessage(user.ErrInvalidEmail))
	assert.Equal(t, MsgSignupDisabled, AuthMessage(user.ErrSignupDisabled))
	assert.Equal(t, MsgUnexpected, AuthMessage(errors.New("db down")))
}

func decodeProblem(t *testing.T, resp *http.Response) ProblemDetails {
	t.Helper()
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

func TestProblemDetailsJSON(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/notfound", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Missing", account.ErrAccountNotFound)
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Error al guardar la cuenta", errors.New("pq: secret detail"))
	})
	app.Get("/explicit", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Nope", nil, "custom detail", fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notfound", nil))
	require.NoError(t, err)
	pd := decodeProblem(t, resp)
	assert.Equal(t, fiber.StatusNotFound, pd.Status)
	assert.Equal(t, "/notfound", pd.Instance)
	assert.Contains(t, pd.Detail, "account not found")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
	require.NoError(t, err)
	pd = decodeProblem(t, resp)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, pd.Detail)
	assert.Equal(t, "Error al guardar la cuenta", pd.Title)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/explicit", nil))
	require.NoError(t, err)
	pd = decodeProblem(t, resp)
	assert.Equal(t, fiber.StatusTeapot, pd.Status)
	assert.Equal(t, "custom detail", pd.Detail)
}

type signUpInput struct {
	Username        string `json:"username" validate:"required,min=3,max=20"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[signUpInput](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in.Username)
	})
	send := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	tests := []struct {
		name   string
		body   string
		detail string
		field  string
	}{
		{"malformed", `{"username":`, "El cuerpo de la solicitud no es válido", ""},
		{"missing", `{"username":"ana"}`, MsgMissingFields, "email"},
		{"short password", `{"username":"ana","email":"a@b.co","password":"123","confirm_password":"123"}`, MsgWeakPassword, "password"},
		{"mismatch", `{"username":"ana","email":"a@b.co","password":"secret1","confirm_password":"secret2"}`, MsgPasswordMismatch, "confirm_password"},
		{"bad email", `{"username":"ana","email":"nope","password":"secret1","confirm_password":"secret1"}`, MsgInvalidEmail, "email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			pd := decodeProblem(t, resp)
			assert.Equal(t, tc.detail, pd.Detail)
			if tc.field != "" {
				fields, ok := pd.Errors.(map[string]any)
				require.True(t, ok)
				assert.Contains(t, fields, tc.field)
			}
		})
	}

	resp := send(`{"username":"ana","email":"a@b.co","password":"secret1","confirm_password":"secret1"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
