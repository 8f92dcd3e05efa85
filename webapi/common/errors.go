package common

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
)

// User-facing auth messages.
const (
	MsgInvalidCredentials = "Credenciales inválidas. Verifica tu correo y contraseña."
	MsgTooManyAttempts    = "Demasiados intentos. Espera unos minutos antes de intentar nuevamente."
	MsgEmailRegistered    = "Este correo ya está registrado. Intenta iniciar sesión."
	MsgUsernameTaken      = "Este nombre de usuario ya está en uso."
	MsgWeakPassword       = "La contraseña debe tener al menos 6 caracteres"
	MsgPasswordTooLong    = "La contraseña no puede tener más de 72 caracteres"
	MsgPasswordMismatch   = "Las contraseñas no coinciden"
	MsgInvalidEmail       = "Formato de correo inválido"
	MsgInvalidUsername    = "El nombre de usuario solo puede contener letras, números y guiones bajos"
	MsgSignupDisabled     = "El registro está temporalmente deshabilitado"
	MsgMissingFields      = "Por favor completa todos los campos requeridos."
	MsgUnexpected         = "Error inesperado. Intenta nuevamente."
	MsgProfileNotCreated  = "No se pudo crear el perfil del usuario"
	MsgUnauthenticated    = "No autenticado"
)

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, user.ErrUserUnauthorized), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, user.ErrSignupDisabled), errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// AuthMessage returns the Spanish message shown for a sign-up or login
// failure.
func AuthMessage(err error) string {
	switch {
	case errors.Is(err, user.ErrUserUnauthorized):
		return MsgInvalidCredentials
	case errors.Is(err, user.ErrEmailTaken):
		return MsgEmailRegistered
	case errors.Is(err, user.ErrUsernameTaken):
		return MsgUsernameTaken
	case errors.Is(err, user.ErrWeakPassword):
		return MsgWeakPassword
	case errors.Is(err, user.ErrPasswordTooLong):
		return MsgPasswordTooLong
	case errors.Is(err, user.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, user.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, user.ErrInvalidUsername):
		return MsgInvalidUsername
	case errors.Is(err, user.ErrSignupDisabled):
		return MsgSignupDisabled
	default:
		return MsgUnexpected
	}
}
