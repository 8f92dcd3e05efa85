package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/google/uuid"
)

const (
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("user not found: %w", domain.ErrNotFound)
	// ErrUserUnauthorized is returned for unknown identities and wrong passwords.
	ErrUserUnauthorized = errors.New("user unauthorized")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = fmt.Errorf("email already registered: %w", domain.ErrAlreadyExists)
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = fmt.Errorf("username already registered: %w", domain.ErrAlreadyExists)
	// ErrWeakPassword is returned for passwords shorter than MinPasswordLength.
	ErrWeakPassword = fmt.Errorf("%w: password should be at least 6 characters", domain.ErrValidation)
	// ErrPasswordTooLong is returned for passwords over MaxPasswordLength bytes.
	ErrPasswordTooLong = fmt.Errorf("%w: password is too long", domain.ErrValidation)
	// ErrPasswordMismatch is returned when the confirmation differs.
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", domain.ErrValidation)
	// ErrInvalidUsername is returned for usernames outside 3-20 [a-zA-Z0-9_].
	ErrInvalidUsername = fmt.Errorf("%w: invalid username", domain.ErrValidation)
	// ErrSignupDisabled is returned when the beta user cap has been reached.
	ErrSignupDisabled = errors.New("signup is disabled")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// User represents an authenticated identity.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// New validates the credentials and returns a User with a hashed password.
func New(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if !utils.IsEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidatePassword enforces the length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
