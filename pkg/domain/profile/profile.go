package profile

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
)

// FallbackUsername is shown when neither a username nor an email is known.
const FallbackUsername = "Usuario"

var (
	// ErrProfileNotFound is returned when no profile row exists.
	ErrProfileNotFound = fmt.Errorf("profile not found: %w", domain.ErrNotFound)
	// ErrInvalidCurrency is returned for an unsupported display currency.
	ErrInvalidCurrency = fmt.Errorf("%w: currency must be USD or CLP", domain.ErrValidation)
	// ErrInvalidAvatarURL is returned when the avatar is not an absolute http(s) URL.
	ErrInvalidAvatarURL = fmt.Errorf("%w: avatar url must be an http or https url", domain.ErrValidation)
	// ErrUsernameRequired is returned when the display name is blank.
	ErrUsernameRequired = fmt.Errorf("%w: username is required", domain.ErrValidation)
)

// Profile holds a user's display preferences. Its id is the user id.
type Profile struct {
	ID        uuid.UUID
	Username  string
	Currency  currency.Code
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefault builds the profile created on first authenticated access.
func NewDefault(userID uuid.UUID, username, email string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:        userID,
		Username:  DefaultUsername(username, email),
		Currency:  currency.Default,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultUsername picks username, else the local part of email, else
// FallbackUsername.
func DefaultUsername(username, email string) string {
	if u := strings.TrimSpace(username); u != "" {
		return u
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(email), "@"); ok && local != "" {
		return local
	}
	return FallbackUsername
}

// ValidateAvatarURL accepts an empty string or an absolute http(s) URL.
func ValidateAvatarURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAvatarURL
	}
	return nil
}

// Initials returns up to two upper-case initials of name for avatar fallbacks.
func Initials(name string) string {
	var initials []rune
	for _, part := range strings.Fields(name) {
		initials = append(initials, []rune(strings.ToUpper(part))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
