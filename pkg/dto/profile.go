package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain/profile"
	"github.com/google/uuid"
)

// ProfileCreate is the row inserted when a profile is first needed.
type ProfileCreate struct {
	ID       uuid.UUID
	Username string
	Currency string
}

// ProfileUpdate carries the optional profile form fields.
type ProfileUpdate struct {
	Username  *string
	Currency  *string
	AvatarURL *string
}

// ProfileRead is a profile as returned to callers.
type ProfileRead struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Currency  string    `json:"currency"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDomain converts the read model into a domain profile.
func (p *ProfileRead) ToDomain() *profile.Profile {
	return &profile.Profile{
		ID:        p.ID,
		Username:  p.Username,
		Currency:  currency.Parse(p.Currency),
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
