package profile

import (
	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain/profile"
	"github.com/google/uuid"
)

// UpdateProfileRequest represents the request body for editing the profile.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Currency  *string `json:"currency" validate:"omitempty,oneof=USD CLP usd clp"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=2048"`
}

// ProfileDTO is the API representation of a profile.
type ProfileDTO struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currency_symbol"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Initials       string    `json:"initials"`
}

func ToProfileDTO(p *profile.Profile) *ProfileDTO {
	return &ProfileDTO{
		ID:             p.ID,
		Username:       p.Username,
		Currency:       string(p.Currency),
		CurrencySymbol: currency.Symbol(p.Currency),
		AvatarURL:      p.AvatarURL,
		Initials:       profile.Initials(p.Username),
	}
}
