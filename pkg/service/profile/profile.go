// Package profile manages the display profile that accompanies each user.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/profile"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoprofile "github.com/amirasaad/fintrack/pkg/repository/profile"
	repouser "github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/google/uuid"
)

// ErrCreateFailed is returned when a missing profile could not be created.
var ErrCreateFailed = errors.New("failed to create user profile")

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Ensure returns the user's profile, creating the default one when missing.
func (s *Service) Ensure(ctx context.Context, userID uuid.UUID) (p *profile.Profile, err error) {
	log := s.logger.With("context", "Ensure", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		profiles, err := repository.Get[repoprofile.Repository](uow)
		if err != nil {
			return err
		}
		read, err := profiles.Get(ctx, userID)
		if err == nil {
			p = read.ToDomain()
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		users, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return user.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		p = profile.NewDefault(userID, u.Username, u.Email)
		created, err := profiles.CreateIfAbsent(ctx, dto.ProfileCreate{
			ID:       p.ID,
			Username: p.Username,
			Currency: string(p.Currency),
		})
		if err != nil {
			log.Error("Failed to create profile", "error", err)
			return errors.Join(ErrCreateFailed, err)
		}
		if created {
			log.Info("Created default profile")
			return nil
		}
		// A concurrent request created it first.
		read, err = profiles.Get(ctx, userID)
		if err != nil {
			return errors.Join(ErrCreateFailed, err)
		}
		p = read.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of update after validating them.
func (s *Service) Update(
	ctx context.Context,
	userID uuid.UUID,
	update dto.ProfileUpdate,
) (*profile.Profile, error) {
	if update.Username != nil {
		name := strings.TrimSpace(*update.Username)
		if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
			return nil, profile.ErrUsernameRequired
		}
		update.Username = &name
	}
	if update.Currency != nil {
		code := currency.Code(strings.ToUpper(strings.TrimSpace(*update.Currency)))
		if !code.Valid() {
			return nil, profile.ErrInvalidCurrency
		}
		c := string(code)
		update.Currency = &c
	}
	if update.AvatarURL != nil {
		avatar := strings.TrimSpace(*update.AvatarURL)
		if err := profile.ValidateAvatarURL(avatar); err != nil {
			return nil, err
		}
		update.AvatarURL = &avatar
	}

	if _, err := s.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	var p *profile.Profile
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		profiles, err := repository.Get[repoprofile.Repository](uow)
		if err != nil {
			return err
		}
		if err := profiles.Update(ctx, userID, update); err != nil {
			return err
		}
		read, err := profiles.Get(ctx, userID)
		if err != nil {
			return err
		}
		p = read.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Profile updated", "userID", userID)
	return p, nil
}
