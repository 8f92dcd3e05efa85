// Package user registers identities and reports the beta sign-up cap.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain/profile"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoprofile "github.com/amirasaad/fintrack/pkg/repository/profile"
	repouser "github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/google/uuid"
)

// BetaStatus describes how full the beta is. Max is zero when uncapped.
type BetaStatus struct {
	Registered int64 `json:"registered"`
	Max        int   `json:"max"`
	Full       bool  `json:"full"`
}

// Service provides sign-up and user lookups.
type Service struct {
	uow      repository.UnitOfWork
	maxUsers int
	logger   *slog.Logger
}

// New creates a user Service. maxUsers caps registrations; zero disables the cap.
func New(
	uow repository.UnitOfWork,
	maxUsers int,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, maxUsers: maxUsers, logger: logger}
}

// SignUp registers a user and its default profile in one transaction.
func (s *Service) SignUp(
	ctx context.Context,
	username, email, password, confirm string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "SignUp")
	if password != confirm {
		return nil, user.ErrPasswordMismatch
	}
	newUser, err := user.New(username, email, password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		if s.maxUsers > 0 {
			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			if count >= int64(s.maxUsers) {
				return user.ErrSignupDisabled
			}
		}
		if taken, err := repo.ExistsByEmail(ctx, newUser.Email); err != nil {
			return err
		} else if taken {
			return user.ErrEmailTaken
		}
		if taken, err := repo.ExistsByUsername(ctx, newUser.Username); err != nil {
			return err
		} else if taken {
			return user.ErrUsernameTaken
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:       newUser.ID,
			Username: newUser.Username,
			Email:    newUser.Email,
			Password: newUser.Password,
		}); err != nil {
			return err
		}

		profiles, err := repository.Get[repoprofile.Repository](uow)
		if err != nil {
			return err
		}
		p := profile.NewDefault(newUser.ID, newUser.Username, newUser.Email)
		if err := profiles.Create(ctx, dto.ProfileCreate{
			ID:       p.ID,
			Username: p.Username,
			Currency: string(p.Currency),
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, newUser.ID)
		return err
	})
	if err != nil {
		log.Warn("SignUp failed", "username", username, "error", err)
		return nil, err
	}
	log.Info("User registered", "userID", u.ID)
	return u, nil
}

// GetUser returns the user with id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// GetUserByEmail returns the user registered with email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// ListUserIDs returns the ids of every registered user.
func (s *Service) ListUserIDs(ctx context.Context) (ids []uuid.UUID, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		ids, err = repo.ListIDs(ctx)
		return err
	})
	return ids, err
}

// BetaStatus reports the registration count against the cap.
func (s *Service) BetaStatus(ctx context.Context) (status BetaStatus, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repouser.Repository](uow)
		if err != nil {
			return err
		}
		status.Registered, err = repo.Count(ctx)
		return err
	})
	if err != nil {
		return BetaStatus{}, err
	}
	status.Max = s.maxUsers
	status.Full = s.maxUsers > 0 && status.Registered >= int64(s.maxUsers)
	return status, nil
}
