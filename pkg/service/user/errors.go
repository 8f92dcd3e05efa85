package user

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/user"
)

func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return user.ErrUserNotFound
	}
	return err
}
