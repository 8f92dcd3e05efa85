package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/fintrack/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors so callers can
// match them with errors.Is without importing gorm.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(currentErr, gorm.ErrForeignKeyViolated):
			return fmt.Errorf("%w: referenced row does not exist", domain.ErrValidation)
		}
		currentErr = errors.Unwrap(currentErr)
	}
	return err
}

// WrapError runs a GORM operation and maps its error.
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(user).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// NotFoundIfNoRows returns domain.ErrNotFound when an UPDATE or DELETE
// touched nothing.
func NotFoundIfNoRows(res *gorm.DB) error {
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
