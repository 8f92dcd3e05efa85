package infra

import (
	"context"
	"fmt"

	infraaccount "github.com/amirasaad/fintrack/infra/repository/account"
	infracategory "github.com/amirasaad/fintrack/infra/repository/category"
	infracard "github.com/amirasaad/fintrack/infra/repository/creditcard"
	infraprofile "github.com/amirasaad/fintrack/infra/repository/profile"
	infratransaction "github.com/amirasaad/fintrack/infra/repository/transaction"
	infrauser "github.com/amirasaad/fintrack/infra/repository/user"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/amirasaad/fintrack/pkg/repository/creditcard"
	"github.com/amirasaad/fintrack/pkg/repository/profile"
	"github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[any]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[any]func(*gorm.DB) any{
			(*user.Repository)(nil):        func(db *gorm.DB) any { return infrauser.New(db) },
			(*profile.Repository)(nil):     func(db *gorm.DB) any { return infraprofile.New(db) },
			(*account.Repository)(nil):     func(db *gorm.DB) any { return infraaccount.New(db) },
			(*creditcard.Repository)(nil):  func(db *gorm.DB) any { return infracard.New(db) },
			(*category.Repository)(nil):    func(db *gorm.DB) any { return infracategory.New(db) },
			(*transaction.Repository)(nil): func(db *gorm.DB) any { return infratransaction.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

// GetRepository returns the repository registered for repoType, bound to the
// current transaction or to the plain connection outside Do.
func (u *UoW) GetRepository(repoType any) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %T", repoType)
	}
	session := u.tx
	if session == nil {
		session = u.db
	}
	return constructor(session), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
