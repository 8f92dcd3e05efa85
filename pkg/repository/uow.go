package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs fn inside one database transaction; any error returned by fn rolls
// the transaction back. Repositories obtained from the UnitOfWork passed to fn
// share that transaction.
//
// GetRepository is keyed by a typed nil pointer to the repository interface:
//
//	repoAny, err := uow.GetRepository((*account.Repository)(nil))
//	repo, ok := repoAny.(account.Repository)
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	GetRepository(repoType any) (any, error)
}
