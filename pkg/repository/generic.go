package repository

import "fmt"

// Get fetches the repository registered under the interface type T.
//
//	repo, err := repository.Get[account.Repository](uow)
func Get[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository((*T)(nil))
	if err != nil {
		return zero, fmt.Errorf("failed to get repository: %w", err)
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("invalid repository type %T", repoAny)
	}
	return repo, nil
}
