// Package category manages user-defined income and expense categories.
package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/category"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repocategory "github.com/amirasaad/fintrack/pkg/repository/category"
	repotx "github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	kind category.Type,
) (*category.Category, error) {
	c, err := category.New(userID, name, kind)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocategory.Repository](uow)
		if err != nil {
			return err
		}
		return repo.Create(ctx, dto.CategoryCreate{
			ID:     c.ID,
			UserID: c.UserID,
			Name:   c.Name,
			Type:   string(c.Type),
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Category created", "userID", userID, "categoryID", c.ID)
	return c, nil
}

// List returns the user's categories by name. An empty kind lists both types.
func (s *Service) List(
	ctx context.Context,
	userID uuid.UUID,
	kind category.Type,
) (cats []*category.Category, err error) {
	if kind != "" && !kind.Valid() {
		return nil, category.ErrInvalidType
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocategory.Repository](uow)
		if err != nil {
			return err
		}
		rows, err := repo.ListByUser(ctx, userID, string(kind))
		if err != nil {
			return err
		}
		cats = make([]*category.Category, 0, len(rows))
		for _, r := range rows {
			cats = append(cats, r.ToDomain())
		}
		return nil
	})
	return cats, err
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	name *string,
	kind *category.Type,
) (c *category.Category, err error) {
	var patch dto.CategoryUpdate
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, category.ErrNameRequired
		}
		patch.Name = &trimmed
	}
	if kind != nil {
		if !kind.Valid() {
			return nil, category.ErrInvalidType
		}
		k := string(*kind)
		patch.Type = &k
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocategory.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := Owned(ctx, repo, userID, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, patch); err != nil {
			return err
		}
		c, err = Owned(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the category. Its transactions become uncategorized.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[repocategory.Repository](uow)
		if err != nil {
			return err
		}
		if _, err := Owned(ctx, repo, userID, id); err != nil {
			return err
		}
		txs, err := repository.Get[repotx.Repository](uow)
		if err != nil {
			return err
		}
		if err := txs.ClearCategory(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Category deleted", "userID", userID, "categoryID", id)
	return nil
}

// Owned loads a category and hides other users' categories behind
// ErrCategoryNotFound.
func Owned(ctx context.Context, repo repocategory.Repository, userID, id uuid.UUID) (*category.Category, error) {
	read, err := repo.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	if read.UserID != userID {
		return nil, category.ErrCategoryNotFound
	}
	return read.ToDomain(), nil
}
