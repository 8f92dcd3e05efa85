package category_test

import (
	"context"
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain/category"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCategoryLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := categorysvc.New(testutils.NewTestUoW(t), testutils.DiscardLogger())
	userID := uuid.New()

	food, err := svc.Create(ctx, userID, " Comida ", category.Expense)
	require.NoError(t, err)
	assert.Equal(t, "Comida", food.Name)
	_, err = svc.Create(ctx, userID, "Sueldo", category.Income)
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, "Arriendo", category.Expense)
	require.NoError(t, err)

	all, err := svc.List(ctx, userID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Arriendo", all[0].Name)

	expenses, err := svc.List(ctx, userID, category.Expense)
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	_, err = svc.List(ctx, userID, category.Type("other"))
	assert.ErrorIs(t, err, category.ErrInvalidType)

	renamed, err := svc.Update(ctx, userID, food.ID, ptr("Supermercado"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Supermercado", renamed.Name)
	assert.Equal(t, category.Expense, renamed.Type)

	_, err = svc.Update(ctx, uuid.New(), food.ID, ptr("x"), nil)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	require.NoError(t, svc.Delete(ctx, userID, food.ID))
	assert.ErrorIs(t, svc.Delete(ctx, userID, food.ID), category.ErrCategoryNotFound)
}

func TestCreate_Invalid(t *testing.T) {
	t.Parallel()
	svc := categorysvc.New(testutils.NewTestUoW(t), testutils.DiscardLogger())
	_, err := svc.Create(context.Background(), uuid.New(), "", category.Income)
	assert.ErrorIs(t, err, category.ErrNameRequired)
	_, err = svc.Create(context.Background(), uuid.New(), "x", category.Type("both"))
	assert.ErrorIs(t, err, category.ErrInvalidType)
}
