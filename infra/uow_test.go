package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/repository/account"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockUoW(t *testing.T) (*UoW, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewUoW(db), mock
}

func TestUoW_DoCommits(t *testing.T) {
	uow, mock := newMockUoW(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	var count int64
	err := uow.Do(context.Background(), func(tx repository.UnitOfWork) error {
		repo, err := repository.Get[user.Repository](tx)
		if err != nil {
			return err
		}
		count, err = repo.Count(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	uow, mock := newMockUoW(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoBeginError(t *testing.T) {
	uow, mock := newMockUoW(t)
	mock.ExpectBegin().WillReturnError(errors.New("begin error"))

	called := false
	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestUoW_GetRepository(t *testing.T) {
	uow, _ := newMockUoW(t)

	repo, err := repository.Get[account.Repository](uow)
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = uow.GetRepository((*string)(nil))
	assert.ErrorContains(t, err, "unsupported repository type")

	_, err = repository.Get[int](uow)
	assert.Error(t, err)
}
