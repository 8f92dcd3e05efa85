package profile_test

import (
	"context"
	"testing"

	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/profile"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	repoprofile "github.com/amirasaad/fintrack/pkg/repository/profile"
	profilesvc "github.com/amirasaad/fintrack/pkg/service/profile"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	m.Run()
}

func ptr[T any](v T) *T { return &v }

func TestEnsure_CreatesOnceThenReuses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	u := testutils.CreateTestUser(t, uow)
	svc := profilesvc.New(uow, testutils.DiscardLogger())

	p, err := svc.Ensure(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, p.Username)
	assert.Equal(t, currency.USD, p.Currency)

	again, err := svc.Ensure(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)
}

func TestEnsure_UnknownUser(t *testing.T) {
	t.Parallel()
	svc := profilesvc.New(testutils.NewTestUoW(t), testutils.DiscardLogger())
	_, err := svc.Ensure(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	u := testutils.CreateTestUser(t, uow)
	svc := profilesvc.New(uow, testutils.DiscardLogger())

	p, err := svc.Update(ctx, u.ID, dto.ProfileUpdate{
		Username:  ptr("  Ana Pérez "),
		Currency:  ptr("clp"),
		AvatarURL: ptr("https://example.com/a.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", p.Username)
	assert.Equal(t, currency.CLP, p.Currency)
	assert.Equal(t, "https://example.com/a.png", p.AvatarURL)

	p, err = svc.Update(ctx, u.ID, dto.ProfileUpdate{AvatarURL: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, p.AvatarURL)
	assert.Equal(t, currency.CLP, p.Currency)
}

func TestUpdate_Invalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	u := testutils.CreateTestUser(t, uow)
	svc := profilesvc.New(uow, testutils.DiscardLogger())

	_, err := svc.Update(ctx, u.ID, dto.ProfileUpdate{Currency: ptr("EUR")})
	assert.ErrorIs(t, err, profile.ErrInvalidCurrency)
	_, err = svc.Update(ctx, u.ID, dto.ProfileUpdate{AvatarURL: ptr("ftp://x")})
	assert.ErrorIs(t, err, profile.ErrInvalidAvatarURL)
	_, err = svc.Update(ctx, u.ID, dto.ProfileUpdate{Username: ptr("ab")})
	assert.ErrorIs(t, err, profile.ErrUsernameRequired)
}

// staleReadUoW hands out a profile repository whose first Get misses, as if
// another request inserted the row right after the lookup.
type staleReadUoW struct {
	repository.UnitOfWork
	missed *bool
}

func (s staleReadUoW) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return s.UnitOfWork.Do(ctx, func(uow repository.UnitOfWork) error {
		return fn(staleReadUoW{uow, s.missed})
	})
}

func (s staleReadUoW) GetRepository(repoType any) (any, error) {
	repo, err := s.UnitOfWork.GetRepository(repoType)
	if profiles, ok := repo.(repoprofile.Repository); ok {
		return staleProfiles{profiles, s.missed}, err
	}
	return repo, err
}

type staleProfiles struct {
	repoprofile.Repository
	missed *bool
}

func (s staleProfiles) Get(ctx context.Context, id uuid.UUID) (*dto.ProfileRead, error) {
	if !*s.missed {
		*s.missed = true
		return nil, domain.ErrNotFound
	}
	return s.Repository.Get(ctx, id)
}

func TestEnsure_ProfileCreatedConcurrently(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	u := testutils.CreateTestUser(t, uow)
	svc := profilesvc.New(uow, testutils.DiscardLogger())
	_, err := svc.Update(ctx, u.ID, dto.ProfileUpdate{Currency: ptr("CLP")})
	require.NoError(t, err)

	missed := false
	racing := profilesvc.New(staleReadUoW{uow, &missed}, testutils.DiscardLogger())
	p, err := racing.Ensure(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, missed)
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, currency.CLP, p.Currency, "existing profile is kept")
}
