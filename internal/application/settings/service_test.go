package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shop-access-core/internal/domain"
	"github.com/shop-access-core/internal/infrastructure/cache"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Get(ctx context.Context) (*domain.StoreSettings, error) {
	args := m.Called(ctx)
	if s, _ := args.Get(0).(*domain.StoreSettings); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRepo) Put(ctx context.Context, s *domain.StoreSettings) error {
	return m.Called(ctx, s).Error(0)
}

func newTestService(repo Repo) (*Service, *cache.Cache) {
	c := cache.New(0)
	return NewService(repo, c, cache.NewInvalidator(c), 5*time.Minute), c
}

func TestGet_CachesResult(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).
		Return(&domain.StoreSettings{StoreName: "Acme"}, nil).Once()

	svc, _ := newTestService(repo)

	first, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.StoreName)

	second, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", second.StoreName)

	repo.AssertNumberOfCalls(t, "Get", 1)
}

func TestGet_ReturnsCopies(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).
		Return(&domain.StoreSettings{StoreName: "Acme"}, nil).Once()

	svc, _ := newTestService(repo)

	first, err := svc.Get(context.Background())
	require.NoError(t, err)
	first.StoreName = "mutated"

	second, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", second.StoreName, "callers must not reach the cached value by reference")
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).
		Return(&domain.StoreSettings{StoreName: "Acme"}, nil).Once()
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.StoreSettings")).Return(nil)
	repo.On("Get", mock.Anything).
		Return(&domain.StoreSettings{StoreName: "Acme 2"}, nil).Once()

	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.SettingsInput{
		StoreName:    "Acme 2",
		SupportEmail: "help@acme.example",
		Currency:     "USD",
	})
	require.NoError(t, err)

	after, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme 2", after.StoreName, "a write must bust the cached read")
	repo.AssertNumberOfCalls(t, "Get", 2)
}

func TestGet_RepoError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)

	svc, _ := newTestService(repo)
	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
