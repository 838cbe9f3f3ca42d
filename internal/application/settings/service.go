package settings

import (
	"context"
	"time"

	"github.com/shop-access-core/internal/domain"
	"github.com/shop-access-core/internal/infrastructure/cache"
)

// Repo is the underlying settings persistence.
type Repo interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Put(ctx context.Context, s *domain.StoreSettings) error
}

// Service serves storefront settings through the read cache and busts the
// cached entry after writes.
type Service struct {
	repo  Repo
	cache *cache.Cache
	inval *cache.Invalidator
	ttl   time.Duration
	now   func() time.Time
}

func NewService(repo Repo, c *cache.Cache, inval *cache.Invalidator, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: c, inval: inval, ttl: ttl, now: time.Now}
}

// Get returns the current settings, recomputing on cache miss. Callers get
// a copy; the cached value is never shared by reference.
func (s *Service) Get(ctx context.Context) (*domain.StoreSettings, error) {
	if v, ok := s.cache.Get(cache.KeySettings); ok {
		cached := v.(domain.StoreSettings)
		return &cached, nil
	}
	loaded, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.KeySettings, *loaded, s.ttl)
	return loaded, nil
}

// Update persists the new settings and invalidates the cached entry so the
// next read recomputes.
func (s *Service) Update(ctx context.Context, in domain.SettingsInput) (*domain.StoreSettings, error) {
	updated := &domain.StoreSettings{
		StoreName:       in.StoreName,
		SupportEmail:    in.SupportEmail,
		Currency:        in.Currency,
		MaintenanceMode: in.MaintenanceMode,
		UpdatedAt:       s.now().Unix(),
	}
	if err := s.repo.Put(ctx, updated); err != nil {
		return nil, err
	}
	s.inval.Settings()
	return updated, nil
}
