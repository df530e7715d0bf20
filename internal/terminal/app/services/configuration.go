package services

import (
	"context"
	"fmt"
	"time"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/api"
	"posterminal/internal/terminal/ports/cache"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/internal/terminal/resilience"
)

// Константы для логирования.
const (
	ErrorGetConfiguration    = "failed to get store configuration"
	ErrorUpdateConfiguration = "failed to update store configuration"
)

// ConfigurationServiceImpl реализует интерфейс ConfigurationService.
type ConfigurationServiceImpl struct {
	api        api.ConfigurationAPI
	cache      cache.Cache
	ttl        time.Duration
	resilience *resilience.ServiceResilience
}

var _ ports.ConfigurationService = (*ConfigurationServiceImpl)(nil)

// NewConfigurationService создает сервис настроек магазина.
func NewConfigurationService(configurationAPI api.ConfigurationAPI, c cache.Cache, ttl time.Duration) *ConfigurationServiceImpl {
	return &ConfigurationServiceImpl{
		api:        configurationAPI,
		cache:      c,
		ttl:        ttl,
		resilience: resilience.NewServiceResilience("configuration-service"),
	}
}

func (s *ConfigurationServiceImpl) Get(ctx context.Context) (*entities.StoreConfiguration, error) {
	cfg, err := cachedLoad(ctx, s.cache, ConfigurationCacheKey, s.ttl, func() (*entities.StoreConfiguration, error) {
		return resilience.Do(ctx, s.resilience, "GetConfiguration", func() (*entities.StoreConfiguration, error) {
			return s.api.GetConfiguration(ctx)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetConfiguration, err)
	}
	return cfg, nil
}

// Update сохраняет настройки и кладет ответ бэкенда в кэш.
func (s *ConfigurationServiceImpl) Update(ctx context.Context, in entities.StoreConfigurationUpdate) (*entities.StoreConfiguration, error) {
	cfg, err := s.api.UpdateConfiguration(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateConfiguration, err)
	}

	storeCached(ctx, s.cache, ConfigurationCacheKey, s.ttl, cfg)
	return cfg, nil
}
