// Package services содержит сервисы ресурсов терминала: каталог, пользователи,
// склад, продажи, настройки и панель администратора.
package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/ports/cache"
	"posterminal/pkg/logger"
)

// Константы для кэширования.
const (
	ProductCacheKeyPrefix = "product:"
	ConfigurationCacheKey = "configuration"

	LogCacheHit          = "cache hit"
	LogCacheReadFailed   = "failed to read cache, loading from backend"
	LogCacheWriteFailed  = "failed to write cache"
	LogCacheDeleteFailed = "failed to invalidate cache"
)

// cachedLoad возвращает значение из кэша или загружает и кэширует его.
// Ошибки кэша не прерывают загрузку.
func cachedLoad[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func() (*T, error)) (*T, error) {
	log := logger.Log(ctx).With(zap.String("cache_key", key))

	if raw, found, err := c.Get(ctx, key); err != nil {
		log.Warn(ctx, LogCacheReadFailed, zap.Error(err))
	} else if found {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			log.Debug(ctx, LogCacheHit)
			return &value, nil
		}
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	storeCached(ctx, c, key, ttl, value)
	return value, nil
}

func storeCached(ctx context.Context, c cache.Cache, key string, ttl time.Duration, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Set(ctx, key, payload, ttl); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheWriteFailed, zap.String("cache_key", key), zap.Error(err))
	}
}

func invalidate(ctx context.Context, c cache.Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheDeleteFailed, zap.Strings("cache_keys", keys), zap.Error(err))
	}
}

// reloadQuietly обновляет список после изменения. Ошибка обновления
// не отменяет успешное изменение и только журналируется.
func reloadQuietly(ctx context.Context, what string, reload func(context.Context) error) {
	if err := reload(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to reload list after mutation", zap.String("list", what), zap.Error(err))
	}
}
