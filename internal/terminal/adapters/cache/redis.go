// Package cache содержит реализации кэша ответов бэкенда.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"posterminal/internal/terminal/ports/cache"
	"posterminal/pkg/logger"
)

const (
	ErrorFailedToGet    = "failed to read cached response from redis"
	ErrorFailedToSet    = "failed to store response in redis"
	ErrorFailedToDelete = "failed to evict cached responses from redis"
)

// RedisCache хранит ответы в Redis под общим префиксом ключей.
// Клиент общий с хранилищем сессии и закрывается его владельцем.
type RedisCache struct {
	client     redis.Cmdable
	prefix     string
	defaultTTL time.Duration
}

var _ cache.Cache = (*RedisCache)(nil)

func NewRedisCache(client redis.Cmdable, prefix string, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, defaultTTL: defaultTTL}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		logger.Log(ctx).Error(ctx, ErrorFailedToGet, zap.String("cache_key", key), zap.Error(err))
		return nil, false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return payload, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, payload, c.expiration(ttl)).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet, zap.String("cache_key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Delete удаляет все ключи одной командой DEL.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = c.prefix + key
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete, zap.Strings("cache_keys", keys), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

// expiration переводит ttl порта в аргумент SET. Отрицательное значение
// у go-redis означает KEEPTTL, поэтому запись без срока передается нулем.
func (c *RedisCache) expiration(ttl time.Duration) time.Duration {
	switch {
	case ttl == 0:
		return c.defaultTTL
	case ttl < 0:
		return 0
	default:
		return ttl
	}
}
