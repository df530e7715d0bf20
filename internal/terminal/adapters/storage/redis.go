// Package storage содержит реализации долговременного хранилища токенов и настроек.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/storage"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	ErrorReadCredentials  = "failed to read credentials"
	ErrorWriteCredentials = "failed to write credentials"
	ErrorClearCredentials = "failed to clear credentials"
	ErrorReadPreference   = "failed to read preference"
	ErrorWritePreference  = "failed to write preference"
)

// RedisStore хранит токены и настройки в Redis без срока жизни,
// чтобы сессия переживала перезапуск терминала.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var (
	_ storage.CredentialStore = (*RedisStore)(nil)
	_ storage.PreferenceStore = (*RedisStore)(nil)
)

// NewRedisStore создает хранилище поверх клиента Redis.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

// Get читает оба токена одним MGET.
func (s *RedisStore) Get(ctx context.Context) (entities.Credentials, error) {
	values, err := s.client.MGet(ctx, s.key(storage.KeyAccessToken), s.key(storage.KeyRefreshToken)).Result()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorReadCredentials, zap.Error(err))
		return entities.Credentials{}, fmt.Errorf("%s: %w", ErrorReadCredentials, err)
	}

	return entities.Credentials{
		AccessToken:  stringValue(values[0]),
		RefreshToken: stringValue(values[1]),
	}, nil
}

// Set записывает оба токена в одной транзакции MULTI/EXEC.
func (s *RedisStore) Set(ctx context.Context, accessToken, refreshToken string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(storage.KeyAccessToken), accessToken, 0)
		pipe.Set(ctx, s.key(storage.KeyRefreshToken), refreshToken, 0)
		return nil
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorWriteCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorWriteCredentials, err)
	}
	return nil
}

// Clear удаляет оба токена.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(storage.KeyAccessToken), s.key(storage.KeyRefreshToken)).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorClearCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorClearCredentials, err)
	}
	return nil
}

// GetPreference читает настройку по ключу.
func (s *RedisStore) GetPreference(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		logger.Log(ctx).Error(ctx, ErrorReadPreference, zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorReadPreference, err)
	}
	return value, true, nil
}

// SetPreference сохраняет настройку.
func (s *RedisStore) SetPreference(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorWritePreference, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorWritePreference, err)
	}
	return nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
