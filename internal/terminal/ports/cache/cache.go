// Package cache определяет порт кэша ответов бэкенда.
package cache

import (
	"context"
	"time"
)

// Cache хранит сериализованные ответы бэкенда по ключу.
//
// Get сообщает found=false для отсутствующего или устаревшего ключа.
// ttl=0 в Set означает время жизни по умолчанию, отрицательный ttl
// означает запись без срока.
type Cache interface {
	Get(ctx context.Context, key string) (payload []byte, found bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
