// Package storage определяет интерфейсы долговременного хранилища терминала.
package storage

import (
	"context"

	"posterminal/internal/terminal/domain/entities"
)

// Ключи долговременного хранилища.
const (
	KeyAccessToken  = "jwt"
	KeyRefreshToken = "refresh_token"
	KeyTheme        = "theme"
)

// CredentialStore хранит пару токенов. Отсутствующий токен читается как пустая строка.
type CredentialStore interface {
	Get(ctx context.Context) (entities.Credentials, error)

	// Set сохраняет оба токена одной операцией.
	Set(ctx context.Context, accessToken, refreshToken string) error

	Clear(ctx context.Context) error
}

// PreferenceStore хранит пользовательские настройки интерфейса.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)

	SetPreference(ctx context.Context, key, value string) error
}
