// Package services определяет интерфейсы сервисов терминала.
package services

import (
	"context"

	"posterminal/internal/terminal/domain/entities"
)

// LogoutHook вызывается при любом завершении сессии.
type LogoutHook func(ctx context.Context)

// SessionRefresher - часть координатора сессии, нужная транспорту
// для восстановления после ответа 401.
type SessionRefresher interface {
	// RefreshAfter обновляет токены после ответа 401 на запрос с токеном rejected.
	RefreshAfter(ctx context.Context, rejected string) (*entities.TokenPair, error)

	ForceLogout(ctx context.Context)
}

// SessionService определяет интерфейс координатора сессии.
type SessionService interface {
	SessionRefresher

	Login(ctx context.Context, username, password string) (*entities.TokenPair, error)

	Logout(ctx context.Context) error

	Refresh(ctx context.Context) (*entities.TokenPair, error)

	AccessToken(ctx context.Context) (string, error)

	ValidateToken(ctx context.Context) (*entities.SessionInfo, error)

	RefreshInProgress() bool

	RequestPasswordReset(ctx context.Context, email string) error

	ResetPassword(ctx context.Context, token, newPassword string) error

	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	LocalSession(ctx context.Context) (*entities.SessionInfo, error)

	OnLogout(hook LogoutHook)
}
