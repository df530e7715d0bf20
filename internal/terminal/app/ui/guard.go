package ui

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/pkg/logger"
)

// LogGuardRejected - сообщение журнала о непрошедшей проверке токена.
const LogGuardRejected = "route guard: token validation failed"

// SessionValidator - часть координатора сессии, нужная охраннику маршрутов.
type SessionValidator interface {
	AccessToken(ctx context.Context) (string, error)

	ValidateToken(ctx context.Context) (*entities.SessionInfo, error)
}

// Guard решает, куда направить пользователя при переходе.
type Guard struct {
	session SessionValidator
}

// NewGuard создает охранника маршрутов.
func NewGuard(session SessionValidator) *Guard {
	return &Guard{session: session}
}

// Resolve возвращает маршрут, который нужно открыть вместо url.
// Без токена url открывается как есть. Если бэкенд отверг токен,
// пользователь попадает на корневой маршрут.
func (g *Guard) Resolve(ctx context.Context, url string) string {
	token, err := g.session.AccessToken(ctx)
	if err == nil && token == "" {
		return url
	}

	var info *entities.SessionInfo
	if err == nil {
		info, err = g.session.ValidateToken(ctx)
	}
	if err != nil {
		logger.Log(ctx).Info(ctx, LogGuardRejected, zap.String("url", url), zap.Error(err))
		return entities.RouteRoot
	}

	return ResolveForRole(info.Role, url)
}

// ResolveForRole применяет правила доступа к разделам для роли.
func ResolveForRole(role entities.Role, url string) string {
	home := HomeRoute(role)
	if url == "" || url == entities.RouteRoot {
		return home
	}

	switch {
	case role == entities.RoleAdmin && strings.HasPrefix(url, entities.RouteAdmin):
		return url
	case role == entities.RoleSeller && strings.HasPrefix(url, entities.RoutePOS):
		return url
	default:
		return home
	}
}

// HomeRoute возвращает стартовый раздел роли.
func HomeRoute(role entities.Role) string {
	if role == entities.RoleAdmin {
		return entities.RouteAdmin
	}
	return entities.RoutePOS
}
