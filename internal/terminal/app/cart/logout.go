package cart

import (
	"context"

	"posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

const LogCartCleared = "cart cleared on logout"

// LogoutNotifier - источник событий завершения сессии.
type LogoutNotifier interface {
	OnLogout(hook services.LogoutHook)
}

// ClearOnLogout очищает корзину при каждом завершении сессии, чтобы
// следующий продавец начинал с пустой корзины.
func ClearOnLogout(c *Cart, session LogoutNotifier) {
	session.OnLogout(func(ctx context.Context) {
		c.Clear()
		logger.Log(ctx).Debug(ctx, LogCartCleared)
	})
}
