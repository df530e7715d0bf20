package middleware

import (
	"context"
	"slices"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	domain "posterminal/internal/terminal/domain/services"
	"posterminal/pkg/logger"
)

// LocalSession - ключ сведений о сессии в fiber.Locals.
const LocalSession = "session"

// LogRoleRejected - сообщение журнала об отказе в доступе к разделу.
const LogRoleRejected = "role middleware: access denied"

// SessionReader читает сведения о текущей сессии без сетевого запроса.
type SessionReader interface {
	LocalSession(ctx context.Context) (*entities.SessionInfo, error)
}

// NewRoleMiddleware пропускает только сессии с одной из ролей roles.
// Без сессии возвращает ErrUnauthenticated, с чужой ролью ErrForbidden.
func NewRoleMiddleware(session SessionReader, roles ...entities.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)

		info, err := session.LocalSession(requestCtx)
		if err != nil {
			return err
		}

		if len(roles) > 0 && !slices.Contains(roles, info.Role) {
			logger.Log(requestCtx).Info(requestCtx, LogRoleRejected,
				zap.String("role", string(info.Role)),
				zap.String("path", c.Path()))
			return domain.ErrForbidden
		}

		c.Locals(LocalSession, info)
		return c.Next()
	}
}

// Session возвращает сведения о сессии, сохраненные NewRoleMiddleware.
func Session(c fiber.Ctx) (*entities.SessionInfo, bool) {
	info, ok := c.Locals(LocalSession).(*entities.SessionInfo)
	return info, ok
}
