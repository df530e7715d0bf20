// Package middleware содержит промежуточное ПО локального HTTP фасада.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// LocalRequestContext - ключ контекста запроса в fiber.Locals.
const LocalRequestContext = "requestContext"

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContext возвращает контекст запроса с логгером и идентификатором
// запроса, подготовленный NewLoggerMiddleware.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}
