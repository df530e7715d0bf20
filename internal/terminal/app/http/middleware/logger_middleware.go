package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogRequestFailed    = "request failed"
)

// NewLoggerMiddleware журналирует запросы и присваивает им идентификатор.
// Идентификатор из заголовка X-Request-ID переиспользуется и уходит
// дальше в запросы к бэкенду.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(c.Context(), c.Get(HeaderRequestID))
		requestID, _ := logger.GetRequestID(requestCtx)
		requestCtx = logger.ContextWith(requestCtx,
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
		)
		c.Locals(LocalRequestContext, requestCtx)
		c.Set(HeaderRequestID, requestID)

		start := time.Now()
		log := logger.Log(requestCtx).With(zap.String("ip", c.IP()))

		log.Debug(requestCtx, LogRequestStarted)

		err := c.Next()

		logFields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Warn(requestCtx, LogRequestFailed, append(logFields, zap.Error(err))...)
			return err
		}

		log.Info(requestCtx, LogRequestCompleted, logFields...)
		return nil
	}
}
