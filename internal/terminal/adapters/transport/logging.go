package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/ports/services"
	"posterminal/internal/terminal/ports/storage"
	"posterminal/pkg/logger"
)

// HeaderRequestID - заголовок идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// Logging журналирует исходящие запросы и передает бэкенду идентификатор
// запроса из контекста, создавая его при отсутствии.
type Logging struct {
	next http.RoundTripper
}

// NewLogging создает Logging поверх next.
func NewLogging(next http.RoundTripper) *Logging {
	return &Logging{next: next}
}

// RoundTrip реализует http.RoundTripper.
func (l *Logging) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if req.Header.Get(HeaderRequestID) == "" {
		id, ok := logger.GetRequestID(ctx)
		if !ok {
			id = logger.GenerateRequestID()
			ctx = logger.NewRequestIDContext(ctx, id)
		}
		req = req.Clone(ctx)
		req.Header.Set(HeaderRequestID, id)
	}

	log := logger.Log(ctx).With(
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)
	start := time.Now()

	resp, err := l.next.RoundTrip(req)
	if err != nil {
		log.Warn(ctx, "backend call failed", zap.Duration("latency", time.Since(start)), zap.Error(err))
		return nil, err
	}

	log.Debug(ctx, "backend call completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))
	return resp, nil
}

// NewChain собирает транспорт клиента бэкенда:
// восстановление после 401, подпись токеном, журналирование, сеть.
func NewChain(base http.RoundTripper, store storage.CredentialStore, session services.SessionRefresher) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return NewRecovery(NewAnnotator(NewLogging(base), store), session)
}
