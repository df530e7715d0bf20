package transport

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogUnauthorized     = "request rejected with 401, recovering session"
	LogReplay           = "replaying request with refreshed token"
	LogNotReplayable    = "request body cannot be rewound, not replaying"
	LogRecoveryFailed   = "session recovery failed, forcing logout"
	ErrorSessionRecover = "failed to recover session"
)

// recoveryExempt - эндпоинты, чей 401 означает отказ в самой аутентификации.
var recoveryExempt = []string{
	"/auth/login",
	"/auth/refresh",
}

func isRecoveryExempt(path string) bool {
	path = strings.TrimRight(path, "/")
	for _, exempt := range recoveryExempt {
		if strings.HasSuffix(path, exempt) {
			return true
		}
	}
	return false
}

// Recovery перехватывает ответы 401, обновляет сессию и повторяет запрос
// ровно один раз. Если обновление не удалось, сессия завершается принудительно.
type Recovery struct {
	next    http.RoundTripper
	session services.SessionRefresher
}

// NewRecovery создает Recovery поверх next. next должен подписывать запросы
// токеном, как Annotator.
func NewRecovery(next http.RoundTripper, session services.SessionRefresher) *Recovery {
	return &Recovery{next: next, session: session}
}

// RoundTrip реализует http.RoundTripper.
func (r *Recovery) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || isRecoveryExempt(req.URL.Path) {
		return resp, err
	}

	ctx := req.Context()
	log := logger.Log(ctx).With(zap.String("path", req.URL.Path), zap.String("method", req.Method))

	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		log.Warn(ctx, LogNotReplayable)
		return resp, nil
	}

	rejected := bearerOf(resp.Request)
	if resp.Request == nil {
		rejected = bearerOf(req)
	}

	log.Info(ctx, LogUnauthorized)
	pair, err := r.session.RefreshAfter(ctx, rejected)
	discard(resp)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn(ctx, LogRecoveryFailed, zap.Error(err))
		r.session.ForceLogout(ctx)
		return nil, fmt.Errorf("%s: %w", ErrorSessionRecover, err)
	}

	replay := withBearer(req, pair.AccessToken)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorSessionRecover, err)
		}
		replay.Body = body
	}

	log.Debug(ctx, LogReplay)
	return r.next.RoundTrip(replay)
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
