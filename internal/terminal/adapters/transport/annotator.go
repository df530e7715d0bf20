// Package transport содержит цепочку http.RoundTripper клиента бэкенда:
// журналирование, подпись запросов токеном и восстановление после 401.
package transport

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"posterminal/internal/terminal/ports/storage"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogTokenUnavailable = "access token unavailable, sending request unannotated"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// publicPaths - эндпоинты, которым токен доступа не передается.
var publicPaths = []string{
	"/auth/login",
	"/auth/refresh",
	"/auth/forgot-password",
	"/auth/reset-password",
}

// IsPublicPath сообщает, что путь относится к публичным эндпоинтам аутентификации.
func IsPublicPath(path string) bool {
	path = strings.TrimRight(path, "/")
	for _, public := range publicPaths {
		if strings.HasSuffix(path, public) {
			return true
		}
	}
	return false
}

// Annotator добавляет к исходящим запросам заголовок Authorization
// с текущим токеном доступа.
type Annotator struct {
	next  http.RoundTripper
	store storage.CredentialStore
}

// NewAnnotator создает Annotator поверх next.
func NewAnnotator(next http.RoundTripper, store storage.CredentialStore) *Annotator {
	return &Annotator{next: next, store: store}
}

// RoundTrip реализует http.RoundTripper. Явно заданный заголовок
// Authorization не перезаписывается.
func (a *Annotator) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(headerAuthorization) != "" || IsPublicPath(req.URL.Path) {
		return a.next.RoundTrip(req)
	}

	ctx := req.Context()
	creds, err := a.store.Get(ctx)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogTokenUnavailable, zap.Error(err))
		return a.next.RoundTrip(req)
	}
	if !creds.HasAccessToken() {
		return a.next.RoundTrip(req)
	}

	return a.next.RoundTrip(withBearer(req, creds.AccessToken))
}

func withBearer(req *http.Request, token string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set(headerAuthorization, bearerPrefix+token)
	return clone
}

func bearerOf(req *http.Request) string {
	if req == nil {
		return ""
	}
	return strings.TrimPrefix(req.Header.Get(headerAuthorization), bearerPrefix)
}
