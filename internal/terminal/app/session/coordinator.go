// Package session координирует сессию терминала: вход, выход,
// проверку и однократное обновление токенов.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/adapters/tokens"
	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/domain/services"
	"posterminal/internal/terminal/ports/api"
	"posterminal/internal/terminal/ports/storage"
	portServices "posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogLogin            = "session: login"
	LogLogout           = "session: logout"
	LogForceLogout      = "session: forced logout"
	LogRefreshStarted   = "session: token refresh started"
	LogRefreshSucceeded = "session: token refresh succeeded"
	LogRefreshFailed    = "session: token refresh failed"
	LogTokenValidated   = "session: token validated"
	LogTokenInvalid     = "session: token validation failed"

	ErrorLoginFailed          = "failed to login"
	ErrorLogoutFailed         = "failed to logout"
	ErrorRefreshFailed        = "failed to refresh tokens"
	ErrorValidateFailed       = "failed to validate token"
	ErrorReadCredentials      = "failed to read credentials"
	ErrorPersistCredentials   = "failed to persist credentials"
	ErrorClearCredentials     = "failed to clear credentials"
	ErrorIncompleteTokenPair  = "backend returned incomplete token pair"
	ErrorSessionEnded         = "session ended while refreshing tokens"
	ErrorPasswordResetRequest = "failed to request password reset"
	ErrorPasswordReset        = "failed to reset password"
	ErrorPasswordChange       = "failed to change password"
)

// Options - параметры координатора.
type Options struct {
	// RefreshTimeout ограничивает одно обновление токенов.
	RefreshTimeout time.Duration
	// ValidateOnLogin включает диагностическую проверку токена после входа.
	ValidateOnLogin bool
	// Gate - шлюз обновления. Если не задан, создается новый.
	Gate *RefreshGate
}

// Coordinator управляет жизненным циклом сессии.
type Coordinator struct {
	auth      api.AuthAPI
	store     storage.CredentialStore
	navigator portServices.Navigator
	gate      *RefreshGate
	opts      Options

	// sessionMu упорядочивает запись учетных данных. epoch растет при
	// каждом входе и выходе, обновление сохраняет пару только в той
	// сессии, в которой было начато.
	sessionMu sync.Mutex
	epoch     uint64

	hooksMu sync.RWMutex
	hooks   []portServices.LogoutHook
}

var _ portServices.SessionService = (*Coordinator)(nil)

// NewCoordinator создает координатор сессии. navigator может быть nil.
func NewCoordinator(
	auth api.AuthAPI,
	store storage.CredentialStore,
	navigator portServices.Navigator,
	opts Options,
) *Coordinator {
	gate := opts.Gate
	if gate == nil {
		gate = NewRefreshGate(opts.RefreshTimeout)
	}
	return &Coordinator{
		auth:      auth,
		store:     store,
		navigator: navigator,
		gate:      gate,
		opts:      opts,
	}
}

// Login выполняет вход и сохраняет пару токенов.
func (c *Coordinator) Login(ctx context.Context, username, password string) (*entities.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("username", username))
	log.Info(ctx, LogLogin)

	pair, err := c.auth.Login(ctx, username, password)
	if err != nil {
		log.Warn(ctx, ErrorLoginFailed, zap.Error(err))
		return nil, classifyLoginError(err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, fmt.Errorf("%w: %s", services.ErrServer, ErrorIncompleteTokenPair)
	}

	c.sessionMu.Lock()
	c.epoch++
	err = c.store.Set(ctx, pair.AccessToken, pair.RefreshToken)
	c.sessionMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorPersistCredentials, err)
	}

	if c.opts.ValidateOnLogin {
		if info, err := c.ValidateToken(ctx); err != nil {
			log.Warn(ctx, LogTokenInvalid, zap.Error(err))
		} else {
			log.Debug(ctx, LogTokenValidated,
				zap.String("role", string(info.Role)),
				zap.Time("expires_at", info.ExpiresAt))
		}
	}

	return pair, nil
}

func classifyLoginError(err error) error {
	status, ok := services.StatusOf(err)
	if ok {
		switch status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", services.ErrInvalidCredentials, services.MessageOf(err))
		}
	}
	return fmt.Errorf("%s: %w", ErrorLoginFailed, err)
}

// Logout завершает сессию на бэкенде, затем безусловно очищает локальное состояние.
// Ошибка бэкенда возвращается, но не мешает очистке.
func (c *Coordinator) Logout(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogLogout)

	remoteErr := c.auth.Logout(ctx)
	if remoteErr != nil {
		logger.Log(ctx).Warn(ctx, ErrorLogoutFailed, zap.Error(remoteErr))
	}

	c.endSession(ctx)

	if remoteErr != nil {
		return fmt.Errorf("%s: %w", ErrorLogoutFailed, remoteErr)
	}
	return nil
}

// ForceLogout очищает сессию без обращения к бэкенду и открывает экран входа.
func (c *Coordinator) ForceLogout(ctx context.Context) {
	logger.Log(ctx).Warn(ctx, LogForceLogout)

	c.endSession(ctx)
	if c.navigator != nil {
		c.navigator.Navigate(entities.RouteLogin)
	}
}

func (c *Coordinator) endSession(ctx context.Context) {
	c.sessionMu.Lock()
	c.epoch++
	err := c.store.Clear(ctx)
	c.sessionMu.Unlock()
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorClearCredentials, zap.Error(err))
	}

	c.hooksMu.RLock()
	hooks := append([]portServices.LogoutHook(nil), c.hooks...)
	c.hooksMu.RUnlock()

	for _, hook := range hooks {
		hook(ctx)
	}
}

// OnLogout регистрирует действие, выполняемое при завершении сессии.
func (c *Coordinator) OnLogout(hook portServices.LogoutHook) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// ValidateToken проверяет текущий токен через /auth/me.
func (c *Coordinator) ValidateToken(ctx context.Context) (*entities.SessionInfo, error) {
	creds, err := c.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorReadCredentials, err)
	}
	if !creds.HasAccessToken() {
		return nil, services.ErrUnauthenticated
	}

	me, err := c.auth.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorValidateFailed, err)
	}
	if !me.Valid {
		return nil, fmt.Errorf("%s: %w", ErrorValidateFailed, services.ErrUnauthenticated)
	}

	return &entities.SessionInfo{
		Role:      me.Payload.Role,
		SubjectID: me.Payload.Sub,
		Username:  me.Payload.Username,
		IssuedAt:  time.Unix(me.Payload.Iat, 0),
		ExpiresAt: time.Unix(me.Payload.Exp, 0),
	}, nil
}

// Refresh обновляет пару токенов. Одновременные вызовы разделяют один
// запрос к бэкенду. Без refresh-токена сразу возвращает ErrNoRefreshToken.
func (c *Coordinator) Refresh(ctx context.Context) (*entities.TokenPair, error) {
	return c.refreshGated(ctx, func(entities.Credentials) bool { return false })
}

// RefreshAfter обновляет токены после отказа в доступе с токеном rejected.
// Если сохраненный токен уже отличается от rejected, обновление было
// выполнено другим вызывающим, и текущая пара возвращается без запроса к бэкенду.
func (c *Coordinator) RefreshAfter(ctx context.Context, rejected string) (*entities.TokenPair, error) {
	superseded := func(creds entities.Credentials) bool {
		return creds.HasAccessToken() && creds.AccessToken != rejected
	}
	return c.refreshGated(ctx, superseded)
}

func (c *Coordinator) refreshGated(ctx context.Context, superseded func(entities.Credentials) bool) (*entities.TokenPair, error) {
	creds, err := c.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorReadCredentials, err)
	}
	if superseded(creds) {
		return currentPair(creds), nil
	}
	if !creds.HasRefreshToken() {
		return nil, services.ErrNoRefreshToken
	}

	return c.gate.Do(ctx, func(ctx context.Context) (*entities.TokenPair, error) {
		return c.refresh(ctx, superseded)
	})
}

func currentPair(creds entities.Credentials) *entities.TokenPair {
	return &entities.TokenPair{AccessToken: creds.AccessToken, RefreshToken: creds.RefreshToken}
}

// refresh выполняется лидером шлюза. Учетные данные читаются заново, так как
// между проверкой и запуском сессия могла быть обновлена или завершена.
// Если за время запроса сессия сменилась, полученная пара отбрасывается.
func (c *Coordinator) refresh(ctx context.Context, superseded func(entities.Credentials) bool) (*entities.TokenPair, error) {
	log := logger.Log(ctx)

	c.sessionMu.Lock()
	started := c.epoch
	c.sessionMu.Unlock()

	creds, err := c.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorReadCredentials, err)
	}
	if superseded(creds) {
		return currentPair(creds), nil
	}
	if !creds.HasRefreshToken() {
		return nil, services.ErrNoRefreshToken
	}

	log.Info(ctx, LogRefreshStarted)

	pair, err := c.auth.Refresh(ctx, creds.RefreshToken)
	if err == nil && (pair.AccessToken == "" || pair.RefreshToken == "") {
		err = fmt.Errorf("%w: %s", services.ErrServer, ErrorIncompleteTokenPair)
	}

	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	if c.epoch != started {
		log.Warn(ctx, LogRefreshFailed, zap.String("reason", ErrorSessionEnded))
		return nil, fmt.Errorf("%s: %w", ErrorSessionEnded, services.ErrUnauthenticated)
	}
	if err == nil {
		err = c.store.Set(ctx, pair.AccessToken, pair.RefreshToken)
	}
	if err != nil {
		log.Warn(ctx, LogRefreshFailed, zap.Error(err))
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			log.Error(ctx, ErrorClearCredentials, zap.Error(clearErr))
		}
		return nil, fmt.Errorf("%s: %w", ErrorRefreshFailed, err)
	}

	log.Info(ctx, LogRefreshSucceeded)
	return pair, nil
}

// RefreshInProgress сообщает, выполняется ли обновление токенов.
func (c *Coordinator) RefreshInProgress() bool {
	return c.gate.InProgress()
}

// RefreshCalls возвращает число запусков обновления через шлюз.
func (c *Coordinator) RefreshCalls() int {
	return c.gate.Calls()
}

// AccessToken возвращает сохраненный токен доступа или пустую строку.
func (c *Coordinator) AccessToken(ctx context.Context) (string, error) {
	creds, err := c.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrorReadCredentials, err)
	}
	return creds.AccessToken, nil
}

// LocalSession читает утверждения сохраненного токена без обращения к бэкенду.
func (c *Coordinator) LocalSession(ctx context.Context) (*entities.SessionInfo, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, services.ErrUnauthenticated
	}

	info, err := tokens.Peek(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrUnauthenticated, err)
	}
	return info, nil
}

func (c *Coordinator) RequestPasswordReset(ctx context.Context, email string) error {
	if err := c.auth.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", ErrorPasswordResetRequest, err)
	}
	return nil
}

func (c *Coordinator) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := c.auth.ResetPassword(ctx, token, newPassword); err != nil {
		return fmt.Errorf("%s: %w", ErrorPasswordReset, err)
	}
	return nil
}

func (c *Coordinator) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := c.auth.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return fmt.Errorf("%s: %w", ErrorPasswordChange, err)
	}
	return nil
}
