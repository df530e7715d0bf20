package ui

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	domain "posterminal/internal/terminal/domain/services"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

// DefaultRedirectDelay - пауза перед переходом на страницу входа после сброса пароля.
const DefaultRedirectDelay = 2 * time.Second

// Тексты уведомлений.
const (
	MessageInvalidCredentials = "Incorrect username or password"
	MessageLoginFailed        = "Login failed, please try again"
	MessageInvalidForm        = "Please fill in all fields correctly"
	MessageMissingResetToken  = "Invalid or missing reset token"
	MessageInvalidResetToken  = "Invalid reset token"
	MessagePasswordReset      = "Password reset successfully. Redirecting to login..."
	MessageResetFailed        = "Failed to reset password"
	MessageResetEmailSent     = "If the email is registered, a reset link has been sent"
	MessageForgotFailed       = "Failed to request password reset"
	MessagePasswordChanged    = "Password changed successfully"
	MessageChangeFailed       = "Failed to change password"
)

// LogPostLoginValidationFailed - сообщение журнала о проверке токена сразу после входа.
const LogPostLoginValidationFailed = "token validation after login failed"

// AccountSession - операции сессии, которые запускаются из форм.
type AccountSession interface {
	Login(ctx context.Context, username, password string) (*entities.TokenPair, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context) (*entities.SessionInfo, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// AccountFlows связывает формы учетной записи с сессией, уведомлениями
// и навигацией.
type AccountFlows struct {
	session       AccountSession
	notifier      ports.Notifier
	navigator     ports.Navigator
	redirectDelay time.Duration
}

// NewAccountFlows создает обработчики форм учетной записи.
func NewAccountFlows(session AccountSession, notifier ports.Notifier, navigator ports.Navigator, redirectDelay time.Duration) *AccountFlows {
	if redirectDelay <= 0 {
		redirectDelay = DefaultRedirectDelay
	}
	return &AccountFlows{
		session:       session,
		notifier:      notifier,
		navigator:     navigator,
		redirectDelay: redirectDelay,
	}
}

// Login выполняет вход и открывает раздел роли. Возвращает открытый маршрут.
func (f *AccountFlows) Login(ctx context.Context, form LoginForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	if _, err := f.session.Login(ctx, form.Username, form.Password); err != nil {
		message := backendMessage(err, MessageLoginFailed)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			message = MessageInvalidCredentials
		}
		f.toast(ctx, entities.ToastError, message)
		return "", err
	}

	route := entities.RouteRoot
	if info, err := f.session.ValidateToken(ctx); err != nil {
		logger.Log(ctx).Warn(ctx, LogPostLoginValidationFailed, zap.Error(err))
	} else {
		route = HomeRoute(info.Role)
	}

	f.navigator.Navigate(route)
	return route, nil
}

// Logout завершает сессию и открывает страницу входа.
func (f *AccountFlows) Logout(ctx context.Context) error {
	err := f.session.Logout(ctx)
	f.navigator.Navigate(entities.RouteLogin)
	return err
}

// OpenResetPage проверяет наличие токена из ссылки сброса пароля.
// Без токена показывает ошибку и через паузу открывает страницу входа.
func (f *AccountFlows) OpenResetPage(ctx context.Context, token string) bool {
	if token != "" {
		return true
	}
	f.toast(ctx, entities.ToastError, MessageMissingResetToken)
	f.navigator.NavigateAfter(entities.RouteLogin, f.redirectDelay)
	return false
}

// ResetPassword устанавливает новый пароль по токену сброса.
func (f *AccountFlows) ResetPassword(ctx context.Context, form ResetPasswordForm) error {
	if form.Token == "" {
		f.toast(ctx, entities.ToastError, MessageInvalidResetToken)
		f.navigator.NavigateAfter(entities.RouteLogin, f.redirectDelay)
		return form.Validate()
	}
	if err := form.Validate(); err != nil {
		f.toast(ctx, entities.ToastWarning, MessageInvalidForm)
		return err
	}

	if err := f.session.ResetPassword(ctx, form.Token, form.NewPassword); err != nil {
		f.toast(ctx, entities.ToastError, backendMessage(err, MessageResetFailed))
		return err
	}

	f.toast(ctx, entities.ToastSuccess, MessagePasswordReset)
	f.navigator.NavigateAfter(entities.RouteLogin, f.redirectDelay)
	return nil
}

// ForgotPassword запрашивает письмо со ссылкой сброса пароля.
func (f *AccountFlows) ForgotPassword(ctx context.Context, form ForgotPasswordForm) error {
	if err := form.Validate(); err != nil {
		f.toast(ctx, entities.ToastWarning, MessageInvalidForm)
		return err
	}

	if err := f.session.RequestPasswordReset(ctx, form.Email); err != nil {
		f.toast(ctx, entities.ToastError, backendMessage(err, MessageForgotFailed))
		return err
	}

	f.toast(ctx, entities.ToastSuccess, MessageResetEmailSent)
	return nil
}

func (f *AccountFlows) ChangePassword(ctx context.Context, form ChangePasswordForm) error {
	if err := form.Validate(); err != nil {
		f.toast(ctx, entities.ToastWarning, MessageInvalidForm)
		return err
	}

	if err := f.session.ChangePassword(ctx, form.OldPassword, form.NewPassword); err != nil {
		f.toast(ctx, entities.ToastError, backendMessage(err, MessageChangeFailed))
		return err
	}

	f.toast(ctx, entities.ToastSuccess, MessagePasswordChanged)
	return nil
}

func (f *AccountFlows) toast(ctx context.Context, kind entities.ToastType, message string) {
	f.notifier.Show(ctx, entities.Toast{Type: kind, Message: message})
}

// backendMessage возвращает текст ответа бэкенда или fallback.
func backendMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
