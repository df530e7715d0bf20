package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"posterminal/internal/terminal/app/dto"
	"posterminal/internal/terminal/app/http/middleware"
	"posterminal/internal/terminal/app/ui"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin          = "auth handler: login"
	LogHandlerLogout         = "auth handler: logout"
	LogHandlerForgotPassword = "auth handler: forgot password"
	LogHandlerResetPassword  = "auth handler: reset password"
	LogHandlerChangePassword = "auth handler: change password"
)

// AuthHandler обслуживает вход, выход и смену пароля.
type AuthHandler struct {
	flows   *ui.AccountFlows
	session ports.SessionService
}

// NewAuthHandler создает обработчик учетной записи.
func NewAuthHandler(flows *ui.AccountFlows, session ports.SessionService) *AuthHandler {
	return &AuthHandler{flows: flows, session: session}
}

// Login проверяет форму, выполняет вход и возвращает раздел роли.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogin)

	var form ui.LoginForm
	if err := bindJSON(c, &form); err != nil {
		return err
	}

	route, err := h.flows.Login(requestCtx, form)
	if err != nil {
		return err
	}

	response := dto.LoginResponse{Route: route}
	if info, err := h.session.LocalSession(requestCtx); err == nil {
		response.Session = info
	}
	return c.Status(http.StatusOK).JSON(response)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogout)

	if err := h.flows.Logout(requestCtx); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "logged out successfully"})
}

// Me проверяет токен на бэкенде.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	info, err := h.session.ValidateToken(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(info)
}

// Session возвращает сведения из сохраненного токена без запроса к бэкенду.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	info, err := h.session.LocalSession(middleware.RequestContext(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(info)
}

func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerForgotPassword)

	var form ui.ForgotPasswordForm
	if err := bindJSON(c, &form); err != nil {
		return err
	}
	if err := h.flows.ForgotPassword(requestCtx, form); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(dto.MessageResponse{Message: ui.MessageResetEmailSent})
}

// OpenResetPage проверяет токен из ссылки сброса пароля.
func (h *AuthHandler) OpenResetPage(c fiber.Ctx) error {
	valid := h.flows.OpenResetPage(middleware.RequestContext(c), c.Query("token"))
	return c.Status(http.StatusOK).JSON(dto.ResetPageResponse{Valid: valid})
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerResetPassword)

	var form ui.ResetPasswordForm
	if err := bindJSON(c, &form); err != nil {
		return err
	}
	if err := h.flows.ResetPassword(requestCtx, form); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: ui.MessagePasswordReset})
}

func (h *AuthHandler) ChangePassword(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerChangePassword)

	var form ui.ChangePasswordForm
	if err := bindJSON(c, &form); err != nil {
		return err
	}
	if err := h.flows.ChangePassword(requestCtx, form); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: ui.MessagePasswordChanged})
}
