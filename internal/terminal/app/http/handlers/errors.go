// Package handlers содержит HTTP обработчики локального фасада терминала.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"posterminal/internal/terminal/app/http/middleware"
	domain "posterminal/internal/terminal/domain/services"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerError = "handler returned error"

	ErrorInvalidRequest = "invalid request body"
	ErrorInternal       = "Internal Server Error"
)

// StatusFor сопоставляет ошибку с HTTP статусом ответа фасада.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrNoRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	}

	if status, ok := domain.StatusOf(err); ok && status >= http.StatusBadRequest {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler отвечает JSON с текстом ошибки и статусом из StatusFor.
func ErrorHandler(c fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(c)
	status := StatusFor(err)

	log := logger.Log(requestCtx).With(zap.Int("status", status), zap.Error(err))
	if status >= http.StatusInternalServerError {
		log.Error(requestCtx, LogHandlerError)
	} else {
		log.Debug(requestCtx, LogHandlerError)
	}

	return c.Status(status).JSON(fiber.Map{"error": publicMessage(err, status)})
}

func publicMessage(err error, status int) string {
	var (
		fiberErr      *fiber.Error
		validationErr *domain.ValidationError
		apiErr        *domain.APIError
	)
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Message
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	}

	for _, sentinel := range []error{
		domain.ErrInvalidCredentials,
		domain.ErrNoRefreshToken,
		domain.ErrUnauthenticated,
		domain.ErrForbidden,
		domain.ErrNetwork,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		return ErrorInternal
	}
	return http.StatusText(status)
}

// bindJSON разбирает тело запроса. Ошибка разбора - ошибка проверки формы.
func bindJSON(c fiber.Ctx, out any) error {
	if err := c.Bind().JSON(out); err != nil {
		return validationError("body", ErrorInvalidRequest)
	}
	return nil
}

func validationError(field, reason string) error {
	return &domain.ValidationError{Field: field, Reason: reason}
}
