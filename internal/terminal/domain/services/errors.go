// Package services содержит доменные ошибки терминала и их классификацию.
package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Ошибки домена терминала.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrNoRefreshToken     = errors.New("no refresh token available")
	ErrNetwork            = errors.New("network error")
	ErrValidation         = errors.New("validation failed")
	ErrServer             = errors.New("server error")
	ErrForbidden          = errors.New("access denied for current role")
)

// APIError описывает ответ бэкенда с неуспешным статусом.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unwrap относит ошибку к таксономии домена.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return ErrServer
}

// StatusOf возвращает HTTP статус ошибки бэкенда, если он есть.
func StatusOf(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// MessageOf возвращает сообщение бэкенда или текст ошибки.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// IsClientError сообщает, что бэкенд отклонил запрос со статусом 4xx.
// Такие запросы не имеет смысла повторять.
func IsClientError(err error) bool {
	status, ok := StatusOf(err)
	return ok && status >= 400 && status < 500
}

// ValidationError - ошибка клиентской проверки формы.
type ValidationError struct {
	Field  string
	Reason string
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap позволяет сравнивать с ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
