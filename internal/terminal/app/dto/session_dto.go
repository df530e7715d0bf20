// Package dto содержит объекты передачи данных локального HTTP фасада.
package dto

import "posterminal/internal/terminal/domain/entities"

// LoginResponse - результат входа: открытый раздел и сведения о сессии.
type LoginResponse struct {
	Route   string                `json:"route"`
	Session *entities.SessionInfo `json:"session,omitempty"`
}

// ResetPageResponse сообщает, пригоден ли токен из ссылки сброса пароля.
type ResetPageResponse struct {
	Valid bool `json:"valid"`
}

// MessageResponse - ответ без данных.
type MessageResponse struct {
	Message string `json:"message"`
}
