package ui

import (
	"strings"

	domain "posterminal/internal/terminal/domain/services"
)

// Минимальные длины полей форм.
const (
	MinUsernameLength = 2
	MinPasswordLength = 8
)

// LoginForm - форма входа.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate проверяет форму до обращения к бэкенду.
func (f LoginForm) Validate() error {
	if len([]rune(strings.TrimSpace(f.Username))) < MinUsernameLength {
		return &domain.ValidationError{Field: "username", Reason: "must be at least 2 characters"}
	}
	if len([]rune(f.Password)) < MinPasswordLength {
		return &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

// ForgotPasswordForm - запрос письма для сброса пароля.
type ForgotPasswordForm struct {
	Email string `json:"email"`
}

func (f ForgotPasswordForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" {
		return &domain.ValidationError{Field: "email", Reason: "is required"}
	}
	return nil
}

// ResetPasswordForm - установка нового пароля по токену из письма.
type ResetPasswordForm struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f ResetPasswordForm) Validate() error {
	if f.Token == "" {
		return &domain.ValidationError{Field: "token", Reason: "is required"}
	}
	return validateNewPassword(f.NewPassword, f.ConfirmPassword)
}

// ChangePasswordForm - смена пароля вошедшим пользователем.
type ChangePasswordForm struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f ChangePasswordForm) Validate() error {
	if f.OldPassword == "" {
		return &domain.ValidationError{Field: "oldPassword", Reason: "is required"}
	}
	return validateNewPassword(f.NewPassword, f.ConfirmPassword)
}

func validateNewPassword(password, confirmation string) error {
	if len([]rune(password)) < MinPasswordLength {
		return &domain.ValidationError{Field: "newPassword", Reason: "must be at least 8 characters"}
	}
	if password != confirmation {
		return &domain.ValidationError{Field: "confirmPassword", Reason: "passwords do not match"}
	}
	return nil
}
