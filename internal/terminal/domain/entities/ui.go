package entities

import "time"

// ToastType - уровень важности уведомления.
type ToastType string

// Уровни уведомлений.
const (
	ToastInfo    ToastType = "info"
	ToastSuccess ToastType = "success"
	ToastWarning ToastType = "warning"
	ToastError   ToastType = "error"
)

// Toast - всплывающее уведомление пользователю.
type Toast struct {
	Type      ToastType `json:"type"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Theme - цветовая тема интерфейса.
type Theme string

// Темы интерфейса.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Маршруты интерфейса терминала.
const (
	RouteRoot          = "/"
	RouteLogin         = "/auth/login"
	RouteResetPassword = "/auth/reset-password"
	RouteAdmin         = "/admin"
	RoutePOS           = "/pos"
)
