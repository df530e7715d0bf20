package dto

import "posterminal/internal/terminal/domain/entities"

// ToastResponse - видимое уведомление.
type ToastResponse struct {
	Visible bool            `json:"visible"`
	Toast   *entities.Toast `json:"toast,omitempty"`
}

// ThemeRequest и ThemeResponse передают цветовую тему.
type ThemeRequest struct {
	Theme entities.Theme `json:"theme"`
}

type ThemeResponse struct {
	Theme entities.Theme `json:"theme"`
}

// RouteRequest запрашивает переход на URL с учетом прав роли.
type RouteRequest struct {
	URL string `json:"url"`
}

// RouteResponse - открытый маршрут.
type RouteResponse struct {
	Route string `json:"route"`
}
