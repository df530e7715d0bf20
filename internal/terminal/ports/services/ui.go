package services

import (
	"context"
	"time"

	"posterminal/internal/terminal/domain/entities"
)

// Navigator хранит текущий маршрут интерфейса.
type Navigator interface {
	Navigate(route string)

	NavigateAfter(route string, delay time.Duration)

	Current() string
}

// Notifier показывает всплывающие уведомления.
type Notifier interface {
	Show(ctx context.Context, toast entities.Toast)

	Current() (entities.Toast, bool)

	Dismiss()
}

// ThemeService управляет цветовой темой.
type ThemeService interface {
	Current(ctx context.Context) entities.Theme

	Toggle(ctx context.Context) (entities.Theme, error)

	Set(ctx context.Context, theme entities.Theme) error
}
