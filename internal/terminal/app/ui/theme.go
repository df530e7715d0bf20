package ui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"posterminal/internal/terminal/domain/entities"
	domain "posterminal/internal/terminal/domain/services"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/internal/terminal/ports/storage"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogThemeReadFailed = "failed to read theme preference, using default"
	LogThemeChanged    = "theme changed"

	ErrorPersistTheme = "failed to persist theme"
)

// ThemeManager хранит выбранную тему в хранилище настроек.
type ThemeManager struct {
	store    storage.PreferenceStore
	fallback entities.Theme
}

var _ ports.ThemeService = (*ThemeManager)(nil)

// NewThemeManager создает менеджер темы. Неизвестная тема по умолчанию
// заменяется светлой.
func NewThemeManager(store storage.PreferenceStore, fallback string) *ThemeManager {
	theme, ok := ParseTheme(fallback)
	if !ok {
		theme = entities.ThemeLight
	}
	return &ThemeManager{store: store, fallback: theme}
}

// ParseTheme распознает сохраненное значение темы.
func ParseTheme(value string) (entities.Theme, bool) {
	switch entities.Theme(value) {
	case entities.ThemeLight, entities.ThemeDark:
		return entities.Theme(value), true
	default:
		return "", false
	}
}

// Current возвращает сохраненную тему или тему по умолчанию.
func (m *ThemeManager) Current(ctx context.Context) entities.Theme {
	value, ok, err := m.store.GetPreference(ctx, storage.KeyTheme)
	if err != nil {
		logger.Log(ctx).Warn(ctx, LogThemeReadFailed, zap.Error(err))
		return m.fallback
	}
	if !ok {
		return m.fallback
	}
	if theme, valid := ParseTheme(value); valid {
		return theme
	}
	return m.fallback
}

// Toggle переключает светлую и темную тему и сохраняет выбор.
func (m *ThemeManager) Toggle(ctx context.Context) (entities.Theme, error) {
	next := entities.ThemeDark
	if m.Current(ctx) == entities.ThemeDark {
		next = entities.ThemeLight
	}
	if err := m.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (m *ThemeManager) Set(ctx context.Context, theme entities.Theme) error {
	if _, ok := ParseTheme(string(theme)); !ok {
		return &domain.ValidationError{Field: "theme", Reason: "must be light or dark"}
	}
	if err := m.store.SetPreference(ctx, storage.KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("%s: %w", ErrorPersistTheme, err)
	}
	logger.Log(ctx).Debug(ctx, LogThemeChanged, zap.String("theme", string(theme)))
	return nil
}
