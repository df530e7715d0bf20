package config

import "time"

// UIConfig задает параметры пользовательского состояния терминала.
type UIConfig struct {
	ToastDuration time.Duration `yaml:"toast_duration" env:"TERMINAL_UI_TOAST_DURATION" env-default:"4s"`
	RedirectDelay time.Duration `yaml:"redirect_delay" env:"TERMINAL_UI_REDIRECT_DELAY" env-default:"2s"`
	DefaultTheme  string        `yaml:"default_theme" env:"TERMINAL_UI_DEFAULT_THEME" env-default:"light"`
	PageLimit     int           `yaml:"page_limit" env:"TERMINAL_UI_PAGE_LIMIT" env-default:"10"`
}
