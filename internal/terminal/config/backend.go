package config

import "time"

// BackendConfig описывает подключение к REST API магазина.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url" env:"TERMINAL_API_URL" env-default:"http://localhost:3000/api"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TERMINAL_API_TIMEOUT" env-default:"10s"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout" env:"TERMINAL_API_REFRESH_TIMEOUT" env-default:"10s"`
	// ValidateOnLogin включает диагностический вызов /auth/me после входа.
	ValidateOnLogin bool `yaml:"validate_on_login" env:"TERMINAL_API_VALIDATE_ON_LOGIN" env-default:"false"`
}
