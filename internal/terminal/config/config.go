// Package config содержит конфигурацию терминала.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	pkgconfig "posterminal/pkg/config"
	"posterminal/pkg/logger"
)

// Константы конфигурации.
const (
	ServiceName   = "terminal"
	EnvConfigPath = "TERMINAL_CONFIG_PATH"

	LogConfigLoaded = "terminal configuration loaded"
)

// Config представляет полную конфигурацию терминала.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Backend  BackendConfig  `yaml:"backend"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла TERMINAL_CONFIG_PATH или переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("backend_url", cfg.Backend.BaseURL),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("toast_duration", cfg.UI.ToastDuration),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
