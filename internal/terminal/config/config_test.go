package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/internal/terminal/config"
	"posterminal/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, "http://localhost:3000/api", cfg.Backend.BaseURL)
	assert.False(t, cfg.Backend.ValidateOnLogin)
	assert.True(t, cfg.Storage.UsesRedis())
	assert.Equal(t, "pos:", cfg.Storage.KeyPrefix)
	assert.Equal(t, 4*time.Second, cfg.UI.ToastDuration)
	assert.Equal(t, 2*time.Second, cfg.UI.RedirectDelay)
	assert.Equal(t, 10, cfg.UI.PageLimit)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddress())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("TERMINAL_API_URL", "https://pos.example.com/api")
	t.Setenv("TERMINAL_STORAGE_DRIVER", config.StorageDriverMemory)
	t.Setenv("TERMINAL_LOGGER_MODE", "development")
	t.Setenv("TERMINAL_UI_TOAST_DURATION", "1500ms")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://pos.example.com/api", cfg.Backend.BaseURL)
	assert.False(t, cfg.Storage.UsesRedis())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.ToastDuration)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terminal.yaml")
	body := "backend:\n  base_url: http://backend:4000\n  validate_on_login: true\nredis:\n  host: cache\n  port: 6380\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://backend:4000", cfg.Backend.BaseURL)
	assert.True(t, cfg.Backend.ValidateOnLogin)
	assert.Equal(t, "cache:6380", cfg.Redis.GetAddress())
	assert.Equal(t, 10*time.Second, cfg.Backend.RequestTimeout)
}

func TestRedisConfig_ClientConfig(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache", Port: 6390, DB: 2, PoolSize: 4, ConnectTimeout: time.Second}

	clientCfg := cfg.ClientConfig()

	assert.Equal(t, "cache:6390", clientCfg.Address())
	assert.Equal(t, 2, clientCfg.DB)
	assert.Equal(t, 4, clientCfg.PoolSize)
	assert.Equal(t, time.Second, clientCfg.ConnectTimeout)
}
