package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/pkg/config"
)

type sampleConfig struct {
	Name    string        `yaml:"name" env:"SAMPLE_NAME" env-default:"terminal"`
	Timeout time.Duration `yaml:"timeout" env:"SAMPLE_TIMEOUT" env-default:"3s"`
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "front-desk")

	cfg, err := config.Load[sampleConfig](context.Background(), "test", "")
	require.NoError(t, err)
	assert.Equal(t, "front-desk", cfg.Name)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_MissingFileFallsBackToEnvironment(t *testing.T) {
	cfg, err := config.Load[sampleConfig](context.Background(), "test", filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Name)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terminal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: counter-2\ntimeout: 7s\n"), 0o600))

	cfg, err := config.Load[sampleConfig](context.Background(), "test", path)
	require.NoError(t, err)
	assert.Equal(t, "counter-2", cfg.Name)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [not a duration\n"), 0o600))

	cfg, err := config.Load[sampleConfig](context.Background(), "test", path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
