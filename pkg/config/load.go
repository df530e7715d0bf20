// Package config предоставляет загрузку конфигурации из файла или переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"posterminal/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
	attrSource  = "source"
)

// Load читает конфигурацию типа T. Если файл path существует, значения берутся
// из него (yaml, json, toml или .env) с переопределением из окружения,
// иначе только из переменных окружения. Значения по умолчанию задаются тегами env-default.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	var cfg T
	var err error

	if path != "" && fileExists(path) {
		log.Info(ctx, msgLoadingConfiguration, zap.String(attrSource, "file"), zap.String(attrPath, path))
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		log.Info(ctx, msgLoadingConfiguration, zap.String(attrSource, "env"))
		err = cleanenv.ReadEnv(&cfg)
	}

	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
