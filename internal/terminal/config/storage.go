package config

import "time"

// Драйверы хранилища.
const (
	StorageDriverRedis  = "redis"
	StorageDriverMemory = "memory"
)

// StorageConfig описывает хранилище токенов и пользовательских настроек.
type StorageConfig struct {
	Driver    string `yaml:"driver" env:"TERMINAL_STORAGE_DRIVER" env-default:"redis"`
	KeyPrefix string `yaml:"key_prefix" env:"TERMINAL_STORAGE_KEY_PREFIX" env-default:"pos:"`
}

// UsesRedis сообщает, хранится ли состояние в Redis.
func (c *StorageConfig) UsesRedis() bool {
	return c.Driver != StorageDriverMemory
}

// CacheConfig описывает время жизни кэшированных ответов API.
type CacheConfig struct {
	ProductTTL       time.Duration `yaml:"product_ttl" env:"TERMINAL_CACHE_PRODUCT_TTL" env-default:"1m"`
	ConfigurationTTL time.Duration `yaml:"configuration_ttl" env:"TERMINAL_CACHE_CONFIGURATION_TTL" env-default:"10m"`
}
