package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config holds the runtime settings of the inventory CLI.
type Config struct {
	File              string
	LowStockThreshold int
	Storage           string
	DatabaseURL       string
	RedisAddr         string
	RedisKeyPrefix    string
	LogLevel          string
}

// New returns a viper instance with defaults and environment bindings applied.
// Environment variables use the INVENTORY_ prefix; DATABASE_URL and REDIS_ADDR
// are also honored.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("inventory.file", "inventory.json")
	v.SetDefault("inventory.low_stock_threshold", 5)
	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "inventory")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "INVENTORY_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "INVENTORY_REDIS_ADDR", "REDIS_ADDR")

	return v
}

// Load reads the config file into v and decodes the result.
// With an empty path an optional inventory-config.{yaml,toml,json} in the working
// directory is used.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("inventory-config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		File:              v.GetString("inventory.file"),
		LowStockThreshold: v.GetInt("inventory.low_stock_threshold"),
		Storage:           strings.ToLower(v.GetString("storage.driver")),
		DatabaseURL:       v.GetString("database.url"),
		RedisAddr:         v.GetString("redis.addr"),
		RedisKeyPrefix:    v.GetString("redis.key_prefix"),
		LogLevel:          v.GetString("log.level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile:
		if strings.TrimSpace(c.File) == "" {
			return errors.New("inventory.file must not be empty")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database.url is required for postgres storage")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return errors.New("redis.addr is required for redis storage")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage)
	}
	return nil
}
